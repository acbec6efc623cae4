package http

import "github.com/mys-constructora/backoffice/internal/auth/service"

type Handler struct {
	passwords *service.PasswordService
}

func New(passwords *service.PasswordService) *Handler {
	return &Handler{passwords: passwords}
}

type loginRequest struct {
	Password string `json:"password"`
}

type changePasswordRequest struct {
	Current string `json:"current"`
	Next    string `json:"next"`
}
