package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/logging"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrWorkerIDRequired, http.StatusBadRequest},
	{domain.ErrLatLngRequired, http.StatusBadRequest},
	{domain.ErrInvalidMethod, http.StatusBadRequest},
	{domain.ErrNameRequired, http.StatusBadRequest},
	{domain.ErrInvalidDPI, http.StatusBadRequest},
	{domain.ErrPositionAppliedRequired, http.StatusBadRequest},
	{domain.ErrInvalidNameDPI, http.StatusBadRequest},
	{domain.ErrPositionRequired, http.StatusBadRequest},
	{domain.ErrInvalidStatus, http.StatusBadRequest},
	{domain.ErrInvalidOrg, http.StatusForbidden},
	{domain.ErrEmergencyNeedsAdmin, http.StatusForbidden},
	{domain.ErrOutsideWindow, http.StatusForbidden},
	{domain.ErrEmployeeInactive, http.StatusForbidden},
	{domain.ErrWorkerNotFound, http.StatusNotFound},
	{domain.ErrEmployeeNotFound, http.StatusNotFound},
	{domain.ErrApplicationNotFound, http.StatusNotFound},
	{domain.ErrAlreadyMarked, http.StatusConflict},
	{domain.ErrWorkerIDExists, http.StatusConflict},
}

// writeError answers {error} with the status mapped from a domain error.
func writeError(c *gin.Context, op string, err error) {
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			c.JSON(e.status, gin.H{"error": e.err.Error()})
			return
		}
	}
	logging.FromContext(c.Request.Context()).LogError(op, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
