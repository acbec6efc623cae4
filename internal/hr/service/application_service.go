package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/mys-constructora/backoffice/internal/hr/domain"
	"github.com/mys-constructora/backoffice/internal/notifications"
)

// SubmitInput is a portal job application.
type SubmitInput struct {
	OrgID           *string         `json:"orgId"`
	Name            string          `json:"name"`
	Phone           string          `json:"phone"`
	DPI             string          `json:"dpi"`
	Experience      string          `json:"experience"`
	PositionApplied string          `json:"positionApplied"`
	ContractData    json.RawMessage `json:"contractData"`
	Meta            json.RawMessage `json:"meta"`
}

type ApplicationService struct {
	apps     ApplicationStore
	notifier notifications.Pusher
	orgID    string
}

func NewApplicationService(apps ApplicationStore, notifier notifications.Pusher, orgID string) *ApplicationService {
	return &ApplicationService{apps: apps, notifier: notifier, orgID: orgID}
}

// NormalizeDPI drops every whitespace rune.
func NormalizeDPI(dpi string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, dpi)
}

// Submit validates and stores an application, returning its id.
func (s *ApplicationService) Submit(ctx context.Context, in SubmitInput) (string, error) {
	name := strings.TrimSpace(in.Name)
	dpi := NormalizeDPI(in.DPI)
	position := strings.TrimSpace(in.PositionApplied)

	if name == "" {
		return "", domain.ErrNameRequired
	}
	if len(dpi) != domain.DPILength {
		return "", domain.ErrInvalidDPI
	}
	if position == "" {
		return "", domain.ErrPositionAppliedRequired
	}
	if err := CheckOrg(in.OrgID, s.orgID); err != nil {
		return "", err
	}

	id, err := s.apps.Insert(ctx, &domain.ApplicationRow{
		OrgID:           s.orgID,
		Name:            name,
		Phone:           optional(strings.TrimSpace(in.Phone)),
		DPI:             dpi,
		Experience:      optional(strings.TrimSpace(in.Experience)),
		PositionApplied: position,
		Status:          domain.AppPending,
		ContractData:    in.ContractData,
		Source:          domain.SourcePortalContract,
		Meta:            in.Meta,
	})
	if err != nil {
		return "", err
	}

	notifications.BestEffort(ctx, s.notifier, notifications.New{
		Title:   "Nueva postulación",
		Message: fmt.Sprintf("Nuevo aplicante: %s (DPI %s) para %s.", name, dpi, position),
		Type:    notifications.TypeInfo,
	})
	return id, nil
}

// List returns applications newest first with UI statuses.
func (s *ApplicationService) List(ctx context.Context) ([]domain.Application, error) {
	rows, err := s.apps.List(ctx, s.orgID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Application, 0, len(rows))
	for _, a := range rows {
		out = append(out, domain.Application{
			ID:              a.ID,
			Name:            a.Name,
			Phone:           deref(a.Phone),
			DPI:             a.DPI,
			Experience:      deref(a.Experience),
			PositionApplied: a.PositionApplied,
			Status:          domain.StatusToUI(a.Status),
			Timestamp:       a.SubmittedAt.UTC().Format(time.RFC3339),
		})
	}
	return out, nil
}

// Decide accepts or rejects an application. status is ACCEPTED or REJECTED.
func (s *ApplicationService) Decide(ctx context.Context, id, status string) error {
	stored, ok := domain.StatusFromUI(status)
	if !ok {
		return domain.ErrInvalidStatus
	}
	return s.apps.UpdateStatus(ctx, s.orgID, id, stored)
}

// Pending counts applications still waiting for a decision.
func (s *ApplicationService) Pending(ctx context.Context) (int, error) {
	rows, err := s.apps.List(ctx, s.orgID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, a := range rows {
		if a.Status == domain.AppPending {
			n++
		}
	}
	return n, nil
}
