package finance

import (
	"context"
	"fmt"
	"time"

	"github.com/mys-constructora/backoffice/internal/notifications"
)

// Store is implemented by *Repo.
type Store interface {
	Insert(ctx context.Context, t *Transaction) error
	List(ctx context.Context, projectID string) ([]Transaction, error)
	RentalsEndingOn(ctx context.Context, day string) ([]Transaction, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	store    Store
	notifier notifications.Pusher
	loc      *time.Location
	now      func() time.Time
}

func NewService(store Store, notifier notifications.Pusher, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, notifier: notifier, loc: loc, now: time.Now}
}

func (s *Service) today() time.Time {
	return s.now().In(s.loc)
}

// RentalAlert is the notification pushed for equipment that must be returned.
func RentalAlert(t Transaction) notifications.New {
	end := ""
	if t.RentalEnd != nil {
		end = *t.RentalEnd
	}
	return notifications.New{
		Title:   "Alerta de Alquiler",
		Message: fmt.Sprintf("El equipo %q debe devolverse el %s.", t.Description, end),
		Type:    notifications.TypeWarning,
	}
}

func (s *Service) Create(ctx context.Context, in Input) (*Transaction, error) {
	t, err := in.Build(s.today())
	if err != nil {
		return nil, err
	}
	if err := s.store.Insert(ctx, &t); err != nil {
		return nil, err
	}
	if t.RentalEnd != nil {
		notifications.BestEffort(ctx, s.notifier, RentalAlert(t))
	}
	return &t, nil
}

// List returns transactions newest first, filtered by project and search text.
func (s *Service) List(ctx context.Context, projectID, q string) ([]Transaction, error) {
	txs, err := s.store.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	txs = Search(txs, q)
	SortNewestFirst(txs)
	return txs, nil
}

func (s *Service) Metrics(ctx context.Context, projectID string) (Metrics, error) {
	txs, err := s.store.List(ctx, projectID)
	if err != nil {
		return Metrics{}, err
	}
	return ComputeMetrics(txs), nil
}

func (s *Service) Series(ctx context.Context, projectID string) ([]SeriesPoint, error) {
	txs, err := s.store.List(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return Series(txs), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

// RemindRentals pushes a rental alert for every rental ending the day after
// today and returns how many were sent.
func (s *Service) RemindRentals(ctx context.Context) (int, error) {
	tomorrow := s.today().AddDate(0, 0, 1).Format(DateLayout)
	due, err := s.store.RentalsEndingOn(ctx, tomorrow)
	if err != nil {
		return 0, err
	}
	for _, t := range due {
		notifications.BestEffort(ctx, s.notifier, RentalAlert(t))
	}
	return len(due), nil
}
