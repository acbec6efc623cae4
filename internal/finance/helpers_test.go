package finance

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mys-constructora/backoffice/internal/notifications"
)

type memStore struct {
	mu  sync.Mutex
	txs []Transaction
	err error
}

func (m *memStore) Insert(_ context.Context, t *Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	t.ID = uuid.NewString()
	m.txs = append(m.txs, *t)
	return nil
}

func (m *memStore) List(_ context.Context, projectID string) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []Transaction{}
	for _, t := range m.txs {
		if projectID == "" || t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) RentalsEndingOn(_ context.Context, day string) ([]Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []Transaction{}
	for _, t := range m.txs {
		if t.RentalEnd != nil && *t.RentalEnd == day {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.txs {
		if t.ID == id {
			m.txs = append(m.txs[:i], m.txs[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

type recordingPusher struct {
	mu  sync.Mutex
	got []notifications.New
}

func (p *recordingPusher) Push(_ context.Context, in notifications.New) (*notifications.Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.got = append(p.got, in)
	return &notifications.Notification{Title: in.Title}, nil
}
