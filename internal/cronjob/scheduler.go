package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mys-constructora/backoffice/internal/logging"
)

// RentalReminder is implemented by *finance.Service.
type RentalReminder interface {
	RemindRentals(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	reminder RentalReminder
	timeout  time.Duration
}

// NewScheduler creates a seconds-resolution scheduler evaluated in loc.
func NewScheduler(reminder RentalReminder, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds(), cron.WithLocation(loc)),
		reminder: reminder,
		timeout:  time.Minute,
	}
}

// Start registers the rental reminder on spec (six fields, with seconds) and
// starts the scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.runRentalReminders); err != nil {
		return fmt.Errorf("add rental reminder %q: %w", spec, err)
	}
	s.cron.Start()
	logging.FromContext(context.Background()).LogInfof("cron", "scheduler started, rental reminders at %q", spec)
	return nil
}

// Stop waits for a running job to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// Entries exposes the registered jobs, mostly for tests and diagnostics.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runRentalReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	RunRentalReminders(ctx, s.reminder)
}

// RunRentalReminders runs the job once and logs its outcome.
func RunRentalReminders(ctx context.Context, reminder RentalReminder) (int, error) {
	log := logging.FromContext(ctx)
	n, err := reminder.RemindRentals(ctx)
	if err != nil {
		log.LogError("rental_reminders", err)
		return 0, err
	}
	log.LogInfof("rental_reminders", "sent %d rental reminders", n)
	return n, nil
}
