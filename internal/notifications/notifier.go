package notifications

import (
	"context"

	"github.com/mys-constructora/backoffice/internal/logging"
)

// Pusher is implemented by *Repo.
type Pusher interface {
	Push(ctx context.Context, in New) (*Notification, error)
}

// BestEffort pushes a notification and only logs failures. A nil pusher is a no-op.
func BestEffort(ctx context.Context, p Pusher, in New) {
	if p == nil {
		return
	}
	if _, err := p.Push(ctx, in); err != nil {
		logging.FromContext(ctx).LogWarnf("notify", "dropping notification %q: %v", in.Title, err)
	}
}
