package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listKeyPrefix    = "mys:notifications:" // mys:notifications:{org_id}
	eventChannelBase = "mys:events:"        // mys:events:{org_id}
)

var ErrInvalidType = errors.New("invalid notification type")

// Repo keeps a capped, newest-first notification list per org in Redis.
type Repo struct {
	client *redis.Client
	orgID  string
	now    func() time.Time
}

func NewRepo(client *redis.Client, orgID string) *Repo {
	return &Repo{client: client, orgID: orgID, now: time.Now}
}

// Push prepends a notification, trims the list to MaxKept and publishes it.
func (r *Repo) Push(ctx context.Context, in New) (*Notification, error) {
	typ := strings.ToUpper(strings.TrimSpace(in.Type))
	if typ == "" {
		typ = TypeInfo
	}
	if !validType(typ) {
		return nil, ErrInvalidType
	}

	n := &Notification{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Message:   in.Message,
		Type:      typ,
		Timestamp: r.now().UTC(),
	}
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification: %w", err)
	}

	key := r.listKey()
	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, MaxKept-1)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to push notification: %w", err)
	}

	r.client.Publish(ctx, r.eventChannel(), data)
	return n, nil
}

// List returns all retained notifications, newest first.
func (r *Repo) List(ctx context.Context) ([]Notification, error) {
	raw, err := r.client.LRange(ctx, r.listKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}

	out := make([]Notification, 0, len(raw))
	for _, item := range raw {
		var n Notification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// MarkAllRead rewrites the list with every entry flagged as read.
func (r *Repo) MarkAllRead(ctx context.Context) (int, error) {
	key := r.listKey()
	updated := 0

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		if len(raw) == 0 {
			return nil
		}

		values := make([]any, 0, len(raw))
		updated = 0
		for _, item := range raw {
			var n Notification
			if err := json.Unmarshal([]byte(item), &n); err != nil {
				continue
			}
			if !n.Read {
				updated++
			}
			n.Read = true
			data, err := json.Marshal(n)
			if err != nil {
				return err
			}
			values = append(values, data)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Del(ctx, key)
			if len(values) > 0 {
				pipe.RPush(ctx, key, values...)
			}
			return nil
		})
		return err
	}, key)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return updated, nil
}

// Subscribe opens a pub/sub subscription on the org's notification channel.
func (r *Repo) Subscribe(ctx context.Context) *redis.PubSub {
	return r.client.Subscribe(ctx, r.eventChannel())
}

func (r *Repo) listKey() string {
	return fmt.Sprintf("%s%s", listKeyPrefix, r.orgID)
}

func (r *Repo) eventChannel() string {
	return fmt.Sprintf("%s%s:notifications", eventChannelBase, r.orgID)
}
