package notifications

import "time"

const (
	TypeInfo     = "INFO"
	TypeWarning  = "WARNING"
	TypeCritical = "CRITICAL"
)

// MaxKept is how many notifications are retained per org, newest first.
const MaxKept = 50

type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
}

// New is the caller-supplied part of a notification.
type New struct {
	Title   string
	Message string
	Type    string
}

func validType(t string) bool {
	return t == TypeInfo || t == TypeWarning || t == TypeCritical
}
