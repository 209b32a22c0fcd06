package ports

import (
	"context"
	"time"
)

// Notifier delivers a message to an account. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// Notification is a delivered message as read back from an inbox.
type Notification struct {
	Recipient string
	Subject   string
	Body      string
	SentAt    time.Time
}

// Inbox reads back the notifications delivered to an account, oldest first.
type Inbox interface {
	Inbox(ctx context.Context, recipient string) ([]Notification, error)
}
