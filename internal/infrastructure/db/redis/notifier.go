package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

const (
	inboxPrefix   = "notifications:"
	inboxMaxLen   = 500
	publishPrefix = "notifications.events:"
)

// message is the JSON payload stored in a recipient's inbox.
type message struct {
	Recipient string    `json:"recipient"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	SentAt    time.Time `json:"sent_at"`
}

// Notifier appends each notification to notifications:<recipient>, keeps
// only the newest inboxMaxLen entries and publishes it for live listeners.
type Notifier struct {
	client *redis.Client
	now    func() time.Time
}

func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client, now: time.Now}
}

var (
	_ ports.Notifier = (*Notifier)(nil)
	_ ports.Inbox    = (*Notifier)(nil)
)

func (n *Notifier) Notify(ctx context.Context, recipient, subject, body string) error {
	payload, err := json.Marshal(message{
		Recipient: recipient,
		Subject:   subject,
		Body:      body,
		SentAt:    n.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	key := InboxKey(recipient)
	_, err = n.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.RPush(ctx, key, payload)
		p.LTrim(ctx, key, -inboxMaxLen, -1)
		p.Publish(ctx, publishPrefix+recipient, payload)
		return nil
	})
	if err != nil {
		return fmt.Errorf("push notification for %s: %w", recipient, err)
	}
	return nil
}

// Inbox returns the stored notifications for recipient, oldest first.
func (n *Notifier) Inbox(ctx context.Context, recipient string) ([]ports.Notification, error) {
	raw, err := n.client.LRange(ctx, InboxKey(recipient), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read inbox for %s: %w", recipient, err)
	}
	out := make([]ports.Notification, 0, len(raw))
	for _, item := range raw {
		var msg message
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("decode inbox entry: %w", err)
		}
		out = append(out, ports.Notification{
			Recipient: msg.Recipient,
			Subject:   msg.Subject,
			Body:      msg.Body,
			SentAt:    msg.SentAt,
		})
	}
	return out, nil
}

// InboxKey is the list holding recipient's notifications.
func InboxKey(recipient string) string {
	return inboxPrefix + recipient
}
