// Package notify holds notifiers that need no external service.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/Yasmeen645/Bug-Tracking-System/internal/core/ports"
)

// LogNotifier writes each notification as a structured log line. It stands
// in for an email gateway.
type LogNotifier struct {
	log zerolog.Logger
}

func NewLogNotifier(log zerolog.Logger) *LogNotifier {
	return &LogNotifier{log: log.With().Str("component", "notifier").Logger()}
}

var _ ports.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) Notify(_ context.Context, recipient, subject, body string) error {
	n.log.Info().
		Str("to", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("email notification")
	return nil
}
