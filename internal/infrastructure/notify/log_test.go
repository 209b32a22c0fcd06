package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestLogNotifier_WritesStructuredLine(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(zerolog.New(&buf))

	if err := n.Notify(context.Background(), "alice", "New Bug Assigned", "You were assigned: Crash"); err != nil {
		t.Fatalf("notify: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	want := map[string]string{
		"to":        "alice",
		"subject":   "New Bug Assigned",
		"body":      "You were assigned: Crash",
		"component": "notifier",
		"message":   "email notification",
		"level":     "info",
	}
	for k, v := range want {
		if line[k] != v {
			t.Errorf("%s: got %v want %q", k, line[k], v)
		}
	}
}
