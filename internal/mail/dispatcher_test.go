package mail

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/trektide/trektide/internal/config"
)

func TestDispatcher_CloseDrainsQueue(t *testing.T) {
	// Unconfigured SMTP makes every send fail fast; the worker still has
	// to consume each queued message before Close returns.
	d := NewDispatcher(NewMailer(&config.Config{}), zerolog.Nop())

	for i := 0; i < 10; i++ {
		d.Dispatch(Message{To: "someone@example.com", Subject: "hi", Body: "hello"})
	}

	done := make(chan struct{})
	go func() {
		d.Close()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not drain the queue")
	}
}

func TestFirstName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ada Lovelace", "Ada"},
		{"Ada", "Ada"},
		{"Ada Byron Lovelace", "Ada"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := firstName(tt.in); got != tt.want {
			t.Errorf("firstName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
