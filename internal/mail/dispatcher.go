package mail

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/trektide/trektide/internal/models"
)

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Dispatcher sends mail off the request path through a buffered worker.
// When the queue is full the message is dropped; mail must never stall or
// break the API.
type Dispatcher struct {
	mailer *Mailer
	queue  chan Message
	logger zerolog.Logger
	done   chan struct{}
}

func NewDispatcher(mailer *Mailer, logger zerolog.Logger) *Dispatcher {
	d := &Dispatcher{
		mailer: mailer,
		queue:  make(chan Message, 100),
		logger: logger,
		done:   make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for msg := range d.queue {
		if err := d.mailer.Send(msg.To, msg.Subject, msg.Body); err != nil {
			d.logger.Error().Err(err).Str("to", msg.To).Msg("mail send failed")
		}
	}
}

// Close stops intake and waits for queued mail to go out. Dispatch must
// not be called afterwards.
func (d *Dispatcher) Close() {
	close(d.queue)
	<-d.done
}

func (d *Dispatcher) Dispatch(msg Message) {
	select {
	case d.queue <- msg:
	default:
		d.logger.Warn().Str("to", msg.To).Msg("mail queue full, dropping message")
	}
}

func (d *Dispatcher) SendWelcome(user *models.User, accountURL string) {
	d.Dispatch(Message{
		To:      user.Email,
		Subject: "Welcome to the Trektide family!",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWelcome to Trektide, we're glad to have you.\nManage your account here: %s\n",
			firstName(user.Name), accountURL,
		),
	})
}

func firstName(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}
	return name
}
