package mail

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/fintrack/finance-system/internal/api/metrics"
	"github.com/fintrack/finance-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher implements ports.Notifier with a fixed pool of workers draining
// a buffered channel. Delivery is best-effort: a failed send is logged and
// lost, never retried, and a full buffer drops the message rather than
// blocking the request that scheduled it. By the time Send is called the
// response-determining effect has already been committed.
type Dispatcher struct {
	queue  chan ports.Message
	mailer Mailer
	log    zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers delivery workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		queue:  make(chan ports.Message, channelBuffer),
		mailer: mailer,
		log:    log,
	}
	for i := 0; i < numWorkers; i++ {
		go d.runWorker(i)
	}
	return d
}

// Send schedules a message for delivery and returns immediately.
func (d *Dispatcher) Send(msg ports.Message) {
	select {
	case d.queue <- msg:
	default:
		metrics.EmailsDroppedTotal.Inc()
		d.log.Warn().Str("subject", msg.Subject).Msg("mail queue full, message dropped")
	}
}

// Close stops accepting messages; workers drain what is already queued.
func (d *Dispatcher) Close() {
	close(d.queue)
}

func (d *Dispatcher) runWorker(id int) {
	for msg := range d.queue {
		if err := d.mailer.Send(context.Background(), msg); err != nil {
			metrics.EmailsSentTotal.WithLabelValues("error").Inc()
			d.log.Error().Err(err).
				Str("subject", msg.Subject).
				Int("worker_id", id).
				Msg("mail delivery failed")
			continue
		}
		metrics.EmailsSentTotal.WithLabelValues("ok").Inc()
		d.log.Debug().Str("subject", msg.Subject).Msg("mail delivered")
	}
}
