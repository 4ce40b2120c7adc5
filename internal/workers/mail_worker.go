// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-newsroom/internal/adapter"
	"github.com/MKhiriev/go-newsroom/internal/logger"
	"github.com/MKhiriev/go-newsroom/models"
)

const (
	defaultSendTimeout  = 10 * time.Second
	defaultFlushTimeout = 5 * time.Second
)

// MailWorker delivers queued messages one at a time. Delivery failures are
// logged and the message is discarded.
type MailWorker struct {
	queue  chan models.MailMessage
	sender adapter.MailSender

	// sendTimeout bounds a single delivery.
	sendTimeout time.Duration

	// flushTimeout bounds the delivery of messages still queued at shutdown.
	flushTimeout time.Duration

	logger *logger.Logger
}

// NewMailWorker creates a worker with a queue of queueSize messages.
// A non-positive sendTimeout selects the default of 10s.
func NewMailWorker(sender adapter.MailSender, queueSize int, sendTimeout time.Duration, logger *logger.Logger) *MailWorker {
	if queueSize < 1 {
		queueSize = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = defaultSendTimeout
	}

	return &MailWorker{
		queue:        make(chan models.MailMessage, queueSize),
		sender:       sender,
		sendTimeout:  sendTimeout,
		flushTimeout: defaultFlushTimeout,
		logger:       logger,
	}
}

// Enqueue adds a message without blocking. It returns false when the queue
// is full and the message was dropped.
func (w *MailWorker) Enqueue(message models.MailMessage) bool {
	select {
	case w.queue <- message:
		return true
	default:
		w.logger.Warn().
			Str("kind", string(message.Kind)).
			Int("capacity", cap(w.queue)).
			Msg("mail queue is full, message dropped")
		return false
	}
}

// Run delivers messages until ctx is cancelled, then tries to deliver what is
// left in the queue within flushTimeout.
func (w *MailWorker) Run(ctx context.Context) error {
	w.logger.Info().Int("capacity", cap(w.queue)).Msg("mail worker started")

	for {
		// cancellation wins over a ready message
		if ctx.Err() != nil {
			return w.stop(ctx)
		}

		select {
		case <-ctx.Done():
			return w.stop(ctx)
		case message := <-w.queue:
			w.send(ctx, message)
		}
	}
}

func (w *MailWorker) stop(ctx context.Context) error {
	w.flush(context.WithoutCancel(ctx))
	w.logger.Info().Msg("mail worker stopped")
	return nil
}

func (w *MailWorker) flush(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, w.flushTimeout)
	defer cancel()

	for {
		select {
		case message := <-w.queue:
			if ctx.Err() != nil {
				w.logger.Warn().Str("kind", string(message.Kind)).Msg("mail dropped at shutdown")
				continue
			}
			w.send(ctx, message)
		default:
			return
		}
	}
}

func (w *MailWorker) send(ctx context.Context, message models.MailMessage) {
	ctx, cancel := context.WithTimeout(ctx, w.sendTimeout)
	defer cancel()

	if err := w.sender.Send(ctx, message); err != nil {
		w.logger.Err(err).
			Str("kind", string(message.Kind)).
			Str("to", message.ToEmail).
			Msg("mail delivery failed")
		return
	}

	w.logger.Debug().
		Str("kind", string(message.Kind)).
		Str("to", message.ToEmail).
		Msg("mail delivered")
}
