// Package dispatch fans one notification batch out to many recipients
// with bounded concurrency. One slow or failing target must not delay or
// suppress the others.
package dispatch

import (
	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one push attempt: a target user and the payload built for them.
type Job struct {
	User    domain.User
	Payload domain.NotificationPayload
}

// Dispatcher pushes jobs through the notification transport. Fanout
// enqueues jobs in the order given and runs at most maxInFlight dispatches
// concurrently, each under its own timeout. Failures are logged and
// counted, never returned.
type Dispatcher struct {
	transport   contract.NotificationTransport
	log         *slog.Logger
	counters    *observability.DeliveryCounters
	maxInFlight int
	timeout     time.Duration
}

func NewDispatcher(transport contract.NotificationTransport, log *slog.Logger,
	counters *observability.DeliveryCounters, maxInFlight int, timeout time.Duration) *Dispatcher {
	if maxInFlight < 1 {
		maxInFlight = 1
	}
	return &Dispatcher{
		transport:   transport,
		log:         log,
		counters:    counters,
		maxInFlight: maxInFlight,
		timeout:     timeout,
	}
}

// Fanout attempts every job and returns once all attempts finished.
// The parent context cancels nothing here: a caller giving up on its
// request does not revoke notifications that were already owed.
func (d *Dispatcher) Fanout(ctx context.Context, jobs []Job) {
	sem := make(chan struct{}, d.maxInFlight)
	var wg sync.WaitGroup

	for _, job := range jobs {
		wg.Add(1)
		sem <- struct{}{}
		go func(job Job) {
			defer wg.Done()
			defer func() { <-sem }()
			d.push(context.WithoutCancel(ctx), job)
		}(job)
	}
	wg.Wait()
}

func (d *Dispatcher) push(ctx context.Context, job Job) {
	pushCtx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	d.counters.PushAttempts.Add(1)
	if err := d.transport.Push(pushCtx, job.User, job.Payload); err != nil {
		d.counters.PushFailures.Add(1)
		d.log.Warn("push dispatch failed",
			"user_id", job.User.ID,
			"title", job.Payload.Title,
			"error", err)
	}
}
