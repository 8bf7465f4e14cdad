// Package observability aggregates delivery signals for operators.
// Best-effort failures never reach callers, so these counters are the
// only place where live drops and push failures become visible.
package observability

import "sync/atomic"

type DeliveryCounters struct {
	MessagesPersisted atomic.Uint64
	LiveDeliveries    atomic.Uint64
	LiveDrops         atomic.Uint64
	PushAttempts      atomic.Uint64
	PushFailures      atomic.Uint64
}

func NewDeliveryCounters() *DeliveryCounters {
	return &DeliveryCounters{}
}

// Snapshot returns the current values for the debug endpoint.
func (c *DeliveryCounters) Snapshot() map[string]any {
	return map[string]any{
		"messages_persisted": c.MessagesPersisted.Load(),
		"live_deliveries":    c.LiveDeliveries.Load(),
		"live_drops":         c.LiveDrops.Load(),
		"push_attempts":      c.PushAttempts.Load(),
		"push_failures":      c.PushFailures.Load(),
	}
}
