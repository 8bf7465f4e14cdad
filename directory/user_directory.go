// Package directory implements the router's resolution and live-delivery
// ports on top of the repositories and the session registry.
package directory

import (
	"chat-relay/contract"
	"chat-relay/observability"
	"chat-relay/repositories"
	"chat-relay/runtime"
	"context"
	"log/slog"

	"chat-relay/domain"
)

var _ contract.UserDirectory = (*UserDirectory)(nil)

type UserDirectory struct {
	users    repositories.IUserRepository
	registry *runtime.Registry
	counters *observability.DeliveryCounters
	log      *slog.Logger
}

func NewUserDirectory(users repositories.IUserRepository, registry *runtime.Registry,
	counters *observability.DeliveryCounters, log *slog.Logger) *UserDirectory {
	return &UserDirectory{users: users, registry: registry, counters: counters, log: log}
}

func (d *UserDirectory) Resolve(_ context.Context, id string) (domain.User, error) {
	return d.users.GetUserByID(id)
}

// DeliverLive hands the event to every live session of the user. A user
// with no session is skipped without error; a session whose buffer is
// full drops the frame and is only counted.
func (d *UserDirectory) DeliverLive(_ context.Context, userID, event string, payload any) {
	for _, sink := range d.registry.SinksFor(userID) {
		if err := sink.Deliver(event, payload); err != nil {
			d.counters.LiveDrops.Add(1)
			d.log.Debug("live delivery dropped", "user_id", userID, "event", event, "error", err)
			continue
		}
		d.counters.LiveDeliveries.Add(1)
	}
}
