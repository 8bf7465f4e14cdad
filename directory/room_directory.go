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

var _ contract.RoomDirectory = (*RoomDirectory)(nil)

type RoomDirectory struct {
	rooms    repositories.IRoomRepository
	registry *runtime.Registry
	counters *observability.DeliveryCounters
	log      *slog.Logger
}

func NewRoomDirectory(rooms repositories.IRoomRepository, registry *runtime.Registry,
	counters *observability.DeliveryCounters, log *slog.Logger) *RoomDirectory {
	return &RoomDirectory{rooms: rooms, registry: registry, counters: counters, log: log}
}

func (d *RoomDirectory) Resolve(_ context.Context, id string) (domain.Room, error) {
	return d.rooms.GetRoomByID(id)
}

// BroadcastLive delivers the event to the live sessions of every member
// of the given snapshot. Offline members are skipped silently. The ack
// states only that the broadcast was dispatched.
func (d *RoomDirectory) BroadcastLive(_ context.Context, room domain.Room, event string, payload any) bool {
	for _, member := range room.Members {
		for _, sink := range d.registry.SinksFor(member.ID) {
			if err := sink.Deliver(event, payload); err != nil {
				d.counters.LiveDrops.Add(1)
				d.log.Debug("live broadcast dropped",
					"room_id", room.ID, "user_id", member.ID, "error", err)
				continue
			}
			d.counters.LiveDeliveries.Add(1)
		}
	}
	return true
}
