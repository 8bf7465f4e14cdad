// Package services hosts the message routing core. The router is
// stateless: identities, membership, persistence, and connections all
// live behind the collaborator ports it is constructed with.
package services

import (
	errs "chat-relay/errors"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/runtime/dispatch"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

type IRouterService interface {
	SendDirect(ctx context.Context, sender domain.User, cmd domain.DirectMessageCommand) (domain.Message, error)
	SendRoom(ctx context.Context, sender domain.User, cmd domain.RoomMessageCommand) (domain.DeliveryReceipt, error)
}

// RouterService routes one inbound message to its recipient set over two
// independent channels: the live transport for connected sessions and the
// push transport for everyone else. Persistence happens before any
// delivery; delivery failures never fail the request.
type RouterService struct {
	users      contract.UserDirectory
	rooms      contract.RoomDirectory
	store      contract.MessageStore
	dispatcher *dispatch.Dispatcher
	log        *slog.Logger
	baseURL    string
}

func NewRouterService(users contract.UserDirectory, rooms contract.RoomDirectory,
	store contract.MessageStore, dispatcher *dispatch.Dispatcher,
	log *slog.Logger, baseURL string) *RouterService {
	return &RouterService{
		users:      users,
		rooms:      rooms,
		store:      store,
		dispatcher: dispatcher,
		log:        log,
		baseURL:    baseURL,
	}
}

// SendDirect delivers a message to exactly one recipient. The sender's
// other live sessions receive the message too, so every device shows the
// conversation the same way. Only the recipient is push-notified.
func (s *RouterService) SendDirect(ctx context.Context, sender domain.User,
	cmd domain.DirectMessageCommand) (domain.Message, error) {
	recipient, err := s.users.Resolve(ctx, cmd.To)
	if err != nil {
		if errors.Is(err, errs.ErrUserNotFound) {
			return domain.Message{}, fmt.Errorf("recipient %q: %w", cmd.To, errs.ErrRecipientNotFound)
		}
		return domain.Message{}, fmt.Errorf("resolve recipient %q: %w", cmd.To, err)
	}

	msg, err := s.store.RecordDirect(ctx, sender, recipient, cmd.Content)
	if err != nil {
		return domain.Message{}, fmt.Errorf("record direct message: %w", err)
	}

	s.users.DeliverLive(ctx, sender.ID, domain.EventDirectMessage, msg)
	s.users.DeliverLive(ctx, recipient.ID, domain.EventDirectMessage, msg)

	s.dispatcher.Fanout(ctx, []dispatch.Job{{
		User:    recipient,
		Payload: domain.DirectNotification(sender, msg, s.baseURL),
	}})

	return msg, nil
}

// SendRoom delivers a message to every member of the room's current
// snapshot, sender included. Push payloads are built and enqueued in the
// stored member order; one member's transport failure never reaches the
// next member or the caller.
func (s *RouterService) SendRoom(ctx context.Context, sender domain.User,
	cmd domain.RoomMessageCommand) (domain.DeliveryReceipt, error) {
	room, err := s.rooms.Resolve(ctx, cmd.RoomID)
	if err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("resolve room %q: %w", cmd.RoomID, err)
	}

	msg, err := s.store.RecordRoom(ctx, sender, room, cmd.Content)
	if err != nil {
		return domain.DeliveryReceipt{}, fmt.Errorf("record room message: %w", err)
	}

	jobs := lo.Map(room.Members, func(member domain.User, _ int) dispatch.Job {
		return dispatch.Job{
			User:    member,
			Payload: domain.RoomNotification(sender, room, msg, s.baseURL),
		}
	})
	s.dispatcher.Fanout(ctx, jobs)

	ack := s.rooms.BroadcastLive(ctx, room, domain.EventRoomMessage, msg)
	if !ack {
		s.log.Warn("room broadcast not dispatched", "room_id", room.ID)
	}

	return domain.DeliveryReceipt{Message: msg, Broadcast: ack}, nil
}
