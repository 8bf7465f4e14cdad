//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"chat-relay/domain"
	"context"
	"reflect"
)

// UserDirectory resolves user identities and owns their live connections.
type UserDirectory interface {
	// Resolve returns the user for id, or errors.ErrUserNotFound.
	Resolve(ctx context.Context, id string) (domain.User, error)
	// DeliverLive pushes an event to every live session of the user.
	// A user with no live session is silently skipped.
	DeliverLive(ctx context.Context, userID, event string, payload any)
}

// RoomDirectory resolves rooms and delivers room-scoped broadcasts.
type RoomDirectory interface {
	// Resolve returns the room for id, or errors.ErrRoomNotFound.
	Resolve(ctx context.Context, id string) (domain.Room, error)
	// BroadcastLive pushes an event to the live sessions of every room
	// member in a single room-scoped call. The returned ack only states
	// that the broadcast was dispatched.
	BroadcastLive(ctx context.Context, room domain.Room, event string, payload any) bool
}

// MessageStore durably records messages and mints their canonical form.
// A message must be recorded before any delivery is attempted.
type MessageStore interface {
	RecordDirect(ctx context.Context, sender, recipient domain.User, content string) (domain.Message, error)
	RecordRoom(ctx context.Context, sender domain.User, room domain.Room, content string) (domain.Message, error)
}

// NotificationTransport attempts best-effort push delivery to one user.
// Failures are reported to the caller but are never fatal to a request.
type NotificationTransport interface {
	Push(ctx context.Context, user domain.User, payload domain.NotificationPayload) error
}

// LiveSink is one live connection's inbox. Deliver must not block; a
// sink that cannot keep up reports an error and the frame is dropped.
type LiveSink interface {
	Deliver(event string, payload any) error
}

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}
