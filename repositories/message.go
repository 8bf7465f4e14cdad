// Package repositories persists users, rooms, messages, and push
// subscriptions in BadgerDB. Keyspaces: "user:", "room:", "sub:", and
// "msg:". Values are JSON-encoded records.
package repositories

import (
	errs "chat-relay/errors"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/observability"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
)

var _ contract.MessageStore = (*MessageRepository)(nil)

// MessageRepository is the durable message store. Keys embed a 19-digit
// zero-padded nanosecond timestamp so messages sort chronologically under
// their conversation prefix, with the UUID as a collision disconnector
// when two messages land on the same nanosecond.
type MessageRepository struct {
	db       *badger.DB
	log      *slog.Logger
	counters *observability.DeliveryCounters
}

func NewMessageRepository(db *badger.DB, log *slog.Logger,
	counters *observability.DeliveryCounters) *MessageRepository {
	return &MessageRepository{db: db, log: log, counters: counters}
}

// RecordDirect mints and persists a direct message. The conversation
// prefix uses the sorted pair of user ids so both directions of a thread
// share one keyspace.
func (m *MessageRepository) RecordDirect(_ context.Context, sender, recipient domain.User,
	content string) (domain.Message, error) {
	msg := domain.Message{
		ID:          uuid.New(),
		SenderID:    sender.ID,
		SenderName:  sender.Name,
		RecipientID: recipient.ID,
		Content:     content,
		CreatedAt:   time.Now().UTC(),
	}
	return m.persist("msg:dm:"+pairKey(sender.ID, recipient.ID), msg)
}

// RecordRoom mints and persists a room message.
func (m *MessageRepository) RecordRoom(_ context.Context, sender domain.User,
	room domain.Room, content string) (domain.Message, error) {
	msg := domain.Message{
		ID:         uuid.New(),
		SenderID:   sender.ID,
		SenderName: sender.Name,
		RoomID:     room.ID,
		Content:    content,
		CreatedAt:  time.Now().UTC(),
	}
	return m.persist("msg:room:"+room.ID, msg)
}

func (m *MessageRepository) persist(prefix string, msg domain.Message) (domain.Message, error) {
	key := fmt.Sprintf("%s:%019d:%s", prefix, msg.CreatedAt.UnixNano(), msg.ID)

	data, err := json.Marshal(msg)
	if err != nil {
		return domain.Message{}, errors.Join(errs.ErrStorageUnavailable, err)
	}

	err = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), data)
	})
	if err != nil {
		return domain.Message{}, errors.Join(errs.ErrStorageUnavailable, err)
	}

	m.counters.MessagesPersisted.Add(1)
	return msg, nil
}

// ListRoomMessages scans a room's keyspace in chronological order, up to
// limit entries. Serves the debug inspector, not the router.
func (m *MessageRepository) ListRoomMessages(roomID string, limit int) ([]domain.Message, error) {
	var messages []domain.Message
	prefix := []byte("msg:room:" + roomID + ":")

	err := m.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(messages) == limit {
				break
			}
			err := it.Item().Value(func(val []byte) error {
				var msg domain.Message
				if err := json.Unmarshal(val, &msg); err != nil {
					return err
				}
				messages = append(messages, msg)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(errs.ErrStorageUnavailable, err)
	}
	return messages, nil
}

// pairKey gives both directions of a direct thread the same prefix.
func pairKey(a, b string) string {
	if strings.Compare(a, b) > 0 {
		a, b = b, a
	}
	return a + "~" + b
}
