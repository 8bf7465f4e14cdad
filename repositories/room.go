package repositories

import (
	errs "chat-relay/errors"

	"chat-relay/domain"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type IRoomRepository interface {
	GetRoomByID(id string) (domain.Room, error)
	SaveRoom(room domain.Room) error
}

// RoomRepository stores rooms with their member snapshot inline. Member
// order is preserved as stored; fanout relies on that.
type RoomRepository struct {
	db *badger.DB
}

func NewRoomRepository(db *badger.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

func (r *RoomRepository) GetRoomByID(id string) (domain.Room, error) {
	var room domain.Room

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("room:" + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &room)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.Room{}, errs.ErrRoomNotFound
	}
	if err != nil {
		return domain.Room{}, fmt.Errorf("get room %q: %w", id, err)
	}
	return room, nil
}

func (r *RoomRepository) SaveRoom(room domain.Room) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("room:"+room.ID), data)
	})
}
