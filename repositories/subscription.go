package repositories

import (
	errs "chat-relay/errors"

	"chat-relay/domain"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type ISubscriptionRepository interface {
	GetSubscription(userID string) (domain.PushSubscription, error)
	SaveSubscription(sub domain.PushSubscription) error
}

// SubscriptionRepository keeps one push subscription per user, replaced
// on re-registration.
type SubscriptionRepository struct {
	db *badger.DB
}

func NewSubscriptionRepository(db *badger.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) GetSubscription(userID string) (domain.PushSubscription, error) {
	var sub domain.PushSubscription

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte("sub:" + userID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &sub)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.PushSubscription{}, errs.ErrNoSubscription
	}
	if err != nil {
		return domain.PushSubscription{}, fmt.Errorf("get subscription for %q: %w", userID, err)
	}
	return sub, nil
}

func (r *SubscriptionRepository) SaveSubscription(sub domain.PushSubscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte("sub:"+sub.UserID), data)
	})
}
