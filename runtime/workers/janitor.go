package workers

import (
	"chat-relay/contract"
	"context"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
)

var _ contract.Worker = (*StoreJanitor)(nil)

// StoreJanitor periodically reclaims space in the badger value log.
// Badger never runs this on its own.
type StoreJanitor struct {
	db       *badger.DB
	interval time.Duration
	log      *slog.Logger
}

func NewStoreJanitor(db *badger.DB, interval time.Duration, log *slog.Logger) *StoreJanitor {
	return &StoreJanitor{db: db, interval: interval, log: log}
}

func (w *StoreJanitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// Repeat until there is nothing left to rewrite.
			for {
				err := w.db.RunValueLogGC(0.5)
				if err == badger.ErrNoRewrite {
					break
				}
				if err != nil {
					w.log.Warn("value log GC failed", "error", err)
					break
				}
				w.log.Debug("value log GC reclaimed a file")
			}
		}
	}
}
