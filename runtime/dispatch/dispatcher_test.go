package dispatch

import (
	"chat-relay/domain"
	"chat-relay/mocks"
	"chat-relay/observability"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestDispatcher_Fanout_AttemptsEveryJob(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockNotificationTransport(ctrl)
	counters := observability.NewDeliveryCounters()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	jobs := make([]Job, 10)
	for i := range jobs {
		jobs[i] = Job{
			User:    domain.User{ID: fmt.Sprintf("u-%d", i)},
			Payload: domain.NotificationPayload{Title: "t", Body: "b"},
		}
	}

	var mu sync.Mutex
	seen := map[string]bool{}
	transport.EXPECT().
		Push(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user domain.User, _ domain.NotificationPayload) error {
			mu.Lock()
			seen[user.ID] = true
			mu.Unlock()
			if user.ID == "u-3" {
				return fmt.Errorf("endpoint unreachable")
			}
			return nil
		}).
		Times(len(jobs))

	dispatcher := NewDispatcher(transport, log, counters, 3, time.Second)
	dispatcher.Fanout(context.Background(), jobs)

	req.Len(seen, len(jobs))
	req.Equal(uint64(len(jobs)), counters.PushAttempts.Load())
	req.Equal(uint64(1), counters.PushFailures.Load())
}

func TestDispatcher_Fanout_BoundsConcurrency(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockNotificationTransport(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	const maxInFlight = 2
	var inFlight, peak atomic.Int64

	transport.EXPECT().
		Push(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.User, _ domain.NotificationPayload) error {
			current := inFlight.Add(1)
			defer inFlight.Add(-1)
			for {
				observed := peak.Load()
				if current <= observed || peak.CompareAndSwap(observed, current) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			return nil
		}).
		Times(8)

	dispatcher := NewDispatcher(transport, log, observability.NewDeliveryCounters(), maxInFlight, time.Second)
	jobs := make([]Job, 8)
	dispatcher.Fanout(context.Background(), jobs)

	req.LessOrEqual(peak.Load(), int64(maxInFlight))
	req.Zero(inFlight.Load())
}

func TestDispatcher_Fanout_SurvivesCanceledCaller(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	transport := mocks.NewMockNotificationTransport(ctrl)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var pushCtxErr error
	transport.EXPECT().
		Push(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(pushCtx context.Context, _ domain.User, _ domain.NotificationPayload) error {
			pushCtxErr = pushCtx.Err()
			return nil
		})

	dispatcher := NewDispatcher(transport, log, observability.NewDeliveryCounters(), 1, time.Second)
	dispatcher.Fanout(ctx, []Job{{User: domain.User{ID: "u-1"}}})

	// The caller gave up, the notification still went out.
	req.NoError(pushCtxErr)
}
