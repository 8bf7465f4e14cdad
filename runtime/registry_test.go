package runtime

import (
	"chat-relay/contract"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	mu     sync.Mutex
	events []string
}

func (s *recordingSink) Deliver(event string, _ any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

func TestRegistry_SubscribeAndLookup(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	tab := &recordingSink{}
	phone := &recordingSink{}
	registry.Subscribe("u-alice", "s-1", tab)
	registry.Subscribe("u-alice", "s-2", phone)

	sinks := registry.SinksFor("u-alice")
	req.Len(sinks, 2)
	req.ElementsMatch([]contract.LiveSink{tab, phone}, sinks)
}

func TestRegistry_UnknownUserHasNoSinks(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	req.Nil(registry.SinksFor("u-nobody"))
}

func TestRegistry_UnsubscribeRemovesOnlyThatSession(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	tab := &recordingSink{}
	phone := &recordingSink{}
	registry.Subscribe("u-alice", "s-1", tab)
	registry.Subscribe("u-alice", "s-2", phone)

	registry.Unsubscribe("u-alice", "s-1")
	sinks := registry.SinksFor("u-alice")
	req.Len(sinks, 1)
	req.Same(phone, sinks[0].(*recordingSink))

	registry.Unsubscribe("u-alice", "s-2")
	req.Nil(registry.SinksFor("u-alice"))
}

func TestRegistry_UnsubscribeUnknownSessionIsANoOp(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	registry.Unsubscribe("u-alice", "s-ghost")
	registry.Subscribe("u-alice", "s-1", &recordingSink{})
	registry.Unsubscribe("u-alice", "s-ghost")

	req.Len(registry.SinksFor("u-alice"), 1)
}

func TestRegistry_ConcurrentChurn(t *testing.T) {
	req := require.New(t)
	registry := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			sessionID := string(rune('a' + n%26))
			registry.Subscribe("u-alice", sessionID, &recordingSink{})
			registry.SinksFor("u-alice")
			registry.Unsubscribe("u-alice", sessionID)
		}(i)
	}
	wg.Wait()

	req.Nil(registry.SinksFor("u-alice"))
}
