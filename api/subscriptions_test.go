package api

import (
	errs "chat-relay/errors"

	"chat-relay/domain"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type memorySubscriptionRepo struct {
	saved map[string]domain.PushSubscription
}

func (r *memorySubscriptionRepo) GetSubscription(userID string) (domain.PushSubscription, error) {
	sub, ok := r.saved[userID]
	if !ok {
		return domain.PushSubscription{}, errs.ErrNoSubscription
	}
	return sub, nil
}

func (r *memorySubscriptionRepo) SaveSubscription(sub domain.PushSubscription) error {
	r.saved[sub.UserID] = sub
	return nil
}

func postSubscription(handler *SubscriptionHandler, userID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/subscriptions", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), userIDKey, userID))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)
	return rec
}

func TestSubscriptionHandler_Register(t *testing.T) {
	req := require.New(t)
	repo := &memorySubscriptionRepo{saved: map[string]domain.PushSubscription{}}
	handler := NewSubscriptionHandler(repo, logs.GetLoggerFromLevel(slog.LevelDebug))

	rec := postSubscription(handler, "u-alice",
		`{"endpoint":"https://push.example.com/ep","p256dh":"key","auth":"secret"}`)

	req.Equal(http.StatusNoContent, rec.Code)
	req.Equal(domain.PushSubscription{
		UserID:   "u-alice",
		Endpoint: "https://push.example.com/ep",
		P256dh:   "key",
		Auth:     "secret",
	}, repo.saved["u-alice"])
}

func TestSubscriptionHandler_RejectsInvalidBodies(t *testing.T) {
	req := require.New(t)
	repo := &memorySubscriptionRepo{saved: map[string]domain.PushSubscription{}}
	handler := NewSubscriptionHandler(repo, logs.GetLoggerFromLevel(slog.LevelDebug))

	tests := []struct {
		description string
		body        string
	}{
		{"Should reject malformed JSON", `{"endpoint":`},
		{"Should reject a missing endpoint", `{"p256dh":"key","auth":"secret"}`},
		{"Should reject a non-URL endpoint", `{"endpoint":"not a url","p256dh":"key","auth":"secret"}`},
		{"Should reject missing keys", `{"endpoint":"https://push.example.com/ep"}`},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			rec := postSubscription(handler, "u-alice", tt.body)
			req.Equal(http.StatusBadRequest, rec.Code, tt.description)
		})
	}
	req.Empty(repo.saved)
}
