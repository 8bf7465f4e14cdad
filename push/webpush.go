// Package push implements the notification transport over Web Push.
// Delivery is best-effort by contract: every error returned here is
// logged and counted by the dispatcher, never surfaced to a sender.
package push

import (
	errs "chat-relay/errors"

	"chat-relay/contract"
	"chat-relay/domain"
	"chat-relay/repositories"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
)

var _ contract.NotificationTransport = (*WebPushTransport)(nil)

type WebPushTransport struct {
	subs       repositories.ISubscriptionRepository
	log        *slog.Logger
	subscriber string
	vapidPub   string
	vapidPriv  string
	ttl        int
}

func NewWebPushTransport(subs repositories.ISubscriptionRepository, log *slog.Logger,
	subscriber, vapidPublicKey, vapidPrivateKey string, ttlSeconds int) *WebPushTransport {
	return &WebPushTransport{
		subs:       subs,
		log:        log,
		subscriber: subscriber,
		vapidPub:   vapidPublicKey,
		vapidPriv:  vapidPrivateKey,
		ttl:        ttlSeconds,
	}
}

// Push sends one notification to the user's registered endpoint. A user
// without a subscription is a normal outcome, reported as
// errors.ErrNoSubscription.
func (t *WebPushTransport) Push(ctx context.Context, user domain.User,
	payload domain.NotificationPayload) error {
	sub, err := t.subs.GetSubscription(user.ID)
	if err != nil {
		return err
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	resp, err := webpush.SendNotificationWithContext(ctx, body, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      t.subscriber,
		VAPIDPublicKey:  t.vapidPub,
		VAPIDPrivateKey: t.vapidPriv,
		TTL:             t.ttl,
	})
	if err != nil {
		return fmt.Errorf("send web push: %w", err)
	}
	defer resp.Body.Close()

	// 404/410 mean the endpoint is gone; the stale subscription would be
	// replaced on the client's next registration.
	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		t.log.Debug("push endpoint expired", "user_id", user.ID, "status", resp.StatusCode)
		return fmt.Errorf("push endpoint expired: %w", errs.ErrNoSubscription)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("push endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
