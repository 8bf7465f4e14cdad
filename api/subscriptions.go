package api

import (
	"chat-relay/domain"
	"chat-relay/repositories"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type subscriptionRequest struct {
	Endpoint string `json:"endpoint" validate:"required,url"`
	P256dh   string `json:"p256dh" validate:"required"`
	Auth     string `json:"auth" validate:"required"`
}

// SubscriptionHandler registers a caller's push endpoint. Re-registering
// replaces the previous subscription.
type SubscriptionHandler struct {
	subs repositories.ISubscriptionRepository
	log  *slog.Logger
}

func NewSubscriptionHandler(subs repositories.ISubscriptionRepository, log *slog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{subs: subs, log: log}
}

func (h *SubscriptionHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req subscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sub := domain.PushSubscription{
		UserID:   userIDFrom(r.Context()),
		Endpoint: req.Endpoint,
		P256dh:   req.P256dh,
		Auth:     req.Auth,
	}
	if err := h.subs.SaveSubscription(sub); err != nil {
		h.log.Error("failed to save subscription", "user_id", sub.UserID, "error", err)
		http.Error(w, "storage unavailable", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
