package domain

import (
	"time"

	"github.com/google/uuid"
)

// Message is an immutable chat event. It is created exclusively by the
// message store on successful persistence; the router only references it
// for delivery afterwards.
type Message struct {
	ID          uuid.UUID `json:"id"`
	SenderID    string    `json:"senderId"`
	SenderName  string    `json:"senderName"`
	RecipientID string    `json:"recipientId,omitempty"`
	RoomID      string    `json:"roomId,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
}

// DeliveryReceipt confirms a room send: the persisted message plus the
// acknowledgement that the live broadcast was dispatched.
type DeliveryReceipt struct {
	Message   Message `json:"message"`
	Broadcast bool    `json:"broadcast"`
}
