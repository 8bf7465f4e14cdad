package domain

import "fmt"

// NotificationPayload is the push counterpart of a delivered message.
// One payload is built per target and never persisted.
type NotificationPayload struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ActionURL string `json:"actionUrl"`
}

// DirectNotification notifies the recipient of a direct message.
// The action focuses the thread with the sender, or navigates to it.
func DirectNotification(sender User, msg Message, baseURL string) NotificationPayload {
	return NotificationPayload{
		Title:     sender.Name,
		Body:      msg.Content,
		ActionURL: fmt.Sprintf("%s/direct-message/%s", baseURL, sender.Name),
	}
}

// RoomNotification notifies one member of a room message.
// The action focuses the room view, or navigates to it.
func RoomNotification(sender User, room Room, msg Message, baseURL string) NotificationPayload {
	return NotificationPayload{
		Title:     room.Title,
		Body:      fmt.Sprintf("%s: %s", sender.Name, msg.Content),
		ActionURL: fmt.Sprintf("%s/room/%s", baseURL, room.ID),
	}
}
