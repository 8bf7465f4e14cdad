// Package domain contains core concepts of the message routing system.
// Entities here are plain data; no transport, storage, or UI logic.
package domain

// User is an authenticated identity. The sender of a request is always a
// resolved User handed over by the authentication boundary.
type User struct {
	ID   string
	Name string
}

// PushSubscription is the endpoint material needed for one user's
// out-of-band push channel, as registered by the client.
type PushSubscription struct {
	UserID   string `json:"userId"`
	Endpoint string `json:"endpoint"`
	P256dh   string `json:"p256dh"`
	Auth     string `json:"auth"`
}
