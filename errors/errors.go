// Package errors defines the sentinel failures of the routing core.
// Resolution and storage failures are terminal for a request; delivery
// failures never are and must not appear here.
package errors

import "fmt"

var (
	ErrRecipientNotFound  = fmt.Errorf("recipient not found")
	ErrRoomNotFound       = fmt.Errorf("room not found")
	ErrStorageUnavailable = fmt.Errorf("message storage unavailable")

	ErrNoSubscription = fmt.Errorf("no push subscription registered")
	ErrUserNotFound   = fmt.Errorf("user not found")
	ErrInvalidToken   = fmt.Errorf("invalid token")
	ErrWorkerPanic    = fmt.Errorf("worker panic")
)
