// Package ws is the live transport boundary: it authenticates sessions,
// decodes named inbound events, and carries outbound delivery frames.
// Everything behind it deals in resolved senders and validated commands.
package ws

import (
	errs "chat-relay/errors"

	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
)

const (
	// EventAck confirms an inbound send back to the issuing session.
	EventAck = "ack"
	// EventError reports a rejected inbound event.
	EventError = "error"
)

var validate = validator.New()

// Envelope is one inbound frame: a named event plus its raw body.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Frame is one outbound frame.
type Frame struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type directMessageBody struct {
	To      string `json:"to" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type roomMessageBody struct {
	RoomID  string `json:"roomId" validate:"required"`
	Message string `json:"message" validate:"required"`
}

type errorBody struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const (
	kindInvalidPayload = "invalid_payload"
	kindNotFound       = "not_found"
	kindStorageFailure = "storage_failure"
	kindUnknownEvent   = "unknown_event"
)

// kindOf maps a router error to the kind reported to the client. The two
// fatal kinds are the only ones a caller can ever see.
func kindOf(err error) string {
	switch {
	case errors.Is(err, errs.ErrRecipientNotFound), errors.Is(err, errs.ErrRoomNotFound):
		return kindNotFound
	case errors.Is(err, errs.ErrStorageUnavailable):
		return kindStorageFailure
	default:
		return kindStorageFailure
	}
}

func decodeBody(data json.RawMessage, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return err
	}
	return validate.Struct(dst)
}
