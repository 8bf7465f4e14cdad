package ws

import (
	errs "chat-relay/errors"

	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeBody_DirectMessage(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		raw         string
		wantErr     bool
	}{
		{"Should accept a complete body", `{"to":"u-bob","message":"hi"}`, false},
		{"Should reject a missing recipient", `{"message":"hi"}`, true},
		{"Should reject an empty message", `{"to":"u-bob","message":""}`, true},
		{"Should reject malformed JSON", `{"to":`, true},
		{"Should reject a wrongly typed field", `{"to":42,"message":"hi"}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			var body directMessageBody
			err := decodeBody(json.RawMessage(tt.raw), &body)
			req.Equal(tt.wantErr, err != nil, tt.description)
		})
	}
}

func TestDecodeBody_RoomMessage(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		description string
		raw         string
		wantErr     bool
	}{
		{"Should accept a complete body", `{"roomId":"r-1","message":"hi all"}`, false},
		{"Should reject a missing room", `{"message":"hi all"}`, true},
		{"Should reject an empty message", `{"roomId":"r-1","message":""}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			var body roomMessageBody
			err := decodeBody(json.RawMessage(tt.raw), &body)
			req.Equal(tt.wantErr, err != nil, tt.description)
		})
	}
}

func TestKindOf(t *testing.T) {
	req := require.New(t)

	req.Equal(kindNotFound, kindOf(fmt.Errorf("recipient: %w", errs.ErrRecipientNotFound)))
	req.Equal(kindNotFound, kindOf(fmt.Errorf("room: %w", errs.ErrRoomNotFound)))
	req.Equal(kindStorageFailure, kindOf(fmt.Errorf("record: %w", errs.ErrStorageUnavailable)))
	req.Equal(kindStorageFailure, kindOf(fmt.Errorf("something unexpected")))
}
