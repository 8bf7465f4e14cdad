package domain

// Inbound event names of the live transport. The same names are reused
// for the outbound delivery frames, mirroring what clients subscribed to.
const (
	EventDirectMessage = "message:direct"
	EventRoomMessage   = "message:room"
)

// DirectMessageCommand is a validated intent to message a single user.
type DirectMessageCommand struct {
	To      string
	Content string
}

// RoomMessageCommand is a validated intent to message all room members.
type RoomMessageCommand struct {
	RoomID  string
	Content string
}
