package domain

// Room groups a fixed set of members. The member slice is the stored
// order and is treated as an immutable snapshot during a single fanout.
type Room struct {
	ID      string
	Title   string
	Members []User
}
