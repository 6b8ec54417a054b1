package entity

import "time"

// Notification is one entry in a user's personal notification list.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	IsRead    bool      `json:"is_read"`
}

// Broadcast is a single shared announcement visible to every user. It is
// written once per send, independent of how many per-user copies succeed,
// and carries no per-user read state.
type Broadcast struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DisplayNotification is the merged read-side shape: personal entries and
// broadcasts in one list, broadcasts tagged so the UI can render them as
// visible-to-everyone.
type DisplayNotification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Timestamp   time.Time `json:"timestamp"`
	IsRead      bool      `json:"is_read"`
	IsBroadcast bool      `json:"is_broadcast"`
}

// Recipient is one row of the user directory a fan-out delivers to.
type Recipient struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SendSummary is the aggregate result of one fan-out call.
type SendSummary struct {
	Total       int  `json:"total"`
	Failed      int  `json:"failed"`
	BroadcastOk bool `json:"broadcast_ok"`
}
