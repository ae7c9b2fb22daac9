package model

type Status string

const (
	StatusSpam    Status = "spam"
	StatusNotSpam Status = "not-spam"
	StatusUnknown Status = "unknown"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) Valid() bool {
	return s == StatusSpam || s == StatusNotSpam || s == StatusUnknown
}

// StatusFromClass maps a classifier class index to a status label.
// Indices outside the trained set resolve to unknown.
func StatusFromClass(idx int) Status {
	switch idx {
	case 0:
		return StatusNotSpam
	case 1:
		return StatusSpam
	default:
		return StatusUnknown
	}
}

// Message is the DB entity persisted in the messages table.
// Content keeps the original casing; lowercasing happens only for inference.
type Message struct {
	ID         string `db:"id"          json:"id"`
	Sender     string `db:"sender"      json:"sender"`
	Content    string `db:"content"     json:"content"`
	Timestamp  string `db:"timestamp"   json:"timestamp"`
	Status     Status `db:"status"      json:"status"`
	IsVerified bool   `db:"is_verified" json:"is_verified"`
}
