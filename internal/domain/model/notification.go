package model

import "time"

// Notification is a message shown to a portal user.
type Notification struct {
	ID        string
	UserID    string
	ProjectID string
	Title     string
	Message   string
	Read      bool
	CreatedAt time.Time
}
