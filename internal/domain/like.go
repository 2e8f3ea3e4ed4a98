package domain

import "time"

// Like records that a user liked a post. At most one row exists per
// (UserID, PostID) pair.
type Like struct {
	UserID    int64
	PostID    int64
	CreatedAt time.Time
}

// Notification tells a post owner that someone liked their post. It is
// derived from the like ledger on every read and never persisted.
type Notification struct {
	PostID   int64
	UserID   int64
	Username string
}
