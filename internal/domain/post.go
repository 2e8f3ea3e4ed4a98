package domain

import "time"

// Post is a single image post published by a user.
type Post struct {
	ID          int64
	UserID      int64
	ImagePath   string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PostOwner is the abbreviated author info attached to feed entries.
type PostOwner struct {
	ID       int64
	Username string
}

// FeedPost is a post enriched with its like count and owner for the feed.
type FeedPost struct {
	Post
	LikeCount int
	Owner     PostOwner
}
