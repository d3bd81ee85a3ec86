package models

import (
	"time"
)

// Media kinds derived from the uploaded file's MIME type at creation.
const (
	FileTypeImage = "image"
	FileTypeVideo = "video"
)

// Post represents a published media post. All fields are fixed at creation;
// there is no update path, only create and delete.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	User     *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Caption  string `gorm:"size:500" json:"caption"`
	URL      string `gorm:"not null" json:"url"`
	FileType string `gorm:"not null" json:"file_type"`
	// FileName is the media store's internal object name, kept for
	// future deletion/audit. Not served to clients beyond the feed.
	FileName  string    `gorm:"not null" json:"file_name"`
	CreatedAt time.Time `json:"created_at"`
}

// FeedItem is the client-facing shape of a post in the feed, the post joined
// with its owner's identity and the caller's ownership flag.
type FeedItem struct {
	ID        uint      `json:"id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  string    `json:"file_type"`
	FileName  string    `json:"file_name"`
	Email     string    `json:"email"`
	IsOwner   bool      `json:"is_owner"`
	CreatedAt time.Time `json:"created_at"`
}
