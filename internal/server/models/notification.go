package models

import "time"

// Notification types.
const (
	NotificationFollow     = "FOLLOW"
	NotificationResonance  = "RESONANCE"
	NotificationSystemWarn = "SYSTEM_WARN"
)

// Notification is addressed to one recipient profile. IsRead is monotonic
// false→true.
type Notification struct {
	ID        int64     `json:"id"`
	UserID    string    `json:"userId"`
	Type      string    `json:"type"`
	SenderID  *string   `json:"senderId,omitempty"`
	PostID    *int64    `json:"postId,omitempty"`
	Content   string    `json:"content,omitempty"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Achievement is an unlocked milestone shown on the profile page.
type Achievement struct {
	ID          int64     `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	UnlockedAt  time.Time `json:"unlockedAt"`
}
