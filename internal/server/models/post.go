package models

import "time"

// Post is a feed entry. Resonance is always derived as len(LikedBy); it is
// never incremented independently.
type Post struct {
	ID           int64      `json:"id"`
	AuthorID     *string    `json:"authorId"`
	Content      string     `json:"content"`
	LikedBy      []string   `json:"likedBy"`
	Resonance    int        `json:"resonance"`
	IsSystemPost bool       `json:"isSystemPost"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Liked reports whether userID is in the post's like set.
func (p *Post) Liked(userID string) bool {
	for _, id := range p.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// Comment belongs to one post; ParentID enables one-level-deep threading.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	ParentID  *int64    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
