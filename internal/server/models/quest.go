package models

import "time"

// Difficulty labels, easiest to hardest.
const (
	DifficultyE = "E"
	DifficultyD = "D"
	DifficultyC = "C"
	DifficultyB = "B"
	DifficultyA = "A"
	DifficultyS = "S"
)

// Quest is a time-boxed real-world task proposed by the oracle. completed
// is monotonic false→true; expiry is derived from ExpiresAt, never stored.
type Quest struct {
	ID         int64             `json:"id"`
	UserID     string            `json:"userId"`
	Text       string            `json:"text"`
	Difficulty string            `json:"difficulty"`
	XPReward   int               `json:"xpReward"`
	StatReward map[Attribute]int `json:"statReward,omitempty"`
	ExpiresAt  *time.Time        `json:"expiresAt,omitempty"`
	Completed  bool              `json:"completed"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Expired reports whether the quest passed its expiry without being
// completed. A completed quest never counts as expired.
func (q *Quest) Expired(now time.Time) bool {
	return !q.Completed && q.ExpiresAt != nil && q.ExpiresAt.Before(now)
}

// Active reports whether the quest still counts against the generation
// guard: not completed and not expired.
func (q *Quest) Active(now time.Time) bool {
	return !q.Completed && !q.Expired(now)
}

// ValidDifficulty reports whether d is one of the six ordinal labels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyE, DifficultyD, DifficultyC, DifficultyB, DifficultyA, DifficultyS:
		return true
	}
	return false
}
