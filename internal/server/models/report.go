package models

import "time"

// Moderation verdict actions, as produced by the oracle.
const (
	VerdictWarn   = "WARN"
	VerdictBan    = "BAN"
	VerdictDelete = "DELETE"
	VerdictNone   = "NONE"
)

// Report records a moderation request together with the verdict that was
// applied to the target profile.
type Report struct {
	ID           int64     `json:"id"`
	ReporterID   string    `json:"reporterId"`
	TargetUserID *string   `json:"targetUserId,omitempty"`
	TargetPostID *int64    `json:"targetPostId,omitempty"`
	Reason       string    `json:"reason"`
	AIVerdict    string    `json:"aiVerdict"`
	ActionTaken  string    `json:"actionTaken"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ValidVerdict reports whether v is one of the four known actions.
func ValidVerdict(v string) bool {
	switch v {
	case VerdictWarn, VerdictBan, VerdictDelete, VerdictNone:
		return true
	}
	return false
}
