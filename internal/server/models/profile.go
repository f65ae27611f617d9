// Package models defines the persistent domain records of Aletheia:
// profiles with their mutable game state, quests, posts, comments,
// notifications, achievements and moderation reports.
package models

import (
	"encoding/json"
	"time"
)

// Attribute is one of the five profile attribute scores. Reward maps are
// keyed by this closed enum; unknown keys coming from the oracle are
// dropped instead of being blindly indexed.
type Attribute string

const (
	AttributeIntelligence Attribute = "intelligence"
	AttributePhysical     Attribute = "physical"
	AttributeSpiritual    Attribute = "spiritual"
	AttributeSocial       Attribute = "social"
	AttributeWealth       Attribute = "wealth"
)

// KnownAttributes lists every valid attribute in display order.
func KnownAttributes() []Attribute {
	return []Attribute{
		AttributeIntelligence,
		AttributePhysical,
		AttributeSpiritual,
		AttributeSocial,
		AttributeWealth,
	}
}

// Stats is the game-state blob stored on a profile. Resonance here is the
// secondary gauge, unrelated to a post's like-count of the same name.
type Stats struct {
	Level         int    `json:"level"`
	XP            int    `json:"xp"`
	XPToNextLevel int    `json:"xpToNextLevel"`
	Intelligence  int    `json:"intelligence"`
	Physical      int    `json:"physical"`
	Spiritual     int    `json:"spiritual"`
	Social        int    `json:"social"`
	Wealth        int    `json:"wealth"`
	Class         string `json:"class"`
	Health        int    `json:"health"`
	MaxHealth     int    `json:"maxHealth"`
	Resonance     int    `json:"resonance"`
	MaxResonance  int    `json:"maxResonance"`
}

// DefaultStats returns the stats a profile starts with when the oracle is
// unavailable at registration time.
func DefaultStats() Stats {
	return Stats{
		Level:         1,
		XP:            0,
		XPToNextLevel: 100,
		Intelligence:  5,
		Physical:      5,
		Spiritual:     5,
		Social:        5,
		Wealth:        5,
		Class:         "Seeker",
		Health:        100,
		MaxHealth:     100,
		Resonance:     50,
		MaxResonance:  100,
	}
}

// Attribute returns the score for a known attribute, 0 otherwise.
func (s Stats) Attribute(a Attribute) int {
	switch a {
	case AttributeIntelligence:
		return s.Intelligence
	case AttributePhysical:
		return s.Physical
	case AttributeSpiritual:
		return s.Spiritual
	case AttributeSocial:
		return s.Social
	case AttributeWealth:
		return s.Wealth
	}
	return 0
}

// SetAttribute overwrites the score for a known attribute. Unknown
// attributes are ignored.
func (s *Stats) SetAttribute(a Attribute, v int) {
	switch a {
	case AttributeIntelligence:
		s.Intelligence = v
	case AttributePhysical:
		s.Physical = v
	case AttributeSpiritual:
		s.Spiritual = v
	case AttributeSocial:
		s.Social = v
	case AttributeWealth:
		s.Wealth = v
	}
}

// Profile is a user's persistent account and game-state record.
type Profile struct {
	ID                string          `json:"id"`
	Username          string          `json:"username"`
	PasswordHash      string          `json:"-"`
	DisplayName       string          `json:"displayName"`
	AvatarURL         string          `json:"avatarUrl"`
	CoverURL          string          `json:"coverUrl"`
	Manifesto         string          `json:"manifesto"`
	OriginStory       string          `json:"originStory"`
	Stats             Stats           `json:"stats"`
	Tasks             json.RawMessage `json:"tasks,omitempty"`
	Inventory         json.RawMessage `json:"inventory,omitempty"`
	Entropy           int             `json:"entropy"`
	Following         []string        `json:"following"`
	IsVerified        bool            `json:"isVerified"`
	IsDeactivated     bool            `json:"isDeactivated"`
	DeactivatedUntil  *time.Time      `json:"deactivatedUntil,omitempty"`
	PendingDeletionAt *time.Time      `json:"pendingDeletionAt,omitempty"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// IsFollowing reports whether the profile follows the given id.
func (p *Profile) IsFollowing(id string) bool {
	for _, f := range p.Following {
		if f == id {
			return true
		}
	}
	return false
}

// LockedUntil returns the later of the moderation timestamps still in the
// future, if any. Login is refused while ok is true.
func (p *Profile) LockedUntil(now time.Time) (time.Time, bool) {
	var until time.Time
	if p.DeactivatedUntil != nil && p.DeactivatedUntil.After(now) {
		until = *p.DeactivatedUntil
	}
	if p.PendingDeletionAt != nil && p.PendingDeletionAt.After(now) && p.PendingDeletionAt.After(until) {
		until = *p.PendingDeletionAt
	}
	return until, !until.IsZero()
}
