// Package progression converts externally-determined rewards into new
// profile stats: level-up arithmetic and attribute deltas. Functions here
// are pure; persistence is the caller's concern.
package progression

import "github.com/aletheia-net/aletheia/internal/server/models"

// Reward is an XP gain plus a partial map of attribute deltas. Deltas may
// be negative (moral-dilemma outcomes subtract).
type Reward struct {
	XP    int                      `json:"xp"`
	Stats map[models.Attribute]int `json:"stats,omitempty"`
}

// growthFactor scales the XP threshold on each level-up.
const growthFactor = 1.2

// ApplyReward returns the stats after applying the reward.
//
// The level-up loops: a single reward large enough to cross several
// thresholds raises the level once per threshold crossed, leaving
// xp < xpToNextLevel. Attribute deltas are applied for known attributes
// only and the results are clamped at 0; both XP and attributes never go
// negative.
func ApplyReward(stats models.Stats, r Reward) models.Stats {
	out := stats

	xp := out.XP + r.XP
	if xp < 0 {
		xp = 0
	}
	level := out.Level
	threshold := out.XPToNextLevel
	if threshold <= 0 {
		threshold = models.DefaultStats().XPToNextLevel
	}

	for xp >= threshold {
		level++
		xp -= threshold
		threshold = int(float64(threshold) * growthFactor)
	}

	out.XP = xp
	out.Level = level
	out.XPToNextLevel = threshold

	for _, a := range models.KnownAttributes() {
		delta, ok := r.Stats[a]
		if !ok || delta == 0 {
			continue
		}
		v := out.Attribute(a) + delta
		if v < 0 {
			v = 0
		}
		out.SetAttribute(a, v)
	}

	return out
}

// LevelsGained reports how many level boundaries the reward crossed.
func LevelsGained(before, after models.Stats) int {
	return after.Level - before.Level
}
