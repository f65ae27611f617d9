package progression

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aletheia-net/aletheia/internal/server/models"
)

func baseStats() models.Stats {
	s := models.DefaultStats()
	s.Level = 1
	s.XP = 0
	s.XPToNextLevel = 100
	return s
}

func TestApplyReward_NoLevelUp(t *testing.T) {
	got := ApplyReward(baseStats(), Reward{XP: 40})
	require.Equal(t, 1, got.Level)
	require.Equal(t, 40, got.XP)
	require.Equal(t, 100, got.XPToNextLevel)
}

func TestApplyReward_SingleLevelUp(t *testing.T) {
	got := ApplyReward(baseStats(), Reward{XP: 100})
	require.Equal(t, 2, got.Level)
	require.Equal(t, 0, got.XP)
	require.Equal(t, 120, got.XPToNextLevel)
}

func TestApplyReward_MultiLevelUp(t *testing.T) {
	// 100 + 120 = 220 crosses two thresholds exactly.
	got := ApplyReward(baseStats(), Reward{XP: 220})
	require.Equal(t, 3, got.Level)
	require.Equal(t, 0, got.XP)
	require.Equal(t, 144, got.XPToNextLevel)
}

func TestApplyReward_LargeRewardCrossesKThresholds(t *testing.T) {
	// Thresholds from 100: 100, 120, 144, 172, ... Sum the first k and add
	// a remainder; the level must rise by exactly k.
	thresholds := []int{100, 120, 144}
	sum := 0
	for _, th := range thresholds {
		sum += th
	}
	got := ApplyReward(baseStats(), Reward{XP: sum + 7})
	require.Equal(t, 1+len(thresholds), got.Level)
	require.Equal(t, 7, got.XP)
	require.Less(t, got.XP, got.XPToNextLevel)
}

func TestApplyReward_LoopInvariant(t *testing.T) {
	for _, xp := range []int{0, 1, 99, 100, 101, 219, 220, 1000, 99999} {
		got := ApplyReward(baseStats(), Reward{XP: xp})
		require.Less(t, got.XP, got.XPToNextLevel, "xp=%d", xp)
		require.GreaterOrEqual(t, got.XP, 0, "xp=%d", xp)
	}
}

func TestApplyReward_StatDeltas(t *testing.T) {
	s := baseStats()
	s.Physical = 3
	s.Spiritual = 2
	got := ApplyReward(s, Reward{Stats: map[models.Attribute]int{
		models.AttributePhysical:  2,
		models.AttributeSpiritual: -1,
	}})
	require.Equal(t, 5, got.Physical)
	require.Equal(t, 1, got.Spiritual)
	require.Equal(t, s.Intelligence, got.Intelligence)
}

func TestApplyReward_ClampsAttributesAtZero(t *testing.T) {
	s := baseStats()
	s.Wealth = 2
	got := ApplyReward(s, Reward{Stats: map[models.Attribute]int{
		models.AttributeWealth: -10,
	}})
	require.Equal(t, 0, got.Wealth)
}

func TestApplyReward_IgnoresUnknownAttributes(t *testing.T) {
	s := baseStats()
	got := ApplyReward(s, Reward{Stats: map[models.Attribute]int{
		models.Attribute("charisma"): 5,
	}})
	require.Equal(t, s, got)
}

func TestApplyReward_NegativeXPClampedAtZero(t *testing.T) {
	s := baseStats()
	s.XP = 30
	got := ApplyReward(s, Reward{XP: -100})
	require.Equal(t, 0, got.XP)
	require.Equal(t, s.Level, got.Level)
}

func TestApplyReward_RepairsBrokenThreshold(t *testing.T) {
	s := baseStats()
	s.XPToNextLevel = 0
	got := ApplyReward(s, Reward{XP: 10})
	require.Greater(t, got.XPToNextLevel, 0)
	require.Less(t, got.XP, got.XPToNextLevel)
}

func TestLevelsGained(t *testing.T) {
	before := baseStats()
	after := ApplyReward(before, Reward{XP: 220})
	require.Equal(t, 2, LevelsGained(before, after))
}
