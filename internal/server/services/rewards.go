package services

import (
	"context"

	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/progression"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

// applyRewardTx applies a reward to the user's stats inside the caller's
// transaction. The profile row is locked first so concurrent rewards
// serialize. Crossing out of level 1 unlocks the Ascendant achievement.
func applyRewardTx(ctx context.Context, tx dbx.DBTX, m repomanager.RepositoryManager, userID string, reward progression.Reward) (models.Stats, error) {
	repo := m.Profiles(tx)

	profile, err := repo.GetByIDForUpdate(ctx, userID)
	if err != nil {
		return models.Stats{}, err
	}

	before := profile.Stats
	after := progression.ApplyReward(before, reward)

	if err := repo.UpdateStats(ctx, userID, after); err != nil {
		return models.Stats{}, err
	}

	if before.Level == 1 && after.Level > 1 {
		_, err = m.Achievements(tx).Create(ctx, &models.Achievement{
			UserID:      userID,
			Title:       "Ascendant",
			Description: "Break through to level 2 for the first time.",
			Icon:        "arrow-up",
		})
		if err != nil {
			return models.Stats{}, err
		}
	}

	return after, nil
}
