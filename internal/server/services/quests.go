package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/oracle"
	"github.com/aletheia-net/aletheia/internal/server/progression"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

const (
	// maxActiveQuests is the generation guard: a user holding this many
	// active quests gets no new ones.
	maxActiveQuests = 5

	questBatchSize       = 3
	defaultQuestDuration = 24 * time.Hour
	defaultQuestXP       = 25

	questGuardMessage = "The Oracle waits for your current trials to conclude."
)

// QuestService generates quests through the oracle and completes them,
// applying the reward in the same transaction that marks the quest done.
type QuestService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	oracle      oracle.Client
	now         func() time.Time
}

// NewQuestService constructs a QuestService.
func NewQuestService(db *sql.DB, m repomanager.RepositoryManager, oc oracle.Client) *QuestService {
	return &QuestService{db: db, repomanager: m, oracle: oc, now: time.Now}
}

// questProposal is one element of the oracle's answer to QuestBatchPrompt.
type questProposal struct {
	Text          string         `json:"text"`
	Difficulty    string         `json:"difficulty"`
	XPReward      int            `json:"xpReward"`
	StatReward    map[string]int `json:"statReward"`
	DurationHours int            `json:"durationHours"`
}

// fallbackProposals is used when the oracle is unavailable or returns
// nothing usable.
func fallbackProposals() []questProposal {
	return []questProposal{
		{Text: "Walk for thirty minutes without your phone.", Difficulty: models.DifficultyE, XPReward: 20, StatReward: map[string]int{"physical": 1}, DurationHours: 24},
		{Text: "Write down three things you avoided thinking about today.", Difficulty: models.DifficultyD, XPReward: 30, StatReward: map[string]int{"spiritual": 1}, DurationHours: 24},
		{Text: "Start a conversation with someone you usually only greet.", Difficulty: models.DifficultyD, XPReward: 30, StatReward: map[string]int{"social": 1}, DurationHours: 24},
	}
}

// statReward filters a raw attribute map down to the known attributes.
func statReward(raw map[string]int) map[models.Attribute]int {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[models.Attribute]int)
	for _, a := range models.KnownAttributes() {
		if v, ok := raw[string(a)]; ok && v != 0 {
			out[a] = v
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Generate proposes a batch of quests for the user. If the user already
// holds maxActiveQuests active (not completed, not expired) quests, nothing
// is generated and the guard message is returned instead.
func (s *QuestService) Generate(ctx context.Context, userID string, goals []string) ([]*models.Quest, string, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	now := s.now()
	questRepo := s.repomanager.Quests(s.db)

	active, err := questRepo.CountActive(ctx, userID, now)
	if err != nil {
		return nil, "", err
	}
	if active >= maxActiveQuests {
		return nil, questGuardMessage, nil
	}

	proposals := fallbackProposals()
	prompt := oracle.QuestBatchPrompt(profile.Stats.Class, profile.Stats.Level, questBatchSize, goals)
	if raw, ok := oracle.TryArray(ctx, s.oracle, prompt); ok {
		var parsed []questProposal
		if err := json.Unmarshal(raw, &parsed); err == nil && len(parsed) > 0 {
			proposals = parsed
		}
	}

	created := make([]*models.Quest, 0, len(proposals))
	for _, p := range proposals {
		if p.Text == "" {
			continue
		}
		if !models.ValidDifficulty(p.Difficulty) {
			p.Difficulty = models.DifficultyE
		}
		if p.XPReward <= 0 {
			p.XPReward = defaultQuestXP
		}
		duration := defaultQuestDuration
		if p.DurationHours > 0 {
			duration = time.Duration(p.DurationHours) * time.Hour
		}
		expires := now.Add(duration)

		quest, err := questRepo.Create(ctx, &models.Quest{
			UserID:     userID,
			Text:       p.Text,
			Difficulty: p.Difficulty,
			XPReward:   p.XPReward,
			StatReward: statReward(p.StatReward),
			ExpiresAt:  &expires,
		})
		if err != nil {
			return nil, "", err
		}
		created = append(created, quest)
	}

	return created, "", nil
}

// List returns the user's quests, newest first.
func (s *QuestService) List(ctx context.Context, userID string) ([]*models.Quest, error) {
	return s.repomanager.Quests(s.db).ListByUser(ctx, userID)
}

// Complete marks a quest completed and applies its reward to the owner's
// stats in one transaction, so the reward is obtainable exactly once.
// Only the quest's owner may complete it; anyone else gets ErrorNotFound.
// Returns ErrorQuestCompleted on repeat completion and ErrorQuestExpired
// for an uncompleted quest past its expiry.
func (s *QuestService) Complete(ctx context.Context, userID string, questID int64) (*models.Quest, models.Stats, error) {
	var (
		quest *models.Quest
		stats models.Stats
	)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		questRepo := s.repomanager.Quests(tx)

		q, err := questRepo.GetByIDForUpdate(ctx, questID)
		if err != nil {
			return err
		}
		if q.UserID != userID {
			return common.ErrorNotFound
		}
		if q.Completed {
			return common.ErrorQuestCompleted
		}
		if q.Expired(s.now()) {
			return common.ErrorQuestExpired
		}

		if err := questRepo.MarkCompleted(ctx, q.ID); err != nil {
			return err
		}
		q.Completed = true

		stats, err = applyRewardTx(ctx, tx, s.repomanager, q.UserID, progression.Reward{
			XP:    q.XPReward,
			Stats: q.StatReward,
		})
		if err != nil {
			return err
		}

		quest = q
		return nil
	})
	if err != nil {
		return nil, models.Stats{}, err
	}
	return quest, stats, nil
}
