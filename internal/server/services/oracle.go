package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/oracle"
	"github.com/aletheia-net/aletheia/internal/server/progression"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

// Fallback values used when the oracle is unreachable or returns something
// unusable. Failures are silent towards the client.
const (
	fallbackName        = "Initiate"
	fallbackFeatXP      = 10
	fallbackFeatMessage = "The void acknowledges your effort."
)

// OracleService implements the oracle-backed features: mysterious names,
// feat scoring, the daily mirror scenario and the wisdom quote. Rewards
// judged by the oracle are applied through the progression engine.
type OracleService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	oracle      oracle.Client
	cache       oracle.Cache
	now         func() time.Time
}

// NewOracleService constructs an OracleService.
func NewOracleService(db *sql.DB, m repomanager.RepositoryManager, oc oracle.Client, cache oracle.Cache) *OracleService {
	return &OracleService{db: db, repomanager: m, oracle: oc, cache: cache, now: time.Now}
}

// MysteriousName returns a single RPG-style name. Multi-line or quoted
// replies are reduced to the first line with quotes stripped.
func (s *OracleService) MysteriousName(ctx context.Context) string {
	text, ok := oracle.TryText(ctx, s.oracle, oracle.NamePrompt())
	if !ok {
		return fallbackName
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	text = strings.Trim(strings.TrimSpace(text), `"'`)
	if text == "" {
		return fallbackName
	}
	return text
}

// FeatResult is the oracle's judgement of a claimed real-world feat.
type FeatResult struct {
	XPGained       int            `json:"xpGained"`
	StatsIncreased map[string]int `json:"statsIncreased"`
	SystemMessage  string         `json:"systemMessage"`
}

// Feat asks the oracle to score a claimed feat and applies the resulting
// reward to the user's stats. Oracle failures degrade to a small fixed
// reward rather than an error.
func (s *OracleService) Feat(ctx context.Context, userID, feat string) (*FeatResult, models.Stats, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, models.Stats{}, err
	}

	result := &FeatResult{XPGained: fallbackFeatXP, SystemMessage: fallbackFeatMessage}
	if raw, ok := oracle.TryObject(ctx, s.oracle, oracle.FeatPrompt(feat, profile.Stats)); ok {
		var parsed FeatResult
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.XPGained > 0 {
			result = &parsed
		}
	}

	var stats models.Stats
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		stats, err = applyRewardTx(ctx, tx, s.repomanager, userID, progression.Reward{
			XP:    result.XPGained,
			Stats: statReward(result.StatsIncreased),
		})
		return err
	})
	if err != nil {
		return nil, models.Stats{}, err
	}
	return result, stats, nil
}

// MirrorScenario is a psychological dilemma tuned to the user's stats.
type MirrorScenario struct {
	Situation  string `json:"situation"`
	ChoiceA    string `json:"choiceA"`
	ChoiceB    string `json:"choiceB"`
	Context    string `json:"context"`
	TestedStat string `json:"testedStat"`
}

func fallbackScenario() *MirrorScenario {
	return &MirrorScenario{
		Situation:  "You stand before a mirror that shows not your face, but your habits.",
		ChoiceA:    "Look closer.",
		ChoiceB:    "Turn away.",
		Context:    "The mirror does not judge. It only reflects.",
		TestedStat: string(models.AttributeSpiritual),
	}
}

// Scenario returns the mirror dilemma for the user's class. One scenario
// is generated per class per day; later calls on the same day return the
// cached one.
func (s *OracleService) Scenario(ctx context.Context, userID string) (*MirrorScenario, error) {
	profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := oracle.DailyKey(profile.Stats.Class, s.now())
	if cached, ok := s.cache.Get(key); ok {
		var scenario MirrorScenario
		if err := json.Unmarshal([]byte(cached), &scenario); err == nil {
			return &scenario, nil
		}
	}

	raw, ok := oracle.TryObject(ctx, s.oracle, oracle.MirrorScenarioPrompt(profile.Stats))
	if !ok {
		return fallbackScenario(), nil
	}
	var scenario MirrorScenario
	if err := json.Unmarshal(raw, &scenario); err != nil || scenario.Situation == "" {
		return fallbackScenario(), nil
	}

	s.cache.Set(key, string(raw))
	return &scenario, nil
}

// MirrorOutcome is the oracle's evaluation of a dilemma choice. StatChange
// values may be negative; the progression engine clamps scores at zero.
type MirrorOutcome struct {
	Outcome    string         `json:"outcome"`
	XP         int            `json:"xp"`
	StatChange map[string]int `json:"statChange"`
}

func fallbackOutcome() *MirrorOutcome {
	return &MirrorOutcome{Outcome: "The mirror clouds over before an answer forms.", XP: 5}
}

// Evaluate judges the user's choice in a mirror scenario and applies the
// outcome to their stats.
func (s *OracleService) Evaluate(ctx context.Context, userID, situation, choice, testedStat string) (*MirrorOutcome, models.Stats, error) {
	outcome := fallbackOutcome()
	if raw, ok := oracle.TryObject(ctx, s.oracle, oracle.MirrorEvaluatePrompt(situation, choice, testedStat)); ok {
		var parsed MirrorOutcome
		if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Outcome != "" {
			outcome = &parsed
		}
	}

	var stats models.Stats
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var err error
		stats, err = applyRewardTx(ctx, tx, s.repomanager, userID, progression.Reward{
			XP:    outcome.XP,
			Stats: statReward(outcome.StatChange),
		})
		return err
	})
	if err != nil {
		return nil, models.Stats{}, err
	}
	return outcome, stats, nil
}

// Wisdom is a short philosophical quote.
type Wisdom struct {
	Text   string `json:"text"`
	Author string `json:"author"`
}

func fallbackWisdom() *Wisdom {
	return &Wisdom{Text: "Stare into the void.", Author: "The Council"}
}

// DailyWisdom returns the quote of the day, generating it at most once per
// calendar day.
func (s *OracleService) DailyWisdom(ctx context.Context) *Wisdom {
	key := oracle.DailyKey("wisdom", s.now())
	if cached, ok := s.cache.Get(key); ok {
		var w Wisdom
		if err := json.Unmarshal([]byte(cached), &w); err == nil {
			return &w
		}
	}

	raw, ok := oracle.TryObject(ctx, s.oracle, oracle.WisdomPrompt())
	if !ok {
		return fallbackWisdom()
	}
	var w Wisdom
	if err := json.Unmarshal(raw, &w); err != nil || w.Text == "" {
		return fallbackWisdom()
	}

	s.cache.Set(key, string(raw))
	return &w
}
