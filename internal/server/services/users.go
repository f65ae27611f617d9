// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile management, the
// follow graph, notifications, achievements and the leaderboard.
package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/auth"
	"github.com/aletheia-net/aletheia/internal/server/config"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/oracle"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

// LeaderboardSize is the number of profiles returned by the leaderboard.
const LeaderboardSize = 20

// UserService provides account-related operations:
// - Register: create a profile, let the oracle judge its initial identity
// - Login: verify credentials and mint a JWT, honoring moderation locks
// - profile reads/updates, follow toggling, notifications, achievements
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	oracle                      oracle.Client
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	now                         func() time.Time
}

// NewUserService constructs a UserService using repositories, the oracle
// client and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, oc oracle.Client, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		oracle:                      oc,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		now:                         time.Now,
	}
}

// identityReply is the oracle's answer to IdentityPrompt.
type identityReply struct {
	Reason       string `json:"reason"`
	Class        string `json:"class"`
	Intelligence int    `json:"intelligence"`
	Physical     int    `json:"physical"`
	Spiritual    int    `json:"spiritual"`
	Social       int    `json:"social"`
	Wealth       int    `json:"wealth"`
}

// initialIdentity asks the oracle to judge the manifesto. Any failure falls
// back to the default level-1 identity.
func (s *UserService) initialIdentity(ctx context.Context, manifesto string) (models.Stats, string) {
	stats := models.DefaultStats()

	raw, ok := oracle.TryObject(ctx, s.oracle, oracle.IdentityPrompt(manifesto))
	if !ok {
		return stats, ""
	}
	var r identityReply
	if err := json.Unmarshal(raw, &r); err != nil {
		return stats, ""
	}

	if r.Class != "" {
		stats.Class = r.Class
	}
	for a, v := range map[models.Attribute]int{
		models.AttributeIntelligence: r.Intelligence,
		models.AttributePhysical:     r.Physical,
		models.AttributeSpiritual:    r.Spiritual,
		models.AttributeSocial:       r.Social,
		models.AttributeWealth:       r.Wealth,
	} {
		if v > 0 {
			stats.SetAttribute(a, v)
		}
	}
	return stats, r.Reason
}

// Register creates a new profile. The oracle assigns the initial stats and
// class from the manifesto; if it is unavailable the default identity is
// used instead. Returns the profile together with a fresh access token.
func (s *UserService) Register(ctx context.Context, username, password, manifesto string) (*models.Profile, string, error) {
	if username == "" || password == "" {
		return nil, "", common.ErrorValidation
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", common.ErrorInternal
	}

	stats, originStory := s.initialIdentity(ctx, manifesto)

	profile := &models.Profile{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		DisplayName:  username,
		Manifesto:    manifesto,
		OriginStory:  originStory,
		Stats:        stats,
		Following:    []string{},
	}

	repo := s.repomanager.Profiles(s.db)
	created, err := repo.Create(ctx, profile)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, "", common.ErrorAlreadyExists
		}
		return nil, "", common.ErrorInternal
	}

	token, err := auth.GenerateToken(created.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return created, token, nil
}

// Login verifies the credentials and returns the profile with a fresh access
// token. Accounts under an active moderation lock are refused with
// ErrorAccountLocked carrying the unlock timestamp.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.Profile, string, error) {
	repo := s.repomanager.Profiles(s.db)

	profile, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", common.ErrorInternal
	}

	if !auth.CheckPassword(profile.PasswordHash, password) {
		return nil, "", common.ErrorUnauthorized
	}

	if until, locked := profile.LockedUntil(s.now()); locked {
		return nil, "", fmt.Errorf("%w until %s", common.ErrorAccountLocked, until.Format(time.RFC3339))
	}

	token, err := auth.GenerateToken(profile.ID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, "", common.ErrorInternal
	}
	return profile, token, nil
}

// GetProfile returns the profile by id.
func (s *UserService) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	return s.repomanager.Profiles(s.db).GetByID(ctx, id)
}

// ProfileUpdate lists the fields a client may overwrite. Nil fields keep
// their stored values.
type ProfileUpdate struct {
	DisplayName *string
	AvatarURL   *string
	CoverURL    *string
	Manifesto   *string
	Entropy     *int
	Tasks       json.RawMessage
	Inventory   json.RawMessage
}

// UpdateProfile applies a partial overwrite of the editable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) (*models.Profile, error) {
	repo := s.repomanager.Profiles(s.db)

	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.DisplayName != nil {
		profile.DisplayName = *upd.DisplayName
	}
	if upd.AvatarURL != nil {
		profile.AvatarURL = *upd.AvatarURL
	}
	if upd.CoverURL != nil {
		profile.CoverURL = *upd.CoverURL
	}
	if upd.Manifesto != nil {
		profile.Manifesto = *upd.Manifesto
	}
	if upd.Entropy != nil {
		profile.Entropy = *upd.Entropy
	}
	if upd.Tasks != nil {
		profile.Tasks = upd.Tasks
	}
	if upd.Inventory != nil {
		profile.Inventory = upd.Inventory
	}

	if err := repo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// FollowToggle adds targetID to the user's following set, or removes it if
// already present. A FOLLOW notification is created only on the add
// transition. Returns whether the user follows the target afterwards.
func (s *UserService) FollowToggle(ctx context.Context, userID, targetID string) (bool, error) {
	if userID == targetID {
		return false, common.ErrorValidation
	}

	var following bool
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Profiles(tx)

		if _, err := repo.GetByID(ctx, targetID); err != nil {
			return err
		}

		profile, err := repo.GetByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}

		if profile.IsFollowing(targetID) {
			next := make([]string, 0, len(profile.Following))
			for _, id := range profile.Following {
				if id != targetID {
					next = append(next, id)
				}
			}
			following = false
			return repo.UpdateFollowing(ctx, userID, next)
		}

		following = true
		if err := repo.UpdateFollowing(ctx, userID, append(profile.Following, targetID)); err != nil {
			return err
		}

		_, err = s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
			UserID:   targetID,
			Type:     models.NotificationFollow,
			SenderID: &userID,
		})
		return err
	})
	return following, err
}

// Leaderboard returns the top profiles ordered by level, ties broken by
// entropy.
func (s *UserService) Leaderboard(ctx context.Context) ([]*models.Profile, error) {
	return s.repomanager.Profiles(s.db).Leaderboard(ctx, LeaderboardSize)
}

// Notifications returns the user's notifications, newest first.
func (s *UserService) Notifications(ctx context.Context, userID string) ([]*models.Notification, error) {
	return s.repomanager.Notifications(s.db).ListByUser(ctx, userID)
}

// MarkNotificationRead marks a single notification as read.
func (s *UserService) MarkNotificationRead(ctx context.Context, id int64) error {
	return s.repomanager.Notifications(s.db).MarkRead(ctx, id)
}

// Achievements returns the user's unlocked achievements.
func (s *UserService) Achievements(ctx context.Context, userID string) ([]*models.Achievement, error) {
	return s.repomanager.Achievements(s.db).ListByUser(ctx, userID)
}
