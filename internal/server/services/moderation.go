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
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

const (
	banDuration             = 10 * 24 * time.Hour
	deletionGracePeriod     = 3 * 24 * time.Hour
	warnNotificationContent = "The Council has reviewed a report against you. Consider this a warning."
)

// ModerationService stores reports, asks the oracle for a verdict and
// applies it to the target profile. An unusable oracle reply degrades to
// NONE; reports never fail because the oracle is down.
type ModerationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	oracle      oracle.Client
	now         func() time.Time
}

// NewModerationService constructs a ModerationService.
func NewModerationService(db *sql.DB, m repomanager.RepositoryManager, oc oracle.Client) *ModerationService {
	return &ModerationService{db: db, repomanager: m, oracle: oc, now: time.Now}
}

// verdictReply is the oracle's answer to VerdictPrompt.
type verdictReply struct {
	Action      string `json:"action"`
	Explanation string `json:"explanation"`
}

// reportTarget resolves the reported user id and the content to judge.
func (s *ModerationService) reportTarget(ctx context.Context, targetUserID *string, targetPostID *int64) (string, string, error) {
	if targetPostID != nil {
		post, err := s.repomanager.Posts(s.db).GetByID(ctx, *targetPostID)
		if err != nil {
			return "", "", err
		}
		if post.AuthorID == nil {
			return "", post.Content, nil
		}
		return *post.AuthorID, post.Content, nil
	}
	if targetUserID != nil {
		profile, err := s.repomanager.Profiles(s.db).GetByID(ctx, *targetUserID)
		if err != nil {
			return "", "", err
		}
		return profile.ID, profile.Manifesto, nil
	}
	return "", "", common.ErrorValidation
}

// Report files a moderation report, obtains a verdict and applies it:
// WARN notifies the target, BAN deactivates the account for ten days,
// DELETE schedules deletion in three days. The stored report records both
// the verdict and the action taken.
func (s *ModerationService) Report(ctx context.Context, reporterID string, targetUserID *string, targetPostID *int64, reason string) (*models.Report, error) {
	if reason == "" {
		return nil, common.ErrorValidation
	}

	targetID, content, err := s.reportTarget(ctx, targetUserID, targetPostID)
	if err != nil {
		return nil, err
	}

	verdict := models.VerdictNone
	if raw, ok := oracle.TryObject(ctx, s.oracle, oracle.VerdictPrompt(reason, content)); ok {
		var r verdictReply
		if err := json.Unmarshal(raw, &r); err == nil && models.ValidVerdict(r.Action) {
			verdict = r.Action
		}
	}

	var report *models.Report
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		action, err := s.applyVerdict(ctx, tx, targetID, verdict)
		if err != nil {
			return err
		}

		report, err = s.repomanager.Reports(tx).Create(ctx, &models.Report{
			ReporterID:   reporterID,
			TargetUserID: targetUserID,
			TargetPostID: targetPostID,
			Reason:       reason,
			AIVerdict:    verdict,
			ActionTaken:  action,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// applyVerdict enforces the verdict against the target profile and returns
// a description of the action taken. A missing target (system post) makes
// every verdict a no-op.
func (s *ModerationService) applyVerdict(ctx context.Context, tx dbx.DBTX, targetID, verdict string) (string, error) {
	if targetID == "" {
		return "no action: no target profile", nil
	}

	switch verdict {
	case models.VerdictWarn:
		_, err := s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
			UserID:  targetID,
			Type:    models.NotificationSystemWarn,
			Content: warnNotificationContent,
		})
		if err != nil {
			return "", err
		}
		return "warning issued", nil

	case models.VerdictBan:
		until := s.now().Add(banDuration)
		if err := s.repomanager.Profiles(tx).SetModeration(ctx, targetID, true, &until, nil); err != nil {
			return "", err
		}
		return "account deactivated for 10 days", nil

	case models.VerdictDelete:
		at := s.now().Add(deletionGracePeriod)
		if err := s.repomanager.Profiles(tx).SetModeration(ctx, targetID, true, nil, &at); err != nil {
			return "", err
		}
		return "account scheduled for deletion in 3 days", nil
	}

	return "no action", nil
}
