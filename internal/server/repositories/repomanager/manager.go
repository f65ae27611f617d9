package repomanager

import (
	"context"
	"database/sql"

	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/repositories/achievements"
	"github.com/aletheia-net/aletheia/internal/server/repositories/comments"
	"github.com/aletheia-net/aletheia/internal/server/repositories/notifications"
	"github.com/aletheia-net/aletheia/internal/server/repositories/posts"
	"github.com/aletheia-net/aletheia/internal/server/repositories/profiles"
	"github.com/aletheia-net/aletheia/internal/server/repositories/quests"
	"github.com/aletheia-net/aletheia/internal/server/repositories/reports"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// multiple repositories inside one transaction by passing the same handle.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Profiles(db dbx.DBTX) profiles.Repository
	Quests(db dbx.DBTX) quests.Repository
	Posts(db dbx.DBTX) posts.Repository
	Comments(db dbx.DBTX) comments.Repository
	Notifications(db dbx.DBTX) notifications.Repository
	Achievements(db dbx.DBTX) achievements.Repository
	Reports(db dbx.DBTX) reports.Repository
}
