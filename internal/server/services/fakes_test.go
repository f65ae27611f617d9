package services

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/repositories/achievements"
	"github.com/aletheia-net/aletheia/internal/server/repositories/comments"
	"github.com/aletheia-net/aletheia/internal/server/repositories/notifications"
	"github.com/aletheia-net/aletheia/internal/server/repositories/posts"
	"github.com/aletheia-net/aletheia/internal/server/repositories/profiles"
	"github.com/aletheia-net/aletheia/internal/server/repositories/quests"
	"github.com/aletheia-net/aletheia/internal/server/repositories/reports"
)

// fakeStore is a shared in-memory backing for every fake repository, so a
// single test sees one consistent world regardless of which repo wrote.
type fakeStore struct {
	profiles      map[string]*models.Profile
	quests        map[int64]*models.Quest
	posts         map[int64]*models.Post
	comments      []*models.Comment
	notifications []*models.Notification
	achievements  []*models.Achievement
	reports       []*models.Report
	nextID        int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		profiles: make(map[string]*models.Profile),
		quests:   make(map[int64]*models.Quest),
		posts:    make(map[int64]*models.Post),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

// fakeManager vends fake repositories over the shared store. The DBTX
// argument is ignored: transactional behavior is not under test here.
type fakeManager struct {
	store *fakeStore
}

func (m *fakeManager) RunMigrations(ctx context.Context, db *sql.DB) error { return nil }

func (m *fakeManager) Profiles(db dbx.DBTX) profiles.Repository { return &fakeProfiles{m.store} }
func (m *fakeManager) Quests(db dbx.DBTX) quests.Repository    { return &fakeQuests{m.store} }
func (m *fakeManager) Posts(db dbx.DBTX) posts.Repository      { return &fakePosts{m.store} }
func (m *fakeManager) Comments(db dbx.DBTX) comments.Repository {
	return &fakeComments{m.store}
}
func (m *fakeManager) Notifications(db dbx.DBTX) notifications.Repository {
	return &fakeNotifications{m.store}
}
func (m *fakeManager) Achievements(db dbx.DBTX) achievements.Repository {
	return &fakeAchievements{m.store}
}
func (m *fakeManager) Reports(db dbx.DBTX) reports.Repository { return &fakeReports{m.store} }

type fakeProfiles struct{ s *fakeStore }

func cloneProfile(p *models.Profile) *models.Profile {
	c := *p
	c.Following = append([]string(nil), p.Following...)
	return &c
}

func (r *fakeProfiles) Create(ctx context.Context, p *models.Profile) (*models.Profile, error) {
	for _, existing := range r.s.profiles {
		if strings.EqualFold(existing.Username, p.Username) {
			return nil, common.ErrorAlreadyExists
		}
	}
	c := cloneProfile(p)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.s.profiles[c.ID] = c
	return cloneProfile(c), nil
}

func (r *fakeProfiles) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneProfile(p), nil
}

func (r *fakeProfiles) GetByIDForUpdate(ctx context.Context, id string) (*models.Profile, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeProfiles) GetByUsername(ctx context.Context, username string) (*models.Profile, error) {
	for _, p := range r.s.profiles {
		if strings.EqualFold(p.Username, username) {
			return cloneProfile(p), nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeProfiles) Update(ctx context.Context, p *models.Profile) error {
	if _, ok := r.s.profiles[p.ID]; !ok {
		return common.ErrorNotFound
	}
	r.s.profiles[p.ID] = cloneProfile(p)
	return nil
}

func (r *fakeProfiles) UpdateStats(ctx context.Context, id string, stats models.Stats) error {
	p, ok := r.s.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Stats = stats
	return nil
}

func (r *fakeProfiles) UpdateFollowing(ctx context.Context, id string, following []string) error {
	p, ok := r.s.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.Following = append([]string(nil), following...)
	return nil
}

func (r *fakeProfiles) SetModeration(ctx context.Context, id string, deactivated bool, deactivatedUntil, pendingDeletionAt *time.Time) error {
	p, ok := r.s.profiles[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.IsDeactivated = deactivated
	p.DeactivatedUntil = deactivatedUntil
	p.PendingDeletionAt = pendingDeletionAt
	return nil
}

func (r *fakeProfiles) Leaderboard(ctx context.Context, limit int) ([]*models.Profile, error) {
	all := make([]*models.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		all = append(all, cloneProfile(p))
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Stats.Level != all[j].Stats.Level {
			return all[i].Stats.Level > all[j].Stats.Level
		}
		return all[i].Entropy > all[j].Entropy
	})
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

type fakeQuests struct{ s *fakeStore }

func cloneQuest(q *models.Quest) *models.Quest {
	c := *q
	return &c
}

func (r *fakeQuests) Create(ctx context.Context, q *models.Quest) (*models.Quest, error) {
	c := cloneQuest(q)
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	r.s.quests[c.ID] = c
	return cloneQuest(c), nil
}

func (r *fakeQuests) GetByID(ctx context.Context, id int64) (*models.Quest, error) {
	q, ok := r.s.quests[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneQuest(q), nil
}

func (r *fakeQuests) GetByIDForUpdate(ctx context.Context, id int64) (*models.Quest, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeQuests) ListByUser(ctx context.Context, userID string) ([]*models.Quest, error) {
	var out []*models.Quest
	for _, q := range r.s.quests {
		if q.UserID == userID {
			out = append(out, cloneQuest(q))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeQuests) CountActive(ctx context.Context, userID string, now time.Time) (int, error) {
	n := 0
	for _, q := range r.s.quests {
		if q.UserID == userID && q.Active(now) {
			n++
		}
	}
	return n, nil
}

func (r *fakeQuests) MarkCompleted(ctx context.Context, id int64) error {
	q, ok := r.s.quests[id]
	if !ok {
		return common.ErrorNotFound
	}
	if q.Completed {
		return common.ErrorQuestCompleted
	}
	q.Completed = true
	return nil
}

type fakePosts struct{ s *fakeStore }

func clonePost(p *models.Post) *models.Post {
	c := *p
	c.LikedBy = append([]string(nil), p.LikedBy...)
	return &c
}

func (r *fakePosts) Create(ctx context.Context, p *models.Post) (*models.Post, error) {
	c := clonePost(p)
	c.ID = r.s.id()
	c.CreatedAt = time.Now()
	c.Resonance = len(c.LikedBy)
	r.s.posts[c.ID] = c
	return clonePost(c), nil
}

func (r *fakePosts) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	p, ok := r.s.posts[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return clonePost(p), nil
}

func (r *fakePosts) GetByIDForUpdate(ctx context.Context, id int64) (*models.Post, error) {
	return r.GetByID(ctx, id)
}

func (r *fakePosts) List(ctx context.Context, limit int) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range r.s.posts {
		out = append(out, clonePost(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakePosts) UpdateLikes(ctx context.Context, id int64, likedBy []string) error {
	p, ok := r.s.posts[id]
	if !ok {
		return common.ErrorNotFound
	}
	p.LikedBy = append([]string(nil), likedBy...)
	p.Resonance = len(p.LikedBy)
	return nil
}

type fakeComments struct{ s *fakeStore }

func (r *fakeComments) Create(ctx context.Context, c *models.Comment) (*models.Comment, error) {
	cc := *c
	cc.ID = r.s.id()
	cc.CreatedAt = time.Now()
	r.s.comments = append(r.s.comments, &cc)
	out := cc
	return &out, nil
}

func (r *fakeComments) ListByPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range r.s.comments {
		if c.PostID == postID {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

type fakeNotifications struct{ s *fakeStore }

func (r *fakeNotifications) Create(ctx context.Context, n *models.Notification) (*models.Notification, error) {
	nn := *n
	nn.ID = r.s.id()
	nn.CreatedAt = time.Now()
	r.s.notifications = append(r.s.notifications, &nn)
	out := nn
	return &out, nil
}

func (r *fakeNotifications) ListByUser(ctx context.Context, userID string) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			nn := *n
			out = append(out, &nn)
		}
	}
	return out, nil
}

func (r *fakeNotifications) MarkRead(ctx context.Context, id int64) error {
	for _, n := range r.s.notifications {
		if n.ID == id {
			n.IsRead = true
			return nil
		}
	}
	return common.ErrorNotFound
}

type fakeAchievements struct{ s *fakeStore }

func (r *fakeAchievements) Create(ctx context.Context, a *models.Achievement) (*models.Achievement, error) {
	aa := *a
	aa.ID = r.s.id()
	aa.UnlockedAt = time.Now()
	r.s.achievements = append(r.s.achievements, &aa)
	out := aa
	return &out, nil
}

func (r *fakeAchievements) ListByUser(ctx context.Context, userID string) ([]*models.Achievement, error) {
	var out []*models.Achievement
	for _, a := range r.s.achievements {
		if a.UserID == userID {
			aa := *a
			out = append(out, &aa)
		}
	}
	return out, nil
}

type fakeReports struct{ s *fakeStore }

func (r *fakeReports) Create(ctx context.Context, rep *models.Report) (*models.Report, error) {
	rr := *rep
	rr.ID = r.s.id()
	rr.CreatedAt = time.Now()
	r.s.reports = append(r.s.reports, &rr)
	out := rr
	return &out, nil
}

func (r *fakeReports) SetVerdict(ctx context.Context, id int64, verdict, actionTaken string) error {
	for _, rep := range r.s.reports {
		if rep.ID == id {
			rep.AIVerdict = verdict
			rep.ActionTaken = actionTaken
			return nil
		}
	}
	return common.ErrorNotFound
}

// stubOracle scripts the oracle with a function per test.
type stubOracle struct {
	gen func(prompt string) (string, error)
}

func (o *stubOracle) Generate(ctx context.Context, prompt string) (string, error) {
	if o.gen == nil {
		return "", errors.New("oracle offline")
	}
	return o.gen(prompt)
}

// testEnv bundles the fake world with a sqlmock-backed *sql.DB so services
// can open real transactions around the fakes.
type testEnv struct {
	db    *sql.DB
	mock  sqlmock.Sqlmock
	store *fakeStore
	mgr   *fakeManager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	store := newFakeStore()
	return &testEnv{db: db, mock: mock, store: store, mgr: &fakeManager{store: store}}
}

// expectTx registers one transaction expectation; the fakes do the actual
// work, so only Begin plus the final Commit or Rollback hit the driver.
func (e *testEnv) expectTx(commit bool) {
	e.mock.ExpectBegin()
	if commit {
		e.mock.ExpectCommit()
	} else {
		e.mock.ExpectRollback()
	}
}

// addProfile seeds a profile with default stats and returns it.
func (e *testEnv) addProfile(t *testing.T, id, username, passwordHash string) *models.Profile {
	t.Helper()
	p := &models.Profile{
		ID:           id,
		Username:     username,
		PasswordHash: passwordHash,
		DisplayName:  username,
		Stats:        models.DefaultStats(),
		Following:    []string{},
	}
	created, err := (&fakeProfiles{e.store}).Create(context.Background(), p)
	require.NoError(t, err)
	return created
}
