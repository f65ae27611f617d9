package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/aletheia-net/aletheia/internal/common"
	"github.com/aletheia-net/aletheia/internal/dbx"
	"github.com/aletheia-net/aletheia/internal/server/models"
	"github.com/aletheia-net/aletheia/internal/server/repositories/repomanager"
)

// FeedSize is the number of posts returned by the feed.
const FeedSize = 50

// PostService implements the feed: posts, like toggling and comments.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

// NewPostService constructs a PostService.
func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create publishes a post by the given author.
func (s *PostService) Create(ctx context.Context, authorID, content string) (*models.Post, error) {
	if content == "" {
		return nil, common.ErrorValidation
	}
	if _, err := s.repomanager.Profiles(s.db).GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.repomanager.Posts(s.db).Create(ctx, &models.Post{
		AuthorID: &authorID,
		Content:  content,
		LikedBy:  []string{},
	})
}

// List returns the feed, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx, FeedSize)
}

// Get returns a single post.
func (s *PostService) Get(ctx context.Context, id int64) (*models.Post, error) {
	return s.repomanager.Posts(s.db).GetByID(ctx, id)
}

// ToggleLike adds the user to the post's like set, or removes them if
// already present. Resonance is recomputed from the like set on every
// toggle. The author gets a RESONANCE notification only on the add
// transition, and never for their own like.
func (s *PostService) ToggleLike(ctx context.Context, postID int64, userID string) (*models.Post, error) {
	var post *models.Post
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		postRepo := s.repomanager.Posts(tx)

		p, err := postRepo.GetByIDForUpdate(ctx, postID)
		if err != nil {
			return err
		}

		added := !p.Liked(userID)
		if added {
			p.LikedBy = append(p.LikedBy, userID)
		} else {
			next := make([]string, 0, len(p.LikedBy))
			for _, id := range p.LikedBy {
				if id != userID {
					next = append(next, id)
				}
			}
			p.LikedBy = next
		}
		p.Resonance = len(p.LikedBy)

		if err := postRepo.UpdateLikes(ctx, p.ID, p.LikedBy); err != nil {
			return err
		}

		if added && p.AuthorID != nil && *p.AuthorID != userID {
			_, err = s.repomanager.Notifications(tx).Create(ctx, &models.Notification{
				UserID:   *p.AuthorID,
				Type:     models.NotificationResonance,
				SenderID: &userID,
				PostID:   &p.ID,
			})
			if err != nil {
				return err
			}
		}

		post = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return post, nil
}

// AddComment attaches a comment to a post. parentID, when set, must point
// at a comment on the same post.
func (s *PostService) AddComment(ctx context.Context, postID int64, authorID, content string, parentID *int64) (*models.Comment, error) {
	if content == "" {
		return nil, common.ErrorValidation
	}
	if _, err := s.repomanager.Posts(s.db).GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if parentID != nil {
		parents, err := s.repomanager.Comments(s.db).ListByPost(ctx, postID)
		if err != nil {
			return nil, err
		}
		found := false
		for _, c := range parents {
			if c.ID == *parentID {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("parent comment: %w", common.ErrorNotFound)
		}
	}
	return s.repomanager.Comments(s.db).Create(ctx, &models.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
		ParentID: parentID,
	})
}

// Comments returns a post's comments, oldest first.
func (s *PostService) Comments(ctx context.Context, postID int64) ([]*models.Comment, error) {
	return s.repomanager.Comments(s.db).ListByPost(ctx, postID)
}
