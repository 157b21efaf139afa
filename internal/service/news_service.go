package service

import (
	"context"
	"errors"
	"time"

	"pinboard/internal/models"
	"pinboard/internal/repository"

	"gorm.io/gorm"
)

type NewsService struct {
	newsRepo repository.NewsRepository
	userRepo repository.UserRepository
	now      func() time.Time
}

type CreateNewsPostInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	UserID      string `json:"userId"`
}

// EngagementFeed groups a user's liked and favourited posts. A post
// may appear in both lists.
type EngagementFeed struct {
	LikedNews []*models.NewsPost `json:"likedNews"`
	FavNews   []*models.NewsPost `json:"favNews"`
}

func NewNewsService(newsRepo repository.NewsRepository, userRepo repository.UserRepository) *NewsService {
	return &NewsService{
		newsRepo: newsRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

func (s *NewsService) resolveUser(ctx context.Context, userID string) (*models.User, error) {
	if userID == "" {
		return nil, models.NewInvalidRequestError("userId is required")
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", userID)
		}
		return nil, models.NewServerError(err)
	}
	return user, nil
}

// CreatePost publishes a bulletin item for an existing user. The
// author's photo is copied from the resolved account.
func (s *NewsService) CreatePost(ctx context.Context, in CreateNewsPostInput) (*models.NewsPost, error) {
	if in.Title == "" {
		return nil, models.NewInvalidRequestError("title is required")
	}
	user, err := s.resolveUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.NewsPost{
		Title:       in.Title,
		Description: in.Description,
		UserID:      user.ID,
		UserPhoto:   user.PhotoURL,
		CreatedDate: s.now(),
	}
	if err := s.newsRepo.Create(ctx, post); err != nil {
		return nil, models.NewServerError(err)
	}
	return post, nil
}

// ListFeed returns the whole bulletin feed, oldest first.
func (s *NewsService) ListFeed(ctx context.Context) ([]*models.NewsPost, error) {
	posts, err := s.newsRepo.List(ctx)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return posts, nil
}

func (s *NewsService) ListForUser(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	if _, err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	posts, err := s.newsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return posts, nil
}

// DeletePost removes a post, but only for its author.
func (s *NewsService) DeletePost(ctx context.Context, postID, actorID string) error {
	post, err := s.newsRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("news post", postID)
		}
		return models.NewServerError(err)
	}
	if post.UserID != actorID {
		return models.NewForbiddenError("only the author may delete this post")
	}
	if err := s.newsRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("news post", postID)
		}
		return models.NewServerError(err)
	}
	return nil
}

// ToggleEngagement flips the actor's membership in the post's like or
// fav set and reports the resulting state: true when the actor is now
// engaged, false when the toggle removed them. Both directions run as
// single guarded statements in the database, so racing toggles cannot
// duplicate a membership entry.
func (s *NewsService) ToggleEngagement(ctx context.Context, kind models.EngagementKind, postID, actorID string) (bool, error) {
	if !kind.Valid() {
		return false, models.NewInvalidValueError("unknown engagement kind")
	}
	if _, err := s.resolveUser(ctx, actorID); err != nil {
		return false, err
	}
	if _, err := s.newsRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("news post", postID)
		}
		return false, models.NewServerError(err)
	}

	engaged, err := s.newsRepo.HasEngaged(ctx, kind, postID, actorID)
	if err != nil {
		return false, models.NewServerError(err)
	}
	if engaged {
		if err := s.newsRepo.RemoveEngagement(ctx, kind, postID, actorID); err != nil {
			return false, models.NewServerError(err)
		}
		return false, nil
	}
	if err := s.newsRepo.AddEngagement(ctx, kind, postID, actorID); err != nil {
		return false, models.NewServerError(err)
	}
	return true, nil
}

// ListEngagement returns the posts the actor has liked and the posts
// they have favourited, as two independent collections.
func (s *NewsService) ListEngagement(ctx context.Context, actorID string) (*EngagementFeed, error) {
	if _, err := s.resolveUser(ctx, actorID); err != nil {
		return nil, err
	}
	posts, err := s.newsRepo.ListEngagedBy(ctx, actorID)
	if err != nil {
		return nil, models.NewServerError(err)
	}

	feed := &EngagementFeed{
		LikedNews: []*models.NewsPost{},
		FavNews:   []*models.NewsPost{},
	}
	for _, post := range posts {
		if containsUser(post.LikedUsers, actorID) {
			feed.LikedNews = append(feed.LikedNews, post)
		}
		if containsUser(post.FavUsers, actorID) {
			feed.FavNews = append(feed.FavNews, post)
		}
	}
	return feed, nil
}

func containsUser(users []string, userID string) bool {
	for _, u := range users {
		if u == userID {
			return true
		}
	}
	return false
}

// DeleteAllPosts wipes the news feed. Exposed only behind the
// maintenance routes flag.
func (s *NewsService) DeleteAllPosts(ctx context.Context) (int64, error) {
	deleted, err := s.newsRepo.DeleteAll(ctx)
	if err != nil {
		return 0, models.NewServerError(err)
	}
	return deleted, nil
}
