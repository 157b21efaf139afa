package repository

import (
	"context"
	"fmt"

	"pinboard/internal/cache"
	"pinboard/internal/models"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// NewsRepository defines the interface for news post data operations
type NewsRepository interface {
	Create(ctx context.Context, post *models.NewsPost) error
	GetByID(ctx context.Context, id string) (*models.NewsPost, error)
	List(ctx context.Context) ([]*models.NewsPost, error)
	GetByUserID(ctx context.Context, userID string) ([]*models.NewsPost, error)
	Delete(ctx context.Context, id string) error
	HasEngaged(ctx context.Context, kind models.EngagementKind, postID, userID string) (bool, error)
	AddEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error
	RemoveEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error
	ListEngagedBy(ctx context.Context, userID string) ([]*models.NewsPost, error)
	SetPhotoURLs(ctx context.Context, postID string, urls []string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type newsRepository struct {
	db *gorm.DB
}

// NewNewsRepository creates a new news post repository
func NewNewsRepository(db *gorm.DB) NewsRepository {
	return &newsRepository{db: db}
}

func (r *newsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	err := r.db.WithContext(ctx).Create(post).Error
	if err == nil {
		cache.InvalidateNewsFeed(ctx)
	}
	return err
}

func (r *newsRepository) GetByID(ctx context.Context, id string) (*models.NewsPost, error) {
	var post models.NewsPost
	if err := r.db.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *newsRepository) List(ctx context.Context) ([]*models.NewsPost, error) {
	var posts []*models.NewsPost
	err := cache.Aside(ctx, cache.NewsFeedKey(), &posts, cache.NewsFeedTTL, func() error {
		return r.db.WithContext(ctx).
			Order("created_date ASC").
			Find(&posts).Error
	})
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *newsRepository) GetByUserID(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	var posts []*models.NewsPost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_date ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *newsRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.NewsPost{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateNewsFeed(ctx)
	return nil
}

// HasEngaged reports whether userID is a member of the post's
// engagement set, evaluated in the database.
func (r *newsRepository) HasEngaged(ctx context.Context, kind models.EngagementKind, postID, userID string) (bool, error) {
	var engaged bool
	query := fmt.Sprintf(
		"SELECT EXISTS (SELECT 1 FROM news_posts WHERE id = ? AND ? = ANY(%s))",
		kind.Column(),
	)
	err := r.db.WithContext(ctx).Raw(query, postID, userID).Scan(&engaged).Error
	return engaged, err
}

// AddEngagement appends userID to the post's engagement set. The NOT
// ANY guard keeps the column a set under concurrent toggles: a
// duplicate append matches zero rows instead of growing the array.
func (r *newsRepository) AddEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	col := kind.Column()
	query := fmt.Sprintf(
		"UPDATE news_posts SET %s = array_append(%s, ?) WHERE id = ? AND NOT (? = ANY(%s))",
		col, col, col,
	)
	err := r.db.WithContext(ctx).Exec(query, userID, postID, userID).Error
	if err == nil {
		cache.InvalidateNewsFeed(ctx)
	}
	return err
}

func (r *newsRepository) RemoveEngagement(ctx context.Context, kind models.EngagementKind, postID, userID string) error {
	col := kind.Column()
	query := fmt.Sprintf(
		"UPDATE news_posts SET %s = array_remove(%s, ?) WHERE id = ?",
		col, col,
	)
	err := r.db.WithContext(ctx).Exec(query, userID, postID).Error
	if err == nil {
		cache.InvalidateNewsFeed(ctx)
	}
	return err
}

// ListEngagedBy returns every post the user has either liked or
// favourited, oldest first.
func (r *newsRepository) ListEngagedBy(ctx context.Context, userID string) ([]*models.NewsPost, error) {
	var posts []*models.NewsPost
	err := r.db.WithContext(ctx).
		Where("? = ANY(liked_users) OR ? = ANY(fav_users)", userID, userID).
		Order("created_date ASC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// SetPhotoURLs replaces the post's photo list wholesale.
func (r *newsRepository) SetPhotoURLs(ctx context.Context, postID string, urls []string) error {
	result := r.db.WithContext(ctx).
		Model(&models.NewsPost{}).
		Where("id = ?", postID).
		Update("photo_urls", pq.StringArray(urls))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	cache.InvalidateNewsFeed(ctx)
	return nil
}

func (r *newsRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&models.NewsPost{})
	if result.Error == nil {
		cache.InvalidateNewsFeed(ctx)
	}
	return result.RowsAffected, result.Error
}
