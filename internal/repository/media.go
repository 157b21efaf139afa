package repository

import (
	"context"

	"pinboard/internal/models"

	"gorm.io/gorm"
)

// MediaRepository defines the interface for media asset data operations
type MediaRepository interface {
	Create(ctx context.Context, asset *models.MediaAsset) error
	GetByID(ctx context.Context, id string) (*models.MediaAsset, error)
	BindPhotoURL(ctx context.Context, id, photoURL string) error
	MarkOrphaned(ctx context.Context, id string) error
	ListOrphaned(ctx context.Context) ([]*models.MediaAsset, error)
}

type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository creates a new media asset repository
func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(ctx context.Context, asset *models.MediaAsset) error {
	return r.db.WithContext(ctx).Create(asset).Error
}

func (r *mediaRepository) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	var asset models.MediaAsset
	if err := r.db.WithContext(ctx).First(&asset, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &asset, nil
}

// BindPhotoURL patches the final URL onto a provisional asset and
// promotes it to bound.
func (r *mediaRepository) BindPhotoURL(ctx context.Context, id, photoURL string) error {
	result := r.db.WithContext(ctx).
		Model(&models.MediaAsset{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"photo_url": photoURL,
			"status":    models.MediaStatusBound,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *mediaRepository) MarkOrphaned(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&models.MediaAsset{}).
		Where("id = ?", id).
		Update("status", models.MediaStatusOrphaned).Error
}

func (r *mediaRepository) ListOrphaned(ctx context.Context) ([]*models.MediaAsset, error) {
	var assets []*models.MediaAsset
	err := r.db.WithContext(ctx).
		Where("status = ?", models.MediaStatusOrphaned).
		Order("created_date ASC").
		Find(&assets).Error
	if err != nil {
		return nil, err
	}
	return assets, nil
}
