package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pinboard/internal/middleware"
	"pinboard/internal/models"
	"pinboard/internal/repository"

	"gorm.io/gorm"
)

// FileStore persists uploaded binaries under a name relative to the
// upload root.
type FileStore interface {
	Write(name string, data []byte) error
}

// DiskStore writes uploads under a fixed directory on local disk.
type DiskStore struct {
	Dir string
}

func (d DiskStore) Write(name string, data []byte) error {
	if err := os.MkdirAll(d.Dir, 0o750); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Dir, name), data, 0o600)
}

type MediaService struct {
	mediaRepo repository.MediaRepository
	newsRepo  repository.NewsRepository
	userRepo  repository.UserRepository
	store     FileStore
	baseURL   string
	now       func() time.Time
}

type BindImageInput struct {
	UserID      string
	OwnerPostID string
	FileName    string
	Data        []byte
}

func NewMediaService(
	mediaRepo repository.MediaRepository,
	newsRepo repository.NewsRepository,
	userRepo repository.UserRepository,
	store FileStore,
	baseURL string,
) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		newsRepo:  newsRepo,
		userRepo:  userRepo,
		store:     store,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// fileExtension mirrors the upload contract's naming rule: the token
// between the first and second dot of the original filename. Multi-dot
// names like "photo.v2.png" therefore yield "v2". Known limitation,
// kept for URL compatibility with existing clients.
func fileExtension(name string) (string, bool) {
	parts := strings.Split(name, ".")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// BindImage runs the two-phase upload protocol: persist a provisional
// metadata record to obtain a generated id, derive the final URL from
// that id plus the original extension, patch the record, write the
// binary, then point the owning post's photo list at the new URL
// (replacing whatever was there). A failed binary write marks the
// asset orphaned but does not unwind the committed metadata.
func (s *MediaService) BindImage(ctx context.Context, in BindImageInput) (*models.MediaAsset, error) {
	if len(in.Data) == 0 {
		return nil, models.NewInvalidRequestError("no image payload transmitted")
	}
	if in.FileName == "" {
		return nil, models.NewInvalidRequestError("image attachment is missing")
	}
	ext, ok := fileExtension(in.FileName)
	if !ok {
		return nil, models.NewInvalidRequestError("image filename must carry an extension")
	}

	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("user", in.UserID)
		}
		return nil, models.NewServerError(err)
	}
	post, err := s.newsRepo.GetByID(ctx, in.OwnerPostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("news post", in.OwnerPostID)
		}
		return nil, models.NewServerError(err)
	}

	asset := &models.MediaAsset{
		Title:       in.FileName,
		CreatedDate: s.now(),
		PhotoURL:    fmt.Sprintf("%s/uploads/%s", s.baseURL, in.FileName),
		UserID:      user.ID,
		OwnerPostID: post.ID,
		Status:      models.MediaStatusProvisional,
	}
	if err := s.mediaRepo.Create(ctx, asset); err != nil {
		return nil, models.NewServerError(err)
	}

	storedName := asset.ID + "." + ext
	finalURL := fmt.Sprintf("%s/uploads/%s", s.baseURL, storedName)
	if err := s.mediaRepo.BindPhotoURL(ctx, asset.ID, finalURL); err != nil {
		return nil, models.NewServerError(err)
	}

	if err := s.store.Write(storedName, in.Data); err != nil {
		middleware.Logger.ErrorContext(ctx, "Image binary write failed, asset orphaned",
			slog.String("asset_id", asset.ID),
			slog.String("error", err.Error()),
		)
		if markErr := s.mediaRepo.MarkOrphaned(ctx, asset.ID); markErr != nil {
			middleware.Logger.ErrorContext(ctx, "Failed to mark asset orphaned",
				slog.String("asset_id", asset.ID),
				slog.String("error", markErr.Error()),
			)
		}
		return nil, models.NewServerError(err)
	}

	// Lost-write check: the record must still be readable after the
	// binary landed on disk.
	bound, err := s.mediaRepo.GetByID(ctx, asset.ID)
	if err != nil {
		return nil, models.NewServerError(fmt.Errorf("media asset %s lost after write: %w", asset.ID, err))
	}

	// Replace, not append. A post keeps only its most recently bound
	// image.
	if err := s.newsRepo.SetPhotoURLs(ctx, post.ID, []string{bound.PhotoURL}); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("news post", post.ID)
		}
		return nil, models.NewServerError(err)
	}

	return bound, nil
}

// ListOrphaned returns assets whose binary write failed, for the
// maintenance sweep.
func (s *MediaService) ListOrphaned(ctx context.Context) ([]*models.MediaAsset, error) {
	assets, err := s.mediaRepo.ListOrphaned(ctx)
	if err != nil {
		return nil, models.NewServerError(err)
	}
	return assets, nil
}
