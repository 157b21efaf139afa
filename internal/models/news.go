package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// EngagementKind selects which engagement set a toggle operates on.
type EngagementKind string

const (
	EngagementLike EngagementKind = "like"
	EngagementFav  EngagementKind = "fav"
)

// Valid reports whether k is a known engagement kind.
func (k EngagementKind) Valid() bool {
	return k == EngagementLike || k == EngagementFav
}

// Column returns the database column backing the engagement set.
func (k EngagementKind) Column() string {
	if k == EngagementFav {
		return "fav_users"
	}
	return "liked_users"
}

// NewsPost is a bulletin item on the community feed. LikedUsers and
// FavUsers hold user ids and behave as sets: membership is toggled
// atomically in the database, never read-modify-written in Go.
type NewsPost struct {
	ID          string         `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	UserID      string         `gorm:"type:uuid;index;not null" json:"userId"`
	UserPhoto   string         `json:"userPhoto"`
	CreatedDate time.Time      `json:"createdDate"`
	PhotoURLs   pq.StringArray `gorm:"type:text[]" json:"photoUrls"`
	LikedUsers  pq.StringArray `gorm:"type:text[]" json:"likedUsers"`
	FavUsers    pq.StringArray `gorm:"type:text[]" json:"favUsers"`
}

func (p *NewsPost) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.PhotoURLs == nil {
		p.PhotoURLs = pq.StringArray{}
	}
	if p.LikedUsers == nil {
		p.LikedUsers = pq.StringArray{}
	}
	if p.FavUsers == nil {
		p.FavUsers = pq.StringArray{}
	}
	return nil
}
