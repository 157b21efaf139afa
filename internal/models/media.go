package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Media asset lifecycle states.
const (
	MediaStatusProvisional = "provisional"
	MediaStatusBound       = "bound"
	MediaStatusOrphaned    = "orphaned"
)

// MediaAsset records an uploaded image. A row is created before the
// file hits disk; PhotoURL is patched in afterwards once the generated
// id is known. Assets whose file write failed stay behind with the
// orphaned status so a cleanup job can find them.
type MediaAsset struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `json:"title"`
	CreatedDate time.Time `json:"createdDate"`
	PhotoURL    string    `json:"photoUrl"`
	UserID      string    `gorm:"type:uuid;index" json:"userId"`
	OwnerPostID string    `gorm:"type:uuid;index" json:"ticketId"`
	Status      string    `gorm:"type:varchar(16);not null;default:'provisional'" json:"-"`
}

func (m *MediaAsset) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
