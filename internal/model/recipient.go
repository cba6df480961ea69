package model

import (
	"time"

	"gorm.io/gorm"
)

// Recipient is an architect entitled to receive generated reports via a
// unique brief link. The LinkToken is the stable secret path segment of that
// link; it is immutable once created because it is embedded in links already
// distributed to investors.
type Recipient struct {
	ID        string `json:"id" gorm:"primaryKey"`
	TenantID  string `json:"tenant_id" gorm:"index;not null"`
	Name      string `json:"name" gorm:"type:varchar(100);not null"`
	Email     string `json:"email" gorm:"type:varchar(255)"`
	LinkToken string `json:"link_token" gorm:"type:varchar(64);uniqueIndex;not null"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// BeforeCreate assigns the ID and the immutable link token.
func (r *Recipient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewRecipientID()
	}
	if r.LinkToken == "" {
		r.LinkToken = NewLinkToken()
	}
	return nil
}
