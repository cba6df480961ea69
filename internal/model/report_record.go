package model

import "gorm.io/gorm"

// HistoryCap bounds the per-tenant report history. The oldest records beyond
// the cap are evicted on append.
const HistoryCap = 50

// ReportRecord is the archived outcome of one submission. Immutable once
// created except for eviction by the history cap.
type ReportRecord struct {
	ID        string `json:"id" gorm:"primaryKey"`
	TenantID  string `json:"tenant_id" gorm:"index;not null"`
	CreatedAt int64  `json:"created_at" gorm:"index;not null"` // unix seconds

	Title          string `json:"title" gorm:"type:varchar(200)"`
	RecipientID    string `json:"recipient_id" gorm:"type:varchar(64)"`
	RecipientName  string `json:"recipient_name" gorm:"type:varchar(100)"`
	RecipientEmail string `json:"recipient_email" gorm:"type:varchar(255)"`
	DeliveryID     string `json:"delivery_id" gorm:"type:varchar(64)"`
	EmailSent      bool   `json:"email_sent"`
	ReportText     string `json:"report_text" gorm:"type:text"`
}

// BeforeCreate assigns a sortable report ID.
func (r *ReportRecord) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = NewReportID()
	}
	return nil
}
