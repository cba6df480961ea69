// Package store is the persistence layer for tenants, recipients and archived
// reports. Quota consumption happens here as a guarded UPDATE so two
// concurrent submissions cannot both take the last slot of the month.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"brief-service/internal/model"
	"brief-service/prometheus"
)

// ErrQuotaExceeded is returned when the monthly ceiling leaves no slot to consume.
var ErrQuotaExceeded = errors.New("monthly submission quota exceeded")

// TenantStore wraps all tenant-scoped persistence.
type TenantStore struct {
	db *gorm.DB
}

// NewTenantStore returns a store bound to the given database handle.
func NewTenantStore(db *gorm.DB) *TenantStore {
	return &TenantStore{db: db}
}

// Create inserts a new tenant.
func (s *TenantStore) Create(ctx context.Context, t *model.Tenant) error {
	defer prometheus.TrackDBOperation("tenant_create")(time.Now())
	return s.db.WithContext(ctx).Create(t).Error
}

// FindByID loads a tenant by ID.
func (s *TenantStore) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("tenant_find_by_id")(time.Now())
	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByEmail loads a tenant by account email.
func (s *TenantStore) FindByEmail(ctx context.Context, email string) (*model.Tenant, error) {
	defer prometheus.TrackDBOperation("tenant_find_by_email")(time.Now())
	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, "email = ?", email).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Save persists tenant field updates.
func (s *TenantStore) Save(ctx context.Context, t *model.Tenant) error {
	defer prometheus.TrackDBOperation("tenant_save")(time.Now())
	return s.db.WithContext(ctx).Save(t).Error
}

// NormalizePeriod resets the usage counter when the stored period is stale.
// The guarded UPDATE makes concurrent resets converge on a single zeroing.
func (s *TenantStore) NormalizePeriod(ctx context.Context, tenantID string) error {
	defer prometheus.TrackDBOperation("tenant_normalize_period")(time.Now())
	period := model.CurrentPeriod()
	return s.db.WithContext(ctx).Model(&model.Tenant{}).
		Where("id = ? AND usage_period <> ?", tenantID, period).
		Updates(map[string]any{"usage_period": period, "submissions_sent": 0}).Error
}

// ConsumeQuota atomically takes one submission slot for the current period.
// The increment is guarded by the ceiling inside a single UPDATE, so it either
// consumes a slot or reports ErrQuotaExceeded; it never overshoots.
func (s *TenantStore) ConsumeQuota(ctx context.Context, tenantID string, ceiling int) error {
	defer prometheus.TrackDBOperation("tenant_consume_quota")(time.Now())

	if ceiling <= 0 {
		return ErrQuotaExceeded
	}
	if err := s.NormalizePeriod(ctx, tenantID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).Model(&model.Tenant{}).
		Where("id = ? AND usage_period = ? AND submissions_sent < ?",
			tenantID, model.CurrentPeriod(), ceiling).
		Update("submissions_sent", gorm.Expr("submissions_sent + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrQuotaExceeded
	}
	return nil
}

// CreateRecipient inserts a recipient under the tenant.
func (s *TenantStore) CreateRecipient(ctx context.Context, r *model.Recipient) error {
	defer prometheus.TrackDBOperation("recipient_create")(time.Now())
	return s.db.WithContext(ctx).Create(r).Error
}

// ListRecipients returns the tenant's recipients, newest first.
func (s *TenantStore) ListRecipients(ctx context.Context, tenantID string) ([]model.Recipient, error) {
	defer prometheus.TrackDBOperation("recipient_list")(time.Now())
	var recipients []model.Recipient
	err := s.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC").
		Find(&recipients).Error
	return recipients, err
}

// FindRecipient loads one recipient scoped to its tenant.
func (s *TenantStore) FindRecipient(ctx context.Context, tenantID, recipientID string) (*model.Recipient, error) {
	defer prometheus.TrackDBOperation("recipient_find")(time.Now())
	var r model.Recipient
	if err := s.db.WithContext(ctx).
		First(&r, "id = ? AND tenant_id = ?", recipientID, tenantID).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteRecipient soft-deletes a recipient; its brief link stops resolving.
func (s *TenantStore) DeleteRecipient(ctx context.Context, tenantID, recipientID string) error {
	defer prometheus.TrackDBOperation("recipient_delete")(time.Now())
	res := s.db.WithContext(ctx).
		Where("id = ? AND tenant_id = ?", recipientID, tenantID).
		Delete(&model.Recipient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindRecipientByLinkToken resolves a public brief link to its recipient and
// owning tenant.
func (s *TenantStore) FindRecipientByLinkToken(ctx context.Context, linkToken string) (*model.Recipient, *model.Tenant, error) {
	defer prometheus.TrackDBOperation("recipient_find_by_link")(time.Now())

	var r model.Recipient
	if err := s.db.WithContext(ctx).First(&r, "link_token = ?", linkToken).Error; err != nil {
		return nil, nil, err
	}
	var t model.Tenant
	if err := s.db.WithContext(ctx).First(&t, "id = ?", r.TenantID).Error; err != nil {
		return nil, nil, err
	}
	return &r, &t, nil
}

// AppendReport archives a report and evicts the oldest records beyond the
// history cap. Eviction is best-effort inside the same transaction.
func (s *TenantStore) AppendReport(ctx context.Context, rec *model.ReportRecord) error {
	defer prometheus.TrackDBOperation("report_append")(time.Now())

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rec).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&model.ReportRecord{}).
			Where("tenant_id = ?", rec.TenantID).
			Count(&count).Error; err != nil {
			return err
		}
		if count <= model.HistoryCap {
			return nil
		}

		var stale []string
		if err := tx.Model(&model.ReportRecord{}).
			Where("tenant_id = ?", rec.TenantID).
			Order("created_at ASC, id ASC").
			Limit(int(count) - model.HistoryCap).
			Pluck("id", &stale).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", stale).Delete(&model.ReportRecord{}).Error
	})
}

// ListReports returns the tenant's archived reports, newest first, without
// the full report text.
func (s *TenantStore) ListReports(ctx context.Context, tenantID string) ([]model.ReportRecord, error) {
	defer prometheus.TrackDBOperation("report_list")(time.Now())
	var reports []model.ReportRecord
	err := s.db.WithContext(ctx).
		Select("id", "tenant_id", "created_at", "title", "recipient_id", "recipient_name", "recipient_email", "delivery_id", "email_sent").
		Where("tenant_id = ?", tenantID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

// FindReport loads one archived report with its full text, tenant-scoped.
func (s *TenantStore) FindReport(ctx context.Context, tenantID, reportID string) (*model.ReportRecord, error) {
	defer prometheus.TrackDBOperation("report_find")(time.Now())
	var r model.ReportRecord
	if err := s.db.WithContext(ctx).
		First(&r, "id = ? AND tenant_id = ?", reportID, tenantID).Error; err != nil {
		return nil, err
	}
	return &r, nil
}
