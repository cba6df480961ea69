package model

import (
	"time"

	"gorm.io/gorm"
)

// Plan tiers. The tier decides the monthly submission ceiling.
const (
	PlanFree    = "free"
	PlanMonthly = "monthly"
	PlanYearly  = "yearly"
	PlanNone    = "none"
)

// Billing statuses as reported by the external billing collaborator.
const (
	BillingActive   = "active"
	BillingTrialing = "trialing"
	BillingInactive = "inactive"
)

// Tenant represents a company account: the unit of quota, plan and
// pricing-policy ownership.
type Tenant struct {
	ID           string `json:"id" gorm:"primaryKey"`
	Name         string `json:"name" gorm:"type:varchar(100);not null"`
	Email        string `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`

	Plan        string `json:"plan" gorm:"type:varchar(20);not null;default:'free'"`
	PricingText string `json:"pricing_text" gorm:"type:text"`

	// Usage counters for the current UTC year-month period.
	// UsagePeriod is reset before any read when it goes stale.
	UsagePeriod     string `json:"usage_period" gorm:"type:varchar(7)"`
	SubmissionsSent int    `json:"submissions_sent" gorm:"default:0"`

	// Billing profile (optional, informational only).
	BillingName    string `json:"billing_name" gorm:"type:varchar(100)"`
	BillingTaxID   string `json:"billing_tax_id" gorm:"type:varchar(20)"`
	BillingAddress string `json:"billing_address" gorm:"type:varchar(255)"`
	InvoiceEmail   string `json:"invoice_email" gorm:"type:varchar(255)"`

	// State owned by the external billing webhook. Read-only here.
	BillingStatus         string `json:"billing_status" gorm:"type:varchar(20);default:'inactive'"`
	BillingCustomerID     string `json:"-" gorm:"type:varchar(64)"`
	BillingSubscriptionID string `json:"-" gorm:"type:varchar(64)"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Recipients []Recipient    `json:"recipients,omitempty" gorm:"foreignKey:TenantID"`
	Reports    []ReportRecord `json:"reports,omitempty" gorm:"foreignKey:TenantID"`
}

// BeforeCreate assigns an ID and initializes usage for the current period.
func (t *Tenant) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewTenantID()
	}
	if t.UsagePeriod == "" {
		t.UsagePeriod = CurrentPeriod()
	}
	return nil
}

// AccessActive reports whether submissions may be accepted for this tenant.
// Free tenants are always active; paid tiers require an active or trialing
// billing status; tier "none" never accepts work.
func (t *Tenant) AccessActive() bool {
	switch t.Plan {
	case PlanFree:
		return true
	case PlanMonthly, PlanYearly:
		return t.BillingStatus == BillingActive || t.BillingStatus == BillingTrialing
	default:
		return false
	}
}

// CurrentPeriod returns the current UTC year-month key, e.g. "2026-08".
func CurrentPeriod() string {
	return time.Now().UTC().Format("2006-01")
}
