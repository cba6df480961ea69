// Package quota decides how many submissions a tenant may send per UTC
// calendar month. The gate is pure policy; the atomic consume lives in the
// tenant store so two concurrent submissions cannot both take the last slot.
package quota

import (
	"brief-service/internal/model"
	"brief-service/pkg/config"
)

// Gate holds the per-plan monthly ceilings.
type Gate struct {
	FreeLimit int
	PaidLimit int
}

// NewGate builds a gate from config.
func NewGate(cfg *config.QuotaConfig) *Gate {
	return &Gate{FreeLimit: cfg.FreeLimit, PaidLimit: cfg.PaidLimit}
}

// Ceiling returns the monthly submission ceiling for a plan. Unknown plans
// get no quota at all.
func (g *Gate) Ceiling(plan string) int {
	switch plan {
	case model.PlanFree:
		return g.FreeLimit
	case model.PlanMonthly, model.PlanYearly:
		return g.PaidLimit
	default:
		return 0
	}
}

// Remaining returns how many submissions the tenant has left this period,
// never negative. A stale usage period counts as a fresh month.
func (g *Gate) Remaining(t *model.Tenant) int {
	used := t.SubmissionsSent
	if t.UsagePeriod != model.CurrentPeriod() {
		used = 0
	}
	left := g.Ceiling(t.Plan) - used
	if left < 0 {
		return 0
	}
	return left
}
