package quota

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brief-service/internal/model"
	"brief-service/pkg/config"
)

func testGate() *Gate {
	return NewGate(&config.QuotaConfig{FreeLimit: 3, PaidLimit: 100})
}

func TestCeilingPerPlan(t *testing.T) {
	g := testGate()

	assert.Equal(t, 3, g.Ceiling(model.PlanFree))
	assert.Equal(t, 100, g.Ceiling(model.PlanMonthly))
	assert.Equal(t, 100, g.Ceiling(model.PlanYearly))
	assert.Equal(t, 0, g.Ceiling(model.PlanNone))
	assert.Equal(t, 0, g.Ceiling("enterprise"))
}

func TestRemainingCountsDownWithinPeriod(t *testing.T) {
	g := testGate()
	tenant := &model.Tenant{
		Plan:            model.PlanFree,
		UsagePeriod:     model.CurrentPeriod(),
		SubmissionsSent: 2,
	}

	assert.Equal(t, 1, g.Remaining(tenant))
}

func TestRemainingNeverNegative(t *testing.T) {
	g := testGate()
	tenant := &model.Tenant{
		Plan:            model.PlanFree,
		UsagePeriod:     model.CurrentPeriod(),
		SubmissionsSent: 7,
	}

	assert.Equal(t, 0, g.Remaining(tenant))
}

func TestRemainingResetsOnStalePeriod(t *testing.T) {
	g := testGate()
	tenant := &model.Tenant{
		Plan:            model.PlanMonthly,
		UsagePeriod:     "2024-01",
		SubmissionsSent: 100,
	}

	// A stale period counts as a fresh month regardless of the old counter.
	assert.Equal(t, 100, g.Remaining(tenant))
}

func TestRemainingZeroForPlanNone(t *testing.T) {
	g := testGate()
	tenant := &model.Tenant{Plan: model.PlanNone, UsagePeriod: model.CurrentPeriod()}

	assert.Equal(t, 0, g.Remaining(tenant))
}
