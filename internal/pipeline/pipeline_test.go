package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brief-service/internal/mail"
	"brief-service/internal/model"
	"brief-service/internal/quota"
	"brief-service/internal/report"
	"brief-service/internal/store"
	"brief-service/internal/token"
	"brief-service/pkg/config"
)

type fakeTenants struct {
	consumeCalls int
	consumeErr   error
	appended     []*model.ReportRecord
}

func (f *fakeTenants) ConsumeQuota(ctx context.Context, tenantID string, ceiling int) error {
	f.consumeCalls++
	return f.consumeErr
}

func (f *fakeTenants) AppendReport(ctx context.Context, rec *model.ReportRecord) error {
	rec.ID = model.NewReportID()
	f.appended = append(f.appended, rec)
	return nil
}

type fakeGenerator struct {
	calls  int
	result report.Result
}

func (f *fakeGenerator) Generate(ctx context.Context, req report.Request) report.Result {
	f.calls++
	return f.result
}

type fakeDispatcher struct {
	calls   int
	outcome mail.Outcome
	lastTo  string
}

func (f *fakeDispatcher) Dispatch(ctx context.Context, to, subject, body string) mail.Outcome {
	f.calls++
	f.lastTo = to
	return f.outcome
}

func fixture() (*Pipeline, token.Store, *fakeTenants, *fakeGenerator, *fakeDispatcher) {
	tokens := token.NewMemoryStore(time.Hour)
	tenants := &fakeTenants{}
	gen := &fakeGenerator{result: report.Result{Text: "RAPORT", Reason: "backend not configured"}}
	disp := &fakeDispatcher{outcome: mail.Outcome{DeliveryID: "del_test", Sent: true, Channel: "resend"}}
	gate := quota.NewGate(&config.QuotaConfig{FreeLimit: 3, PaidLimit: 100})
	return New(tokens, tenants, gate, gen, disp), tokens, tenants, gen, disp
}

func testTenant() *model.Tenant {
	return &model.Tenant{
		ID:          "ten_test",
		Name:        "Pracownia",
		Email:       "biuro@example.com",
		Plan:        model.PlanFree,
		PricingText: "cennik",
		UsagePeriod: model.CurrentPeriod(),
	}
}

func testRecipient() *model.Recipient {
	return &model.Recipient{ID: "rcp_test", TenantID: "ten_test", Name: "Anna", Email: "anna@example.com"}
}

func TestRunAcceptsAndArchives(t *testing.T) {
	p, tokens, tenants, gen, disp := fixture()
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	result, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{
		"investor_name":  "Jan Kowalski",
		"usable_area_m2": "140",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, result.Status)
	assert.NotEmpty(t, result.ReportID)
	assert.True(t, result.Degraded)
	assert.True(t, result.EmailSent)
	assert.Equal(t, 1, tenants.consumeCalls)
	assert.Equal(t, 1, gen.calls)
	assert.Equal(t, 1, disp.calls)
	assert.Equal(t, "anna@example.com", disp.lastTo)

	require.Len(t, tenants.appended, 1)
	rec := tenants.appended[0]
	assert.Equal(t, "Brief: Jan Kowalski", rec.Title)
	assert.Equal(t, "del_test", rec.DeliveryID)
	assert.True(t, rec.EmailSent)
	assert.Equal(t, "RAPORT", rec.ReportText)
}

func TestRunDuplicateTokenSingleRecord(t *testing.T) {
	p, tokens, tenants, gen, _ := fixture()
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	first, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{})
	require.NoError(t, err)
	require.Equal(t, StatusAccepted, first.Status)

	second, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{})
	require.NoError(t, err)

	// Replay is rejected before quota and generation: one record, one
	// consumed slot, one generator call.
	assert.Equal(t, StatusDuplicate, second.Status)
	assert.Equal(t, 1, tenants.consumeCalls)
	assert.Equal(t, 1, gen.calls)
	assert.Len(t, tenants.appended, 1)
}

func TestRunQuotaExceededStopsBeforeGeneration(t *testing.T) {
	p, tokens, tenants, gen, disp := fixture()
	tenants.consumeErr = store.ErrQuotaExceeded
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	result, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, StatusQuotaExceeded, result.Status)
	assert.Zero(t, gen.calls)
	assert.Zero(t, disp.calls)
	assert.Empty(t, tenants.appended)
}

func TestRunDeliveryFailureStillAccepted(t *testing.T) {
	p, tokens, tenants, _, disp := fixture()
	disp.outcome = mail.Outcome{DeliveryID: "del_fail", Sent: false, Err: mail.ErrNoChannel}
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	result, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, result.Status)
	assert.False(t, result.EmailSent)
	require.Len(t, tenants.appended, 1)
	assert.False(t, tenants.appended[0].EmailSent)
	assert.Equal(t, "del_fail", tenants.appended[0].DeliveryID)
}

func TestRunStructuredReportRendered(t *testing.T) {
	p, tokens, tenants, gen, _ := fixture()
	gen.result = report.Result{Report: &report.StructuredReport{
		Meta: report.Meta{Title: "Dom"},
		FeeEstimate: report.FeeEstimate{
			Currency: "PLN", TotalLowPLN: 100, TotalHighPLN: 200,
		},
	}}
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	result, err := p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{"inv_name": "Hala"})
	require.NoError(t, err)

	assert.Equal(t, StatusAccepted, result.Status)
	assert.False(t, result.Degraded)
	require.Len(t, tenants.appended, 1)
	assert.Contains(t, tenants.appended[0].ReportText, "RAPORT ROBOCZY DLA ARCHITEKTA")
	assert.Equal(t, "Brief: Hala", tenants.appended[0].Title)
}

func TestReportTitleFallback(t *testing.T) {
	// The form package drops blank values, so the title falls back.
	p, tokens, tenants, _, _ := fixture()
	ctx := context.Background()

	tok, err := tokens.Issue(ctx)
	require.NoError(t, err)

	_, err = p.Run(ctx, testTenant(), testRecipient(), tok, map[string]string{"investor_name": "  "})
	require.NoError(t, err)

	require.Len(t, tenants.appended, 1)
	assert.Equal(t, "Brief inwestorski", tenants.appended[0].Title)
}

func TestPreviewNoSideEffects(t *testing.T) {
	p, _, tenants, gen, disp := fixture()

	text, degraded := p.Preview(context.Background(), testTenant(), testRecipient(), map[string]string{
		"usable_area_m2": "140",
	})

	assert.True(t, degraded)
	assert.Equal(t, "RAPORT", text)
	assert.Equal(t, 1, gen.calls)
	assert.Zero(t, tenants.consumeCalls)
	assert.Zero(t, disp.calls)
	assert.Empty(t, tenants.appended)
}
