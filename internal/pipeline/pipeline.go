// Package pipeline runs one brief submission end to end: claim the token,
// consume quota, normalize the form, generate the report, render it, dispatch
// the email and archive the record. Delivery never gates acceptance.
package pipeline

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"brief-service/internal/form"
	"brief-service/internal/mail"
	"brief-service/internal/model"
	"brief-service/internal/quota"
	"brief-service/internal/report"
	"brief-service/internal/store"
	"brief-service/internal/token"
	"brief-service/pkg/logger"
	"brief-service/prometheus"
)

// Submission statuses.
const (
	StatusAccepted      = "accepted"
	StatusDuplicate     = "duplicate"
	StatusQuotaExceeded = "quota_exceeded"
	StatusError         = "error"
)

// Generator produces one report; mail.Dispatcher-shaped interfaces keep the
// pipeline testable without a backend or an SMTP relay.
type Generator interface {
	Generate(ctx context.Context, req report.Request) report.Result
}

// Dispatcher sends one rendered report.
type Dispatcher interface {
	Dispatch(ctx context.Context, to, subject, body string) mail.Outcome
}

// TenantStore is the persistence surface the pipeline needs.
type TenantStore interface {
	ConsumeQuota(ctx context.Context, tenantID string, ceiling int) error
	AppendReport(ctx context.Context, rec *model.ReportRecord) error
}

// Pipeline wires the collaborators for one deployment.
type Pipeline struct {
	tokens     token.Store
	tenants    TenantStore
	gate       *quota.Gate
	generator  Generator
	dispatcher Dispatcher
}

// New builds a pipeline.
func New(tokens token.Store, tenants TenantStore, gate *quota.Gate, gen Generator, disp Dispatcher) *Pipeline {
	return &Pipeline{
		tokens:     tokens,
		tenants:    tenants,
		gate:       gate,
		generator:  gen,
		dispatcher: disp,
	}
}

// Result is the outcome of one submission run.
type Result struct {
	Status    string
	ReportID  string
	Degraded  bool
	EmailSent bool
}

// Run executes one submission for the tenant/recipient pair resolved from the
// brief link. The submit token is claimed first; the quota slot is consumed
// and durable before any generation work starts. From that point on the run
// always archives a record, even when generation degraded or delivery failed.
func (p *Pipeline) Run(ctx context.Context, tenant *model.Tenant, recipient *model.Recipient, submitToken string, raw map[string]string) (Result, error) {
	log := logger.FromContext(ctx).With(
		zap.String("tenant_id", tenant.ID),
		zap.String("recipient_id", recipient.ID),
	)

	used, err := p.tokens.Claim(ctx, submitToken)
	if err != nil {
		prometheus.RecordSubmission(StatusError)
		return Result{Status: StatusError}, err
	}
	if used {
		prometheus.RecordSubmission(StatusDuplicate)
		log.Info("submission rejected", zap.String("reason", "token already used"))
		return Result{Status: StatusDuplicate}, nil
	}

	if err := p.tenants.ConsumeQuota(ctx, tenant.ID, p.gate.Ceiling(tenant.Plan)); err != nil {
		if errors.Is(err, store.ErrQuotaExceeded) {
			prometheus.RecordSubmission(StatusQuotaExceeded)
			log.Info("submission rejected", zap.String("reason", "quota exceeded"))
			return Result{Status: StatusQuotaExceeded}, nil
		}
		prometheus.RecordSubmission(StatusError)
		return Result{Status: StatusError}, err
	}

	normalized := form.Normalize(raw)

	genResult := p.generator.Generate(ctx, report.Request{
		Form:           normalized,
		PricingText:    tenant.PricingText,
		TenantName:     tenant.Name,
		TenantEmail:    tenant.Email,
		RecipientName:  recipient.Name,
		RecipientEmail: recipient.Email,
	})

	var text string
	if genResult.Degraded() {
		text = genResult.Text
		log.Warn("report generation degraded", zap.String("reason", genResult.Reason))
	} else {
		text = report.Render(genResult.Report, tenant.Name, recipient.Name)
	}

	title := reportTitle(normalized)
	outcome := p.dispatcher.Dispatch(ctx, recipient.Email, title, text)

	rec := &model.ReportRecord{
		TenantID:       tenant.ID,
		CreatedAt:      time.Now().UTC().Unix(),
		Title:          title,
		RecipientID:    recipient.ID,
		RecipientName:  recipient.Name,
		RecipientEmail: recipient.Email,
		DeliveryID:     outcome.DeliveryID,
		EmailSent:      outcome.Sent,
		ReportText:     text,
	}
	if err := p.tenants.AppendReport(ctx, rec); err != nil {
		prometheus.RecordSubmission(StatusError)
		return Result{Status: StatusError, Degraded: genResult.Degraded(), EmailSent: outcome.Sent}, err
	}

	prometheus.RecordSubmission(StatusAccepted)
	log.Info("submission accepted",
		zap.String("report_id", rec.ID),
		zap.Bool("degraded", genResult.Degraded()),
		zap.Bool("email_sent", outcome.Sent),
	)
	return Result{
		Status:    StatusAccepted,
		ReportID:  rec.ID,
		Degraded:  genResult.Degraded(),
		EmailSent: outcome.Sent,
	}, nil
}

// Preview runs generation and rendering only: no token, no quota, no
// delivery, no archive. Used by the demo endpoint.
func (p *Pipeline) Preview(ctx context.Context, tenant *model.Tenant, recipient *model.Recipient, raw map[string]string) (string, bool) {
	normalized := form.Normalize(raw)
	genResult := p.generator.Generate(ctx, report.Request{
		Form:           normalized,
		PricingText:    tenant.PricingText,
		TenantName:     tenant.Name,
		TenantEmail:    tenant.Email,
		RecipientName:  recipient.Name,
		RecipientEmail: recipient.Email,
	})
	if genResult.Degraded() {
		return genResult.Text, true
	}
	return report.Render(genResult.Report, tenant.Name, recipient.Name), false
}

// reportTitle derives the archive title from the investor's name when
// present, falling back to a generic label.
func reportTitle(n form.Normalized) string {
	if v := n.Str("investor_name"); v != "" {
		return "Brief: " + v
	}
	if v := n.Str("inv_name"); v != "" {
		return "Brief: " + v
	}
	return "Brief inwestorski"
}
