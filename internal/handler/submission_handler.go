package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"brief-service/internal/form"
	"brief-service/internal/model"
	"brief-service/internal/pipeline"
	"brief-service/pkg/logger"
)

// GetBriefForm serves the questionnaire for a brief link: the declared schema
// plus a fresh single-use submit token. Unknown links 404; links of tenants
// without active access 403.
func GetBriefForm(c echo.Context) error {
	ctx := c.Request().Context()

	recipient, tenant, err := deps.Tenants.FindRecipientByLinkToken(ctx, c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "link not found"})
	}
	if !accessActive(c, tenant) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "subscription inactive"})
	}

	submitToken, err := deps.Tokens.Issue(ctx)
	if err != nil {
		logger.FromEcho(c).Error("Failed to issue submit token", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"company":      tenant.Name,
		"architect":    recipient.Name,
		"schema":       form.Schema,
		"submit_token": submitToken,
	})
}

// SubmitBrief accepts one questionnaire submission and runs the full
// pipeline. Replayed tokens acknowledge with 200 without reprocessing,
// exhausted quota 429; acceptance never depends on email delivery.
func SubmitBrief(c echo.Context) error {
	log := logger.FromEcho(c)
	ctx := logger.WithContext(c.Request().Context(), log)

	recipient, tenant, err := deps.Tenants.FindRecipientByLinkToken(ctx, c.Param("token"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "link not found"})
	}
	if !accessActive(c, tenant) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "subscription inactive"})
	}

	fields, submitToken := submittedFields(c)
	if submitToken == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing submit token"})
	}

	result, err := deps.Pipeline.Run(ctx, tenant, recipient, submitToken, fields)
	if err != nil {
		log.Error("Submission pipeline failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "submission failed"})
	}

	switch result.Status {
	case pipeline.StatusDuplicate:
		// Duplicate is success-without-reprocessing, not an error the
		// submitter should act on.
		return c.JSON(http.StatusOK, echo.Map{"status": result.Status, "message": "form already received"})
	case pipeline.StatusQuotaExceeded:
		return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "monthly submission limit reached"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"status":     result.Status,
		"report_id":  result.ReportID,
		"degraded":   result.Degraded,
		"email_sent": result.EmailSent,
	})
}

// DemoSubmit generates a report preview without a token, quota, delivery or
// archive. The demo tenant has no pricing text, so fee calculation always
// rests on assumptions.
func DemoSubmit(c echo.Context) error {
	fields, _ := submittedFields(c)

	tenant := &model.Tenant{Name: "Demo", Plan: model.PlanFree}
	recipient := &model.Recipient{Name: "Demo"}

	text, degraded := deps.Pipeline.Preview(c.Request().Context(), tenant, recipient, fields)
	return c.JSON(http.StatusOK, echo.Map{
		"report":   text,
		"degraded": degraded,
	})
}

// submittedFields flattens the posted form into the raw field map the
// normalizer expects and extracts the submit token.
func submittedFields(c echo.Context) (map[string]string, string) {
	fields := make(map[string]string)
	params, err := c.FormParams()
	if err != nil {
		return fields, ""
	}
	var submitToken string
	for name, values := range params {
		if len(values) == 0 {
			continue
		}
		if name == "submit_token" {
			submitToken = values[0]
			continue
		}
		fields[name] = values[0]
	}
	return fields, submitToken
}
