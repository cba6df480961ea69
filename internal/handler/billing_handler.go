package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"brief-service/internal/model"
	"brief-service/pkg/logger"
	"brief-service/prometheus"
)

// BillingWebhook processes events from the external billing collaborator.
// It is the only writer of plan and billing status. The payload must carry a
// valid HMAC-SHA256 signature over the raw body in X-Billing-Signature.
func BillingWebhook(c echo.Context) error {
	log := logger.FromEcho(c)

	secret := deps.Config.Billing.WebhookSecret
	if secret == "" {
		log.Warn("Billing webhook received but no secret configured")
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "billing not configured"})
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(c.Request().Header.Get("X-Billing-Signature"))) {
		log.Warn("Billing webhook signature mismatch")
		prometheus.BillingEventCounter.WithLabelValues("invalid_signature").Inc()
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid signature"})
	}

	var event struct {
		Type           string `json:"type"`
		TenantID       string `json:"tenant_id"`
		Plan           string `json:"plan"`
		Status         string `json:"status"`
		CustomerID     string `json:"customer_id"`
		SubscriptionID string `json:"subscription_id"`
	}
	if err := json.Unmarshal(body, &event); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	ctx := c.Request().Context()
	tenant, err := deps.Tenants.FindByID(ctx, event.TenantID)
	if err != nil {
		log.Warn("Billing event for unknown tenant", zap.String("tenant_id", event.TenantID))
		prometheus.BillingEventCounter.WithLabelValues("unknown_tenant").Inc()
		return c.JSON(http.StatusOK, echo.Map{"message": "ignored"})
	}

	switch event.Type {
	case "subscription.activated", "subscription.updated":
		if event.Plan != "" {
			tenant.Plan = event.Plan
		}
		tenant.BillingStatus = event.Status
		tenant.BillingCustomerID = event.CustomerID
		tenant.BillingSubscriptionID = event.SubscriptionID
	case "subscription.canceled":
		tenant.Plan = model.PlanNone
		tenant.BillingStatus = model.BillingInactive
	default:
		prometheus.BillingEventCounter.WithLabelValues("unhandled").Inc()
		return c.JSON(http.StatusOK, echo.Map{"message": "ignored"})
	}

	if err := deps.Tenants.Save(ctx, tenant); err != nil {
		log.Error("Failed to apply billing event", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	prometheus.BillingEventCounter.WithLabelValues(event.Type).Inc()
	log.Info("Billing event applied",
		zap.String("tenant_id", tenant.ID),
		zap.String("type", event.Type),
		zap.String("plan", tenant.Plan),
		zap.String("status", tenant.BillingStatus))
	return c.JSON(http.StatusOK, echo.Map{"message": "applied"})
}
