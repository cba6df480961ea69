package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"brief-service/pkg/logger"
)

// GetProfile returns the authenticated tenant's account, plan and usage.
func GetProfile(c echo.Context) error {
	ctx := c.Request().Context()
	tenant, err := deps.Tenants.FindByID(ctx, tenantID(c))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"tenant": tenant,
		"usage": echo.Map{
			"period":    tenant.UsagePeriod,
			"used":      tenant.SubmissionsSent,
			"ceiling":   deps.Gate.Ceiling(tenant.Plan),
			"remaining": deps.Gate.Remaining(tenant),
		},
		"access_active": accessActive(c, tenant),
	})
}

// UpdatePricing replaces the tenant's free-form pricing policy text, the
// basis for design-fee calculation in generated reports.
func UpdatePricing(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		PricingText string `json:"pricing_text"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()
	tenant, err := deps.Tenants.FindByID(ctx, tenantID(c))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	}

	tenant.PricingText = req.PricingText
	if err := deps.Tenants.Save(ctx, tenant); err != nil {
		log.Error("Failed to update pricing text", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	log.Info("Pricing text updated", zap.String("tenant_id", tenant.ID))
	return c.JSON(http.StatusOK, echo.Map{"message": "pricing updated"})
}

// UpdateBillingProfile updates the informational invoice fields. Plan and
// billing status are owned by the billing webhook and are not writable here.
func UpdateBillingProfile(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		BillingName    string `json:"billing_name"`
		BillingTaxID   string `json:"billing_tax_id"`
		BillingAddress string `json:"billing_address"`
		InvoiceEmail   string `json:"invoice_email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()
	tenant, err := deps.Tenants.FindByID(ctx, tenantID(c))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "tenant not found"})
	}

	tenant.BillingName = req.BillingName
	tenant.BillingTaxID = req.BillingTaxID
	tenant.BillingAddress = req.BillingAddress
	tenant.InvoiceEmail = req.InvoiceEmail
	if err := deps.Tenants.Save(ctx, tenant); err != nil {
		log.Error("Failed to update billing profile", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{"message": "billing profile updated"})
}
