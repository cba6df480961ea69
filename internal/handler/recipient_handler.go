package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"brief-service/internal/model"
	"brief-service/pkg/logger"
)

// CreateRecipient adds an architect and mints their brief link.
func CreateRecipient(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}

	recipient := model.Recipient{
		TenantID: tenantID(c),
		Name:     req.Name,
		Email:    req.Email,
	}
	if err := deps.Tenants.CreateRecipient(c.Request().Context(), &recipient); err != nil {
		log.Error("Failed to create recipient", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}

	log.Info("Recipient created",
		zap.String("tenant_id", recipient.TenantID),
		zap.String("recipient_id", recipient.ID))
	return c.JSON(http.StatusCreated, echo.Map{
		"recipient":  recipient,
		"brief_link": briefLink(recipient.LinkToken),
	})
}

// ListRecipients returns the tenant's recipients with their brief links.
func ListRecipients(c echo.Context) error {
	recipients, err := deps.Tenants.ListRecipients(c.Request().Context(), tenantID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}

	out := make([]echo.Map, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, echo.Map{
			"recipient":  r,
			"brief_link": briefLink(r.LinkToken),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"recipients": out})
}

// DeleteRecipient removes an architect; their brief link stops resolving.
func DeleteRecipient(c echo.Context) error {
	log := logger.FromEcho(c)

	if err := deps.Tenants.DeleteRecipient(c.Request().Context(), tenantID(c), c.Param("id")); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "recipient not found"})
	}

	log.Info("Recipient deleted",
		zap.String("tenant_id", tenantID(c)),
		zap.String("recipient_id", c.Param("id")))
	return c.JSON(http.StatusOK, echo.Map{"message": "recipient deleted"})
}

func briefLink(linkToken string) string {
	return deps.Config.Server.BaseURL + "/f/" + linkToken
}
