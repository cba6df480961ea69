package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports service liveness and which collaborators are
// configured. Missing collaborators degrade features but never block startup.
func HealthCheck(c echo.Context) error {
	cfg := deps.Config
	return c.JSON(http.StatusOK, echo.Map{
		"status":  "healthy",
		"service": "brief-service",
		"collaborators": echo.Map{
			"ai":     cfg.AI.APIKey != "",
			"resend": cfg.Mail.ResendAPIKey != "" && cfg.Mail.ResendFrom != "",
			"smtp":   cfg.Mail.SMTPUser != "" && cfg.Mail.SMTPPassword != "",
		},
	})
}
