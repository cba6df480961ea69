// Package handler holds the HTTP handlers. Dependencies are wired once at
// startup via Init; handlers are package functions in echo's handler shape.
package handler

import (
	"brief-service/internal/model"
	"brief-service/internal/pipeline"
	"brief-service/internal/quota"
	"brief-service/internal/store"
	"brief-service/internal/token"
	"brief-service/pkg/config"
	"brief-service/prometheus"

	"github.com/labstack/echo/v4"
)

// Deps are the collaborators handlers need.
type Deps struct {
	Config   *config.Config
	Tenants  *store.TenantStore
	Tokens   token.Store
	Gate     *quota.Gate
	Pipeline *pipeline.Pipeline
}

var deps Deps

// Init wires the handler package. Must be called before routes are served.
func Init(d Deps) {
	deps = d
}

// MetricsHandler exposes the Prometheus metrics endpoint.
func MetricsHandler(c echo.Context) error {
	handler := prometheus.GetPrometheusHandler()
	handler.ServeHTTP(c.Response(), c.Request())
	return nil
}

// tenantID pulls the authenticated tenant from the context set by the auth
// middleware.
func tenantID(c echo.Context) string {
	id, _ := c.Get("tenant_id").(string)
	return id
}

// accessActive applies the dev bypass on top of the tenant's own access rule.
func accessActive(c echo.Context, t *model.Tenant) bool {
	if deps.Config.Billing.DevBypass {
		return true
	}
	return t.AccessActive()
}
