package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ListReports returns the tenant's archived report metadata, newest first.
// The full report text is available per report via GetReport.
func ListReports(c echo.Context) error {
	reports, err := deps.Tenants.ListReports(c.Request().Context(), tenantID(c))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reports": reports})
}

// GetReport returns one archived report with its full text.
func GetReport(c echo.Context) error {
	report, err := deps.Tenants.FindReport(c.Request().Context(), tenantID(c), c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "report not found"})
	}
	return c.JSON(http.StatusOK, echo.Map{"report": report})
}
