package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"brief-service/internal/model"
	"brief-service/pkg/jwtutil"
	"brief-service/pkg/logger"
	"brief-service/prometheus"
)

// Register creates a tenant account on the free plan.
func Register(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name, email and password are required"})
	}

	ctx := c.Request().Context()
	if _, err := deps.Tenants.FindByEmail(ctx, req.Email); err == nil {
		log.Error("Tenant already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	tenant := model.Tenant{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hashed),
		Plan:         model.PlanFree,
	}
	if err := deps.Tenants.Create(ctx, &tenant); err != nil {
		log.Error("Failed to create tenant", zap.Error(err))
		prometheus.RecordAuthError("tenant_creation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	log.Info("Tenant registered", zap.String("tenant_id", tenant.ID), zap.String("email", tenant.Email))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Tenant registered successfully",
		"tenant": echo.Map{
			"id":    tenant.ID,
			"name":  tenant.Name,
			"email": tenant.Email,
			"plan":  tenant.Plan,
		},
	})
}

// Login verifies credentials and issues a JWT.
func Login(c echo.Context) error {
	log := logger.FromEcho(c)

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	ctx := c.Request().Context()
	tenant, err := deps.Tenants.FindByEmail(ctx, req.Email)
	if err != nil {
		log.Error("Tenant not found", zap.String("email", req.Email))
		prometheus.RecordAuthError("tenant_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	if err := bcrypt.CompareHashAndPassword([]byte(tenant.PasswordHash), []byte(req.Password)); err != nil {
		log.Error("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	jwtToken, err := jwtutil.GenerateToken(tenant.ID, tenant.Email)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	log.Info("Tenant logged in", zap.String("tenant_id", tenant.ID), zap.String("email", tenant.Email))
	return c.JSON(http.StatusOK, echo.Map{
		"token": jwtToken,
		"tenant": echo.Map{
			"id":    tenant.ID,
			"name":  tenant.Name,
			"email": tenant.Email,
			"plan":  tenant.Plan,
		},
	})
}
