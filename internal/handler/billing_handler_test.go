package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brief-service/pkg/config"
)

func webhookContext(t *testing.T, body, signature string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/billing/webhook", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if signature != "" {
		req.Header.Set("X-Billing-Signature", signature)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func sign(secret, body string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestBillingWebhookRejectsMissingSecret(t *testing.T) {
	Init(Deps{Config: &config.Config{}})

	c, rec := webhookContext(t, `{}`, "")
	require.NoError(t, BillingWebhook(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestBillingWebhookRejectsBadSignature(t *testing.T) {
	Init(Deps{Config: &config.Config{
		Billing: config.BillingConfig{WebhookSecret: "s3cret"},
	}})

	body := `{"type":"subscription.activated","tenant_id":"ten_x"}`
	c, rec := webhookContext(t, body, sign("wrong-secret", body))
	require.NoError(t, BillingWebhook(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBillingWebhookRejectsMissingSignature(t *testing.T) {
	Init(Deps{Config: &config.Config{
		Billing: config.BillingConfig{WebhookSecret: "s3cret"},
	}})

	c, rec := webhookContext(t, `{}`, "")
	require.NoError(t, BillingWebhook(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSubmittedFields(t *testing.T) {
	e := echo.New()
	form := "investor_name=Jan&submit_token=tok123&empty="
	req := httptest.NewRequest(http.MethodPost, "/f/link", strings.NewReader(form))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	fields, token := submittedFields(c)

	assert.Equal(t, "tok123", token)
	assert.Equal(t, "Jan", fields["investor_name"])
	_, hasToken := fields["submit_token"]
	assert.False(t, hasToken, "submit token must not leak into the form fields")
}
