package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"brief-service/pkg/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendChannel sends via the Resend HTTPS API.
type ResendChannel struct {
	apiKey   string
	from     string
	endpoint string
	client   *http.Client
}

// NewResendChannel builds the primary channel from config. Returns nil when
// the API key or sender address is missing; the dispatcher skips nil channels.
func NewResendChannel(cfg *config.MailConfig) *ResendChannel {
	if cfg.ResendAPIKey == "" || cfg.ResendFrom == "" {
		return nil
	}
	return &ResendChannel{
		apiKey:   cfg.ResendAPIKey,
		from:     cfg.ResendFrom,
		endpoint: resendEndpoint,
		client:   &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *ResendChannel) Name() string { return "resend" }

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
}

// Send posts the message to the Resend API. Any non-2xx status is a failure.
func (c *ResendChannel) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(resendRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Body,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("resend call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend status %d: %s", resp.StatusCode, string(detail))
	}
	return nil
}
