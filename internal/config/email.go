package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"time"

	"go.uber.org/zap"
)

// Mailer delivers transactional mail (password reset links). The reset
// credential travels only through this channel, never the API response.
type Mailer interface {
	Send(to, subject, body string) error
}

type ResendConfig struct {
	APIKey string
	APIURL string
	From   string
}

func NewResendConfig() *ResendConfig {
	return &ResendConfig{
		APIKey: os.Getenv("RESEND_API_KEY"),
		APIURL: os.Getenv("RESEND_API_URL"),
		From:   os.Getenv("FROM_EMAIL"),
	}
}

// NewMailer returns the Resend-backed mailer when credentials are configured
// and falls back to a log-only mailer otherwise, so development and test
// environments never need an email provider.
func NewMailer(config *ResendConfig, logger *zap.Logger) Mailer {
	if config.APIKey == "" || config.APIURL == "" || config.From == "" {
		logger.Info("email credentials not configured, using log-only mailer")
		return &LogMailer{logger: logger}
	}
	return &ResendMailer{config: config, logger: logger}
}

type EmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html"`
}

// ResendMailer sends mail through the Resend HTTP API.
type ResendMailer struct {
	config *ResendConfig
	logger *zap.Logger
}

func (m *ResendMailer) Send(to, subject, body string) error {
	payload := EmailRequest{
		From:    m.config.From,
		To:      []string{to},
		Subject: subject,
		Html:    body,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequest("POST", m.config.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+m.config.APIKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var errorResponse map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorResponse)
		return fmt.Errorf("failed to send email, status code: %d, error: %v", resp.StatusCode, errorResponse)
	}

	m.logger.Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogMailer writes the mail to the log instead of delivering it.
type LogMailer struct {
	logger *zap.Logger
}

func (m *LogMailer) Send(to, subject, body string) error {
	m.logger.Info("simulated email delivery",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body),
	)
	return nil
}
