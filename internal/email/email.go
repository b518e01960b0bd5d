// Package email sends contact form submissions through a hosted
// transactional email API (EmailJS-compatible: a service/template/key
// triple plus a template parameter map). When the send fails the caller
// can fall back to a mailto: link built by MailtoLink.
package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"folio/internal/models"
)

// Config identifies the hosted email account and template.
type Config struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
}

// Sender delivers contact messages to the site owner.
type Sender struct {
	config Config
	client *http.Client
}

// NewSender creates an email sender. BaseURL defaults to the hosted API.
func NewSender(cfg Config) *Sender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.emailjs.com/api/v1.0"
	}
	return &Sender{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether sending is possible at all. Without the
// account triple the contact form stores messages but sends nothing.
func (s *Sender) Configured() bool {
	return s.config.ServiceID != "" && s.config.TemplateID != "" && s.config.PublicKey != ""
}

// Send delivers one contact message through the hosted API.
func (s *Sender) Send(ctx context.Context, m *models.ContactMessage) error {
	body := sendRequest{
		ServiceID:  s.config.ServiceID,
		TemplateID: s.config.TemplateID,
		UserID:     s.config.PublicKey,
		TemplateParams: map[string]string{
			"from_name":  m.Name,
			"from_email": m.Email,
			"subject":    m.Subject,
			"message":    m.Body,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("email marshal: %w", err)
	}

	url := s.config.BaseURL + "/email/send"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("email request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("email http: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("email read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("email API error (status %d): %s", resp.StatusCode, string(respBody))
	}
	return nil
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// MailtoLink builds a mailto: deep link for the manual-send fallback
// shown when the API call fails.
func MailtoLink(to string, m *models.ContactMessage) string {
	params := url.Values{}
	params.Set("subject", m.Subject)
	params.Set("body", fmt.Sprintf("From: %s <%s>\n\n%s", m.Name, m.Email, m.Body))
	// mailto uses %20 for spaces, not +.
	query := params.Encode()
	return "mailto:" + to + "?" + replacePlus(query)
}

func replacePlus(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '+' {
			out = append(out, '%', '2', '0')
		} else {
			out = append(out, s[i])
		}
	}
	return string(out)
}
