package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"folio/internal/models"
)

func testMessage() *models.ContactMessage {
	return &models.ContactMessage{
		Name:    "Ada",
		Email:   "ada@example.com",
		Subject: "Collaboration",
		Body:    "I have a project idea.",
	}
}

func TestSend(t *testing.T) {
	var got sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/email/send" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s := NewSender(Config{
		BaseURL:    srv.URL,
		ServiceID:  "svc",
		TemplateID: "tpl",
		PublicKey:  "key",
	})

	if err := s.Send(context.Background(), testMessage()); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if got.ServiceID != "svc" || got.TemplateID != "tpl" || got.UserID != "key" {
		t.Errorf("account triple not sent: %+v", got)
	}
	if got.TemplateParams["from_email"] != "ada@example.com" {
		t.Errorf("params = %v", got.TemplateParams)
	}
}

func TestSendAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	s := NewSender(Config{BaseURL: srv.URL, ServiceID: "svc", TemplateID: "tpl", PublicKey: "key"})
	err := s.Send(context.Background(), testMessage())
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestConfigured(t *testing.T) {
	if NewSender(Config{}).Configured() {
		t.Error("empty config must not report configured")
	}
	if !NewSender(Config{ServiceID: "s", TemplateID: "t", PublicKey: "k"}).Configured() {
		t.Error("full triple must report configured")
	}
}

func TestMailtoLink(t *testing.T) {
	link := MailtoLink("owner@example.com", testMessage())

	if !strings.HasPrefix(link, "mailto:owner@example.com?") {
		t.Errorf("link = %q", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("spaces must be %%20-encoded, got %q", link)
	}
	if !strings.Contains(link, "subject=Collaboration") {
		t.Errorf("subject missing: %q", link)
	}
}
