package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"folio/internal/models"
)

// Validation limits for form fields.
const (
	maxTitleLen       = 300
	maxSlugLen        = 300
	maxDescriptionLen = 2_000
	maxMessageLen     = 10_000
	maxNameLen        = 200
	maxSubjectLen     = 300
)

// validateProject checks the project form inputs and returns the first
// error found, or "" when the input is acceptable.
func validateProject(p *models.Project) string {
	if strings.TrimSpace(p.Title) == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(p.Slug) > maxSlugLen {
		return "Slug is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(p.Description) > maxDescriptionLen {
		return "Description is too long (max 2,000 characters)."
	}
	for _, c := range p.Categories {
		if !models.ValidCategory(c) {
			return "Unknown category."
		}
	}
	return ""
}

// validateMessage checks a contact form submission.
func validateMessage(m *models.ContactMessage) string {
	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Subject = strings.TrimSpace(m.Subject)
	m.Body = strings.TrimSpace(m.Body)

	if m.Name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(m.Name) > maxNameLen {
		return "Name is too long (max 200 characters)."
	}
	if m.Email == "" {
		return "Email is required."
	}
	if _, err := mail.ParseAddress(m.Email); err != nil {
		return "Email address is not valid."
	}
	if utf8.RuneCountInString(m.Subject) > maxSubjectLen {
		return "Subject is too long (max 300 characters)."
	}
	if m.Body == "" {
		return "Message is required."
	}
	if utf8.RuneCountInString(m.Body) > maxMessageLen {
		return "Message is too long (max 10,000 characters)."
	}
	return ""
}
