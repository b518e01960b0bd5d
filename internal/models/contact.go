package models

import (
	"time"

	"github.com/google/uuid"
)

// ContactMessage is one contact form submission. Apart from the read-flag
// transition it is immutable once created.
type ContactMessage struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// SocialLink is one entry in the contact page's social link list.
type SocialLink struct {
	ID       string `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon,omitempty"`
}

// ContactInfo is the singleton record with the site owner's contact
// details. SocialLinks is guaranteed non-nil after normalization.
type ContactInfo struct {
	ID          uuid.UUID    `json:"id"`
	Email       string       `json:"email"`
	Phone       string       `json:"phone"`
	Location    string       `json:"location"`
	SocialLinks []SocialLink `json:"socialLinks"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
