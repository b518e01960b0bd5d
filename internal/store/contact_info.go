package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
	"folio/internal/shape"
)

// ContactInfoStore handles the singleton contact details record.
type ContactInfoStore struct {
	db *sql.DB
}

// NewContactInfoStore creates a new ContactInfoStore with the given database connection.
func NewContactInfoStore(db *sql.DB) *ContactInfoStore {
	return &ContactInfoStore{db: db}
}

const contactInfoColumns = `id, email, phone, location, social_links, updated_at`

func scanContactInfo(scanner interface{ Scan(...any) error }) (*models.ContactInfo, error) {
	var (
		c     models.ContactInfo
		links string
	)
	err := scanner.Scan(&c.ID, &c.Email, &c.Phone, &c.Location, &links, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return shape.NormalizeContactInfo(&c, links), nil
}

// Get returns the contact info record. Returns nil when none has been
// written yet.
func (s *ContactInfoStore) Get() (*models.ContactInfo, error) {
	row := s.db.QueryRow(`SELECT ` + contactInfoColumns + ` FROM contact_info ORDER BY updated_at DESC LIMIT 1`)
	c, err := scanContactInfo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact info: %w", err)
	}
	return c, nil
}

// Save upserts the singleton row, keyed on the existing row's id so a
// zero-id copy cannot create a second row.
func (s *ContactInfoStore) Save(c *models.ContactInfo) error {
	existing, err := s.Get()
	if err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	if existing != nil {
		c.ID = existing.ID
	}

	_, err = s.db.Exec(`
		INSERT INTO contact_info (id, email, phone, location, social_links)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			phone = EXCLUDED.phone,
			location = EXCLUDED.location,
			social_links = EXCLUDED.social_links,
			updated_at = NOW()`,
		idOrNew(c.ID), c.Email, c.Phone, c.Location,
		shape.FormatList(c.SocialLinks),
	)
	if err != nil {
		return fmt.Errorf("save contact info: %w", err)
	}
	return nil
}
