package store

import (
	"database/sql"
	"fmt"

	"folio/internal/models"
	"folio/internal/shape"
)

// HomeStore handles the singleton home content record.
type HomeStore struct {
	db *sql.DB
}

// NewHomeStore creates a new HomeStore with the given database connection.
func NewHomeStore(db *sql.DB) *HomeStore {
	return &HomeStore{db: db}
}

const homeColumns = `id, hero_title, hero_subtitle, hero_image, about_text,
	about_image, cta_text, featured_projects, skills_items, timeline_items,
	footer_links, updated_at`

func scanHome(scanner interface{ Scan(...any) error }) (*models.HomeContent, error) {
	var (
		h                                  models.HomeContent
		featured, skills, timeline, footer string
	)
	err := scanner.Scan(
		&h.ID, &h.HeroTitle, &h.HeroSubtitle, &h.HeroImage, &h.AboutText,
		&h.AboutImage, &h.CTAText, &featured, &skills, &timeline,
		&footer, &h.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return shape.NormalizeHome(&h, featured, skills, timeline, footer), nil
}

// Get returns the home content record. Returns nil when none has been
// written yet.
func (s *HomeStore) Get() (*models.HomeContent, error) {
	row := s.db.QueryRow(`SELECT ` + homeColumns + ` FROM home_content ORDER BY updated_at DESC LIMIT 1`)
	h, err := scanHome(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get home content: %w", err)
	}
	return h, nil
}

// Save upserts the singleton row. The first save creates it; every later
// save replaces it in full. The upsert always keys on the existing row's
// id, so a copy with a zero id (seed data, a stale fallback record)
// cannot create a second row.
func (s *HomeStore) Save(h *models.HomeContent) error {
	existing, err := s.Get()
	if err != nil {
		return fmt.Errorf("save home content: %w", err)
	}
	if existing != nil {
		h.ID = existing.ID
	}

	_, err = s.db.Exec(`
		INSERT INTO home_content (id, hero_title, hero_subtitle, hero_image,
			about_text, about_image, cta_text, featured_projects, skills_items,
			timeline_items, footer_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			hero_title = EXCLUDED.hero_title,
			hero_subtitle = EXCLUDED.hero_subtitle,
			hero_image = EXCLUDED.hero_image,
			about_text = EXCLUDED.about_text,
			about_image = EXCLUDED.about_image,
			cta_text = EXCLUDED.cta_text,
			featured_projects = EXCLUDED.featured_projects,
			skills_items = EXCLUDED.skills_items,
			timeline_items = EXCLUDED.timeline_items,
			footer_links = EXCLUDED.footer_links,
			updated_at = NOW()`,
		idOrNew(h.ID), h.HeroTitle, h.HeroSubtitle, h.HeroImage,
		h.AboutText, h.AboutImage, h.CTAText,
		shape.FormatList(shape.EnsureStrings(h.FeaturedProjects)),
		shape.FormatList(h.SkillsItems),
		shape.FormatList(h.TimelineItems),
		shape.FormatList(h.FooterLinks),
	)
	if err != nil {
		return fmt.Errorf("save home content: %w", err)
	}
	return nil
}
