package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"folio/internal/models"
	"folio/internal/shape"
)

// SeedProjects returns the built-in starter projects. They are written on
// first boot and re-written by the repair path when the projects table
// turns up empty or unreadable.
func SeedProjects() []models.Project {
	return []models.Project{
		{
			Slug:        "portfolio-site",
			Title:       "This Site",
			Description: "The site you are looking at, built as its own first project.",
			Categories:  []models.Category{models.CategoryDevelopment, models.CategoryDesign},
			DateLabel:   "2024",
			Content: []models.Block{
				{Type: models.BlockSubtitle, Content: "Why build it by hand"},
				{Type: models.BlockText, Content: "Every block on this page comes from the block editor in the admin area."},
			},
			Technologies: []string{"Go", "PostgreSQL"},
			Skills:       []string{"backend", "design"},
		},
		{
			Slug:        "field-notes",
			Title:       "Field Notes",
			Description: "A research notebook turned into a publishable archive.",
			Categories:  []models.Category{models.CategoryResearch},
			DateLabel:   "2023",
			Content: []models.Block{
				{Type: models.BlockText, Content: "Notes, interviews and prototypes collected over a year of field work."},
			},
			Technologies: []string{"TypeScript"},
			Skills:       []string{"research"},
		},
		{
			Slug:        "color-lab",
			Title:       "Color Lab",
			Description: "An experiment in generated palettes.",
			Categories:  []models.Category{models.CategoryDesign, models.CategoryRest},
			DateLabel:   "2022",
			Content: []models.Block{
				{Type: models.BlockQuote, Content: "Color is the first thing you see and the last thing you understand."},
			},
			Technologies: []string{"SVG"},
			Skills:       []string{"illustration"},
		},
	}
}

// SeedHome returns the starter home page content.
func SeedHome() models.HomeContent {
	return models.HomeContent{
		HeroTitle:        "Hello, I build things.",
		HeroSubtitle:     "Developer and designer",
		AboutText:        "I make software and the occasional illustration.",
		CTAText:          "Get in touch",
		FeaturedProjects: []string{"portfolio-site", "field-notes"},
		SkillsItems:      models.DefaultSkillGroups(),
		TimelineItems:    []models.TimelineItem{},
		FooterLinks:      []models.FooterLink{},
	}
}

// SeedContactInfo returns the starter contact details.
func SeedContactInfo() models.ContactInfo {
	return models.ContactInfo{
		Email:       "hello@example.com",
		SocialLinks: []models.SocialLink{},
	}
}

// Seed populates the database with initial data: a default admin user,
// the starter projects, home content and contact details. Each section
// is created only when its table is empty, so Seed is safe to run on
// every boot.
func Seed(db *sql.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedProjects(db); err != nil {
		return err
	}
	if err := seedHome(db); err != nil {
		return err
	}
	if err := seedContactInfo(db); err != nil {
		return err
	}
	return nil
}

// seedAdmin creates the default owner account if no users exist. The
// account must set up 2FA on first login (totp_enabled = false).
func seedAdmin(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (email, password_hash, display_name, totp_enabled)
		VALUES ($1, $2, $3, $4)
	`, "admin@folio.local", string(hash), "Owner", false)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@folio.local",
		"password", "admin",
	)
	return nil
}

func seedProjects(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM projects").Scan(&count); err != nil {
		return fmt.Errorf("seed check projects: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, p := range SeedProjects() {
		_, err := db.Exec(`
			INSERT INTO projects (slug, title, description, categories, date_label,
				content, technologies, skills)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			p.Slug, p.Title, p.Description,
			shape.FormatList(p.Categories), p.DateLabel,
			shape.FormatBlocks(p.Content, ""),
			shape.FormatList(p.Technologies),
			shape.FormatList(p.Skills),
		)
		if err != nil {
			return fmt.Errorf("seed insert project %s: %w", p.Slug, err)
		}
	}

	slog.Info("database seeded with starter projects", "count", len(SeedProjects()))
	return nil
}

func seedHome(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM home_content").Scan(&count); err != nil {
		return fmt.Errorf("seed check home content: %w", err)
	}
	if count > 0 {
		return nil
	}

	h := SeedHome()
	_, err := db.Exec(`
		INSERT INTO home_content (hero_title, hero_subtitle, about_text, cta_text,
			featured_projects, skills_items, timeline_items, footer_links)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		h.HeroTitle, h.HeroSubtitle, h.AboutText, h.CTAText,
		shape.FormatList(h.FeaturedProjects),
		shape.FormatList(h.SkillsItems),
		shape.FormatList(h.TimelineItems),
		shape.FormatList(h.FooterLinks),
	)
	if err != nil {
		return fmt.Errorf("seed insert home content: %w", err)
	}
	return nil
}

func seedContactInfo(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM contact_info").Scan(&count); err != nil {
		return fmt.Errorf("seed check contact info: %w", err)
	}
	if count > 0 {
		return nil
	}

	c := SeedContactInfo()
	_, err := db.Exec(`
		INSERT INTO contact_info (email, phone, location, social_links)
		VALUES ($1, $2, $3, $4)`,
		c.Email, c.Phone, c.Location, shape.FormatList(c.SocialLinks),
	)
	if err != nil {
		return fmt.Errorf("seed insert contact info: %w", err)
	}
	return nil
}
