package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
	"folio/internal/shape"
)

// ProjectStore handles all project database operations. The loose list
// columns are normalized on read and formatted on write, so callers only
// ever see canonical models.Project values.
type ProjectStore struct {
	db *sql.DB
}

// NewProjectStore creates a new ProjectStore with the given database connection.
func NewProjectStore(db *sql.DB) *ProjectStore {
	return &ProjectStore{db: db}
}

const projectColumns = `id, slug, title, description, cover_image, categories,
	date_label, content, technologies, skills, github_url, live_url,
	social_url, hidden, created_at, updated_at`

// scanProject scans one row and runs the normalizer over the loose columns.
func scanProject(scanner interface{ Scan(...any) error }) (*models.Project, error) {
	var (
		p                                  models.Project
		categories, content, techs, skills string
	)
	err := scanner.Scan(
		&p.ID, &p.Slug, &p.Title, &p.Description, &p.CoverImage, &categories,
		&p.DateLabel, &content, &techs, &skills, &p.GithubURL, &p.LiveURL,
		&p.SocialURL, &p.Hidden, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return shape.NormalizeProject(&p, categories, techs, skills, content), nil
}

// List returns all projects, newest first.
func (s *ProjectStore) List() ([]models.Project, error) {
	rows, err := s.db.Query(`SELECT ` + projectColumns + ` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	var items []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		items = append(items, *p)
	}
	return items, rows.Err()
}

// FindByID retrieves a project by its UUID. Returns nil if not found.
func (s *ProjectStore) FindByID(id uuid.UUID) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by id: %w", err)
	}
	return p, nil
}

// FindBySlug retrieves a visible project by its slug. Used for public
// project detail pages; hidden projects 404.
func (s *ProjectStore) FindBySlug(slug string) (*models.Project, error) {
	row := s.db.QueryRow(`SELECT `+projectColumns+` FROM projects WHERE slug = $1 AND NOT hidden`, slug)
	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find project by slug: %w", err)
	}
	return p, nil
}

// Create inserts a new project, formatting the list fields for storage,
// and returns the stored row in canonical shape.
func (s *ProjectStore) Create(p *models.Project) (*models.Project, error) {
	row := s.db.QueryRow(`
		INSERT INTO projects (id, slug, title, description, cover_image, categories,
			date_label, content, technologies, skills, github_url, live_url, social_url, hidden)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING `+projectColumns,
		idOrNew(p.ID), p.Slug, p.Title, p.Description, p.CoverImage,
		shape.FormatList(shape.EnsureCategories(p.Categories)),
		p.DateLabel,
		shape.FormatBlocks(p.Content, p.RawContent),
		shape.FormatList(shape.EnsureStrings(p.Technologies)),
		shape.FormatList(shape.EnsureStrings(p.Skills)),
		p.GithubURL, p.LiveURL, p.SocialURL, p.Hidden,
	)
	created, err := scanProject(row)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return created, nil
}

// Update modifies an existing project.
func (s *ProjectStore) Update(p *models.Project) error {
	_, err := s.db.Exec(`
		UPDATE projects SET
			slug = $1, title = $2, description = $3, cover_image = $4,
			categories = $5, date_label = $6, content = $7, technologies = $8,
			skills = $9, github_url = $10, live_url = $11, social_url = $12,
			hidden = $13, updated_at = NOW()
		WHERE id = $14`,
		p.Slug, p.Title, p.Description, p.CoverImage,
		shape.FormatList(shape.EnsureCategories(p.Categories)),
		p.DateLabel,
		shape.FormatBlocks(p.Content, p.RawContent),
		shape.FormatList(shape.EnsureStrings(p.Technologies)),
		shape.FormatList(shape.EnsureStrings(p.Skills)),
		p.GithubURL, p.LiveURL, p.SocialURL, p.Hidden, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	return nil
}

// Delete removes a project by ID.
func (s *ProjectStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	return nil
}

// DeleteAll removes every project. Only the reset path uses this.
func (s *ProjectStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM projects`)
	if err != nil {
		return fmt.Errorf("delete all projects: %w", err)
	}
	return nil
}

// Count returns the number of stored projects.
func (s *ProjectStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM projects`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count projects: %w", err)
	}
	return count, nil
}

// idOrNew keeps a caller-supplied ID (seed data, migration from the
// fallback cache) and generates one otherwise.
func idOrNew(id uuid.UUID) uuid.UUID {
	if id == uuid.Nil {
		return uuid.New()
	}
	return id
}
