package models

import (
	"time"

	"github.com/google/uuid"
)

// Category classifies a project. Categories are a fixed enumeration; any
// value outside it is rejected at the editor boundary.
type Category string

const (
	CategoryDevelopment Category = "development"
	CategoryDesign      Category = "design"
	CategoryResearch    Category = "research"
	CategoryData        Category = "data"
	CategoryRest        Category = "rest"
)

// Categories lists all valid project categories in display order.
var Categories = []Category{
	CategoryDevelopment, CategoryDesign, CategoryResearch, CategoryData, CategoryRest,
}

// ValidCategory reports whether c is one of the fixed category values.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryDevelopment, CategoryDesign, CategoryResearch, CategoryData, CategoryRest:
		return true
	}
	return false
}

// Project is one showcased work. After normalization the slice fields are
// always non-nil and Content is always a materialized block list, never
// an encoded string.
type Project struct {
	ID           uuid.UUID  `json:"id"`
	Slug         string     `json:"slug"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	CoverImage   string     `json:"coverImage"`
	Categories   []Category `json:"categories"`
	DateLabel    string     `json:"date"` // free-text, human-entered
	Content      []Block    `json:"content"`
	Technologies []string   `json:"technologies"`
	Skills       []string   `json:"skills"`
	GithubURL    string     `json:"githubUrl,omitempty"`
	LiveURL      string     `json:"liveUrl,omitempty"`
	SocialURL    string     `json:"socialUrl,omitempty"`
	Hidden       bool       `json:"hidden"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// RawContent holds the original content value when it could not be
	// decoded as a block list. Kept for manual recovery and written back
	// untouched as long as Content stays empty.
	RawContent string `json:"rawContent,omitempty"`
}

// Visible reports whether the project should appear on the public site.
func (p *Project) Visible() bool {
	return !p.Hidden
}

// HasCategory reports whether the project carries the given category tag.
func (p *Project) HasCategory(c Category) bool {
	for _, pc := range p.Categories {
		if pc == c {
			return true
		}
	}
	return false
}
