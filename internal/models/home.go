package models

import (
	"time"

	"github.com/google/uuid"
)

// SkillGroup is one category of skills shown on the home page.
type SkillGroup struct {
	Category Category `json:"category"`
	Skills   []string `json:"skills"`
}

// TimelineItem is one life/work event on the home page timeline.
type TimelineItem struct {
	Period      string `json:"period"` // free-text, e.g. "2019 - 2023"
	Type        string `json:"type"`   // "work", "education", ...
	Title       string `json:"title"`
	Institution string `json:"institution"`
	Description string `json:"description,omitempty"`
}

// FooterLink is one entry in the home page footer.
type FooterLink struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// HomeContent is the singleton record backing the home page. After
// normalization every slice field is non-nil even when the stored column
// held an encoded string or nothing at all.
//
// FeaturedProjects is referential, not owning: entries may point at
// projects that were deleted or hidden since, and are filtered at render
// time.
type HomeContent struct {
	ID               uuid.UUID      `json:"id"`
	HeroTitle        string         `json:"heroTitle"`
	HeroSubtitle     string         `json:"heroSubtitle"`
	HeroImage        string         `json:"heroImage"`
	AboutText        string         `json:"aboutText"`
	AboutImage       string         `json:"aboutImage"`
	CTAText          string         `json:"ctaText"`
	FeaturedProjects []string       `json:"featuredProjects"`
	SkillsItems      []SkillGroup   `json:"skillsItems"`
	TimelineItems    []TimelineItem `json:"timelineItems"`
	FooterLinks      []FooterLink   `json:"footerLinks"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

// DefaultSkillGroups is the built-in skill set used when the stored
// skillsItems column is absent or empty. The other list fields default to
// empty; skills alone fall back to this set so a fresh site never renders
// a blank skills section.
func DefaultSkillGroups() []SkillGroup {
	return []SkillGroup{
		{Category: CategoryDevelopment, Skills: []string{"Go", "TypeScript", "PostgreSQL"}},
		{Category: CategoryDesign, Skills: []string{"Figma", "Illustration"}},
		{Category: CategoryResearch, Skills: []string{"Prototyping", "User interviews"}},
	}
}
