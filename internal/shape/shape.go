// Package shape converts between the loose on-disk encoding of content
// records and the strict in-memory types the rest of the application
// assumes.
//
// Multi-valued columns (categories, technologies, skills, featured
// projects, skill groups, timeline items, footer links, social links)
// have historically been written three ways: as JSON arrays, as
// JSON-encoded strings containing an array, or as a bare scalar. The
// block-content column may hold a JSON block list or an arbitrary string.
// Every decode here is total: unexpected input degrades to a safe default
// instead of returning an error, so callers never re-check shapes.
package shape

import (
	"encoding/json"
	"strings"

	"folio/internal/models"
)

// StringList decodes a loose multi-valued column into a string slice.
//
//	JSON array            → its elements
//	string holding array  → parsed elements
//	any other string      → single-element list wrapping it
//	empty / null          → empty list
//
// The result is never nil.
func StringList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []string{}
	}

	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	// A JSON-encoded scalar string ("\"design\"") unwraps before wrapping.
	var scalar string
	if err := json.Unmarshal([]byte(raw), &scalar); err == nil {
		return []string{scalar}
	}

	return []string{raw}
}

// CategoryList decodes a loose categories column, dropping values outside
// the fixed enumeration.
func CategoryList(raw string) []models.Category {
	out := []models.Category{}
	for _, s := range StringList(raw) {
		c := models.Category(s)
		if models.ValidCategory(c) {
			out = append(out, c)
		}
	}
	return out
}

// List decodes a loose column holding a JSON array of T. Non-array input
// (including a JSON-encoded string that itself contains an array, another
// historical write shape) degrades to an empty slice. The result is never
// nil.
func List[T any](raw string) []T {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "null" {
		return []T{}
	}

	var list []T
	if err := json.Unmarshal([]byte(raw), &list); err == nil && list != nil {
		return list
	}

	// Double-encoded: a JSON string whose contents are the array.
	var inner string
	if err := json.Unmarshal([]byte(raw), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &list); err == nil && list != nil {
			return list
		}
	}

	return []T{}
}

// SkillGroups decodes the skillsItems column. Unlike the other list
// fields it falls back to the built-in default set rather than an empty
// list, so a fresh or damaged record still renders a skills section.
func SkillGroups(raw string) []models.SkillGroup {
	groups := List[models.SkillGroup](raw)
	if len(groups) == 0 {
		return models.DefaultSkillGroups()
	}
	return groups
}

// Blocks decodes the block-content column. A JSON block list decodes to
// itself, preserving length and element order. Anything else (a bare
// string, a JSON object, invalid JSON) yields an empty block list plus
// the raw input so the undecodable original stays recoverable instead of
// being silently discarded.
func Blocks(raw string) (blocks []models.Block, preserved string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == "null" {
		return []models.Block{}, ""
	}

	var list []models.Block
	if err := json.Unmarshal([]byte(trimmed), &list); err == nil {
		if list == nil {
			return []models.Block{}, ""
		}
		return list, ""
	}

	// Double-encoded block list.
	var inner string
	if err := json.Unmarshal([]byte(trimmed), &inner); err == nil {
		if err := json.Unmarshal([]byte(inner), &list); err == nil && list != nil {
			return list, ""
		}
	}

	return []models.Block{}, raw
}

// FormatBlocks serializes a block list for the content column. An empty
// list with preserved raw content writes the original bytes back
// untouched; otherwise the list marshals to a JSON array ("[]" when
// empty, never null).
func FormatBlocks(blocks []models.Block, preserved string) string {
	if len(blocks) == 0 && preserved != "" {
		return preserved
	}
	if blocks == nil {
		blocks = []models.Block{}
	}
	encoded, err := json.Marshal(blocks)
	if err != nil {
		// Marshal of these concrete types cannot fail; keep the column
		// well-formed if it somehow does.
		return "[]"
	}
	return string(encoded)
}

// FormatList serializes a slice for a multi-valued column, guaranteeing a
// JSON array, never a bare scalar, never null.
func FormatList[T any](list []T) string {
	if list == nil {
		list = []T{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return "[]"
	}
	return string(encoded)
}

// EnsureStrings returns its input with a nil slice replaced by an empty
// one, the write-side guarantee for multi-valued fields that stay arrays.
func EnsureStrings(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

// EnsureCategories is EnsureStrings for category slices.
func EnsureCategories(list []models.Category) []models.Category {
	if list == nil {
		return []models.Category{}
	}
	return list
}

// NormalizeProject coerces a freshly scanned project into canonical
// shape: every multi-valued field a non-nil slice and Content a
// materialized block list. Other fields are left untouched. Pure; the
// input pointer is returned for chaining.
func NormalizeProject(p *models.Project, rawCategories, rawTechnologies, rawSkills, rawContent string) *models.Project {
	p.Categories = shapeCategories(rawCategories)
	p.Technologies = StringList(rawTechnologies)
	p.Skills = StringList(rawSkills)
	p.Content, p.RawContent = Blocks(rawContent)
	return p
}

func shapeCategories(raw string) []models.Category {
	cats := CategoryList(raw)
	if cats == nil {
		return []models.Category{}
	}
	return cats
}

// NormalizeHome coerces a freshly scanned home-content record.
func NormalizeHome(h *models.HomeContent, rawFeatured, rawSkillGroups, rawTimeline, rawFooter string) *models.HomeContent {
	h.FeaturedProjects = StringList(rawFeatured)
	h.SkillsItems = SkillGroups(rawSkillGroups)
	h.TimelineItems = List[models.TimelineItem](rawTimeline)
	h.FooterLinks = List[models.FooterLink](rawFooter)
	return h
}

// NormalizeContactInfo coerces a freshly scanned contact-info record.
func NormalizeContactInfo(c *models.ContactInfo, rawLinks string) *models.ContactInfo {
	c.SocialLinks = List[models.SocialLink](rawLinks)
	return c
}
