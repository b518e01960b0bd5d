package handlers

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"folio/internal/models"
)

func TestReadProjectForm(t *testing.T) {
	req := formRequest("/admin/projects", url.Values{
		"title":        {"  My New Project  "},
		"description":  {"A thing I built"},
		"categories":   {"development", "design", "cooking"},
		"technologies": {"Go, PostgreSQL , ,Valkey"},
		"skills":       {""},
		"hidden":       {"true"},
	})

	var p models.Project
	readProjectForm(req, &p)

	if p.Title != "My New Project" {
		t.Errorf("Title = %q", p.Title)
	}
	if p.Slug != "my-new-project" {
		t.Errorf("Slug = %q, want derived from title", p.Slug)
	}
	if !p.Hidden {
		t.Error("hidden flag not read")
	}
	wantCats := []models.Category{models.CategoryDevelopment, models.CategoryDesign}
	if !reflect.DeepEqual(p.Categories, wantCats) {
		t.Errorf("Categories = %v, want %v (unknown values dropped)", p.Categories, wantCats)
	}
	wantTech := []string{"Go", "PostgreSQL", "Valkey"}
	if !reflect.DeepEqual(p.Technologies, wantTech) {
		t.Errorf("Technologies = %v, want %v", p.Technologies, wantTech)
	}
	if p.Skills != nil {
		t.Errorf("Skills = %v, want nil for empty input", p.Skills)
	}
}

func TestReadProjectFormExplicitSlug(t *testing.T) {
	req := formRequest("/admin/projects", url.Values{
		"title": {"Title"},
		"slug":  {"Custom Slug Here"},
	})

	var p models.Project
	readProjectForm(req, &p)

	if p.Slug != "custom-slug-here" {
		t.Errorf("Slug = %q, want normalized explicit slug", p.Slug)
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{" , , ", nil},
		{"one", []string{"one"}},
		{"a, b,c ", []string{"a", "b", "c"}},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestUnmarshalInto(t *testing.T) {
	prev := []models.SkillGroup{{Category: models.CategoryDesign, Skills: []string{"Figma"}}}

	t.Run("valid JSON replaces value", func(t *testing.T) {
		dst := append([]models.SkillGroup(nil), prev...)
		unmarshalInto(`[{"category":"development","skills":["Go"]}]`, &dst)
		if len(dst) != 1 || dst[0].Category != models.CategoryDevelopment {
			t.Errorf("dst = %+v", dst)
		}
	})

	t.Run("malformed JSON keeps previous value", func(t *testing.T) {
		dst := append([]models.SkillGroup(nil), prev...)
		unmarshalInto(`[{"category":`, &dst)
		if !reflect.DeepEqual(dst, prev) {
			t.Errorf("dst = %+v, want previous value kept", dst)
		}
	})

	t.Run("empty input keeps previous value", func(t *testing.T) {
		dst := append([]models.SkillGroup(nil), prev...)
		unmarshalInto("  ", &dst)
		if !reflect.DeepEqual(dst, prev) {
			t.Errorf("dst = %+v, want previous value kept", dst)
		}
	})
}

func TestMarshalIndent(t *testing.T) {
	out := marshalIndent([]models.FooterLink{{Label: "GitHub", URL: "https://github.com/x"}})
	if !strings.Contains(out, `"label": "GitHub"`) {
		t.Errorf("marshalIndent output: %s", out)
	}
}
