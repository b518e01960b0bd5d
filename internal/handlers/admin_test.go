package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/uuid"

	"folio/internal/fallback"
	"folio/internal/models"
	"folio/internal/service"
	"folio/internal/store"
)

// newTestAdmin wires an Admin handler group against fake repositories, a
// real bbolt fallback cache, and a real Valkey page cache. Skips when
// Valkey is unreachable.
func newTestAdmin(t *testing.T, repo *fakeProjectRepo, fb *fallback.Cache) *Admin {
	t.Helper()
	return NewAdmin(
		testRenderer(t),
		service.NewProjectService(repo, fb, nil),
		testHomeService(t, &fakeHomeRepo{}),
		testContactService(t, &fakeMessageRepo{}, &fakeContactInfoRepo{}),
		store.NewMediaStore(brokenDB(t)),
		nil,
		testPageCache(t),
	)
}

func TestDashboard(t *testing.T) {
	repo := &fakeProjectRepo{projects: []models.Project{{ID: uuid.New(), Slug: "p", Title: "P"}}}
	a := newTestAdmin(t, repo, testFallback(t))

	w := httptest.NewRecorder()
	a.Dashboard(w, httptest.NewRequest(http.MethodGet, "/admin", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Dashboard") {
		t.Error("expected dashboard heading")
	}
	if strings.Contains(body, "database is unreachable") {
		t.Error("healthy dashboard should not show the degraded banner")
	}
	if strings.Contains(body, "Migrate local edits") {
		t.Error("no pending local edits, migrate prompt should be hidden")
	}
}

// TestDashboardMigratePrompt drives the full local-edit cycle: a record
// that exists only in the fallback cache surfaces a migrate prompt, and
// running the migration moves it into the database and clears the prompt.
func TestDashboardMigratePrompt(t *testing.T) {
	repo := &fakeProjectRepo{}
	fb := testFallback(t)
	local := models.Project{ID: uuid.New(), Slug: "offline-edit", Title: "Offline Edit"}
	if err := fallback.Save(fb, fallback.BucketProjects, []models.Project{local}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	// A degraded write leaves the bucket dirty.
	if err := fb.MarkDirty(fallback.BucketProjects); err != nil {
		t.Fatalf("mark dirty: %v", err)
	}
	a := newTestAdmin(t, repo, fb)

	w := httptest.NewRecorder()
	a.Dashboard(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if !strings.Contains(w.Body.String(), "Migrate local edits") {
		t.Fatal("expected migrate prompt for pending local records")
	}

	w = httptest.NewRecorder()
	a.Migrate(w, httptest.NewRequest(http.MethodPost, "/admin/migrate", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("migrate: expected 200, got %d", w.Code)
	}
	if len(repo.projects) != 1 || repo.projects[0].Slug != "offline-edit" {
		t.Errorf("local record not migrated: %+v", repo.projects)
	}
	if strings.Contains(w.Body.String(), "Migrate local edits") {
		t.Error("migrate prompt should clear after a successful run")
	}
}

func TestProjectCreate(t *testing.T) {
	repo := &fakeProjectRepo{}
	a := newTestAdmin(t, repo, testFallback(t))

	w := httptest.NewRecorder()
	a.ProjectCreate(w, formRequest("/admin/projects", url.Values{
		"title":      {"Shiny New Thing"},
		"categories": {"development"},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d: %s", w.Code, w.Body.String())
	}
	if len(repo.projects) != 1 {
		t.Fatalf("project not stored: %+v", repo.projects)
	}
	created := repo.projects[0]
	if created.Slug != "shiny-new-thing" {
		t.Errorf("Slug = %q", created.Slug)
	}
	wantLoc := "/admin/projects/" + created.ID.String()
	if loc := w.Header().Get("Location"); loc != wantLoc {
		t.Errorf("Location = %q, want %q", loc, wantLoc)
	}
}

func TestProjectCreateValidation(t *testing.T) {
	repo := &fakeProjectRepo{}
	a := newTestAdmin(t, repo, testFallback(t))

	w := httptest.NewRecorder()
	a.ProjectCreate(w, formRequest("/admin/projects", url.Values{"title": {"   "}}))

	if w.Code != http.StatusOK {
		t.Fatalf("expected re-rendered form with 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Title is required.") {
		t.Error("expected validation message in response")
	}
	if len(repo.projects) != 0 {
		t.Error("invalid project must not be stored")
	}
}

func TestProjectToggle(t *testing.T) {
	id := uuid.New()
	repo := &fakeProjectRepo{projects: []models.Project{{ID: id, Slug: "p", Title: "P"}}}
	a := newTestAdmin(t, repo, testFallback(t))

	req := withRouteParams(httptest.NewRequest(http.MethodPost, "/admin/projects/"+id.String()+"/toggle", nil),
		map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	a.ProjectToggle(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !repo.projects[0].Hidden {
		t.Error("toggle did not hide the project")
	}
}

// TestProjectDeleteDegraded verifies that deletes refuse to degrade: with
// the database down the project is still readable from the fallback
// cache, but the delete fails loudly instead of silently going local.
func TestProjectDeleteDegraded(t *testing.T) {
	id := uuid.New()
	fb := testFallback(t)
	if err := fallback.Save(fb, fallback.BucketProjects, []models.Project{{ID: id, Slug: "p", Title: "P"}}); err != nil {
		t.Fatalf("prime cache: %v", err)
	}
	a := newTestAdmin(t, &fakeProjectRepo{failing: true}, fb)

	req := withRouteParams(httptest.NewRequest(http.MethodDelete, "/admin/projects/"+id.String(), nil),
		map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	a.ProjectDelete(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "database is unreachable") {
		t.Error("expected explicit unavailability message")
	}
}

func TestProjectUpdateBadID(t *testing.T) {
	a := newTestAdmin(t, &fakeProjectRepo{}, testFallback(t))

	req := withRouteParams(formRequest("/admin/projects/nope", url.Values{"title": {"T"}}),
		map[string]string{"id": "nope"})
	w := httptest.NewRecorder()
	a.ProjectUpdate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed id, got %d", w.Code)
	}
}

func TestHomeSave(t *testing.T) {
	homeRepo := &fakeHomeRepo{home: &models.HomeContent{
		HeroTitle:   "Old",
		SkillsItems: []models.SkillGroup{{Category: models.CategoryDesign, Skills: []string{"Figma"}}},
	}}
	a := NewAdmin(
		testRenderer(t),
		testProjectService(t, &fakeProjectRepo{}),
		testHomeService(t, homeRepo),
		testContactService(t, &fakeMessageRepo{}, &fakeContactInfoRepo{}),
		store.NewMediaStore(brokenDB(t)),
		nil,
		testPageCache(t),
	)

	w := httptest.NewRecorder()
	a.HomeSave(w, formRequest("/admin/home", url.Values{
		"hero_title":  {"New Hero"},
		"about_text":  {"About me"},
		"featured":    {"slug-a", "slug-b"},
		"skills_json": {`[{"category":`}, // malformed, must keep previous
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	saved := homeRepo.home
	if saved.HeroTitle != "New Hero" || saved.AboutText != "About me" {
		t.Errorf("saved = %+v", saved)
	}
	if len(saved.FeaturedProjects) != 2 {
		t.Errorf("FeaturedProjects = %v", saved.FeaturedProjects)
	}
	if len(saved.SkillsItems) != 1 || saved.SkillsItems[0].Category != models.CategoryDesign {
		t.Errorf("malformed skills JSON should keep previous value, got %+v", saved.SkillsItems)
	}
}

func TestMessageMarkRead(t *testing.T) {
	id := uuid.New()
	msgs := &fakeMessageRepo{messages: []models.ContactMessage{
		{ID: id, Name: "Ada", Email: "ada@example.com", Body: "Hi"},
	}}
	a := NewAdmin(
		testRenderer(t),
		testProjectService(t, &fakeProjectRepo{}),
		testHomeService(t, &fakeHomeRepo{}),
		testContactService(t, msgs, &fakeContactInfoRepo{}),
		store.NewMediaStore(brokenDB(t)),
		nil,
		testPageCache(t),
	)

	req := withRouteParams(httptest.NewRequest(http.MethodPost, "/admin/messages/"+id.String()+"/read", nil),
		map[string]string{"id": id.String()})
	w := httptest.NewRecorder()
	a.MessageMarkRead(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !msgs.messages[0].Read {
		t.Error("message not marked read")
	}
}

func TestContactInfoSave(t *testing.T) {
	infoRepo := &fakeContactInfoRepo{info: &models.ContactInfo{Email: "old@example.com"}}
	a := NewAdmin(
		testRenderer(t),
		testProjectService(t, &fakeProjectRepo{}),
		testHomeService(t, &fakeHomeRepo{}),
		testContactService(t, &fakeMessageRepo{}, infoRepo),
		store.NewMediaStore(brokenDB(t)),
		nil,
		testPageCache(t),
	)

	w := httptest.NewRecorder()
	a.ContactInfoSave(w, formRequest("/admin/contact", url.Values{
		"email":       {"new@example.com"},
		"location":    {"Rotterdam"},
		"social_json": {`[{"platform":"github","url":"https://github.com/x"}]`},
	}))

	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	saved := infoRepo.info
	if saved.Email != "new@example.com" || saved.Location != "Rotterdam" {
		t.Errorf("saved = %+v", saved)
	}
	if len(saved.SocialLinks) != 1 || saved.SocialLinks[0].Platform != "github" {
		t.Errorf("SocialLinks = %+v", saved.SocialLinks)
	}
}
