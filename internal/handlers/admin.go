package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"folio/internal/cache"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/service"
	"folio/internal/slug"
	"folio/internal/storage"
	"folio/internal/store"
)

// Admin groups the authenticated admin panel handlers. All of them sit
// behind the session and 2FA middleware.
type Admin struct {
	renderer      *render.Renderer
	projects      *service.ProjectService
	home          *service.HomeService
	contact       *service.ContactService
	mediaStore    *store.MediaStore
	storageClient *storage.Client
	pageCache     *cache.PageCache
}

// NewAdmin creates a new Admin handler group. storageClient may be nil
// when object storage is not configured.
func NewAdmin(
	renderer *render.Renderer,
	projects *service.ProjectService,
	home *service.HomeService,
	contact *service.ContactService,
	mediaStore *store.MediaStore,
	storageClient *storage.Client,
	pageCache *cache.PageCache,
) *Admin {
	return &Admin{
		renderer:      renderer,
		projects:      projects,
		home:          home,
		contact:       contact,
		mediaStore:    mediaStore,
		storageClient: storageClient,
		pageCache:     pageCache,
	}
}

// Dashboard renders the admin landing page with content counts and, when
// the fallback cache holds records the database doesn't, a migration
// prompt.
func (a *Admin) Dashboard(w http.ResponseWriter, r *http.Request) {
	projects, src, err := a.projects.Load()
	if err != nil {
		slog.Error("dashboard project load failed", "error", err)
	}

	mediaCount := 0
	if items, err := a.mediaStore.List(); err == nil {
		mediaCount = len(items)
	}

	a.renderer.Page(w, r, "dashboard", &render.PageData{
		Title:   "Dashboard",
		Section: "dashboard",
		Data: map[string]any{
			"ProjectCount": len(projects),
			"UnreadCount":  a.contact.UnreadCount(),
			"MediaCount":   mediaCount,
			"Degraded":     src.Degraded(),
			"PendingLocal": a.projects.PendingLocal(),
		},
	})
}

// Migrate pushes locally cached edits into the database, then re-renders
// the dashboard.
func (a *Admin) Migrate(w http.ResponseWriter, r *http.Request) {
	migrated, err := a.projects.MigrateFromFallback()
	if err != nil {
		slog.Error("project migration failed", "error", err)
	}
	if _, err := a.home.MigrateFromFallback(); err != nil {
		slog.Error("home migration failed", "error", err)
	}
	if migrated > 0 {
		a.pageCache.InvalidateAll(r.Context())
	}
	a.Dashboard(w, r)
}

// ---------- Projects ----------

// ProjectList renders the project table.
func (a *Admin) ProjectList(w http.ResponseWriter, r *http.Request) {
	projects, src, err := a.projects.Load()
	if err != nil {
		slog.Error("project list failed", "error", err)
	}

	a.renderer.Page(w, r, "projects", &render.PageData{
		Title:   "Projects",
		Section: "projects",
		Data: map[string]any{
			"Projects": projects,
			"Degraded": src.Degraded(),
		},
	})
}

// ProjectNew renders an empty project form.
func (a *Admin) ProjectNew(w http.ResponseWriter, r *http.Request) {
	a.renderer.Page(w, r, "project_form", &render.PageData{
		Title:   "New Project",
		Section: "projects",
		Data: map[string]any{
			"Project":    &models.Project{},
			"IsNew":      true,
			"Categories": models.Categories,
		},
	})
}

// ProjectCreate handles the new project form submission.
func (a *Admin) ProjectCreate(w http.ResponseWriter, r *http.Request) {
	p := &models.Project{}
	readProjectForm(r, p)

	if msg := validateProject(p); msg != "" {
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "New Project",
			Section: "projects",
			Data: map[string]any{
				"Project":    p,
				"IsNew":      true,
				"Categories": models.Categories,
				"Error":      msg,
			},
		})
		return
	}

	loc, err := a.projects.Create(p)
	if err != nil {
		slog.Error("project create failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if loc == service.SavedRemote {
		a.pageCache.InvalidateProjects(r.Context(), p.Slug)
	}

	http.Redirect(w, r, "/admin/projects/"+p.ID.String(), http.StatusSeeOther)
}

// ProjectEdit renders the edit form for one project, including the block
// editor.
func (a *Admin) ProjectEdit(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findProject(w, r)
	if !ok {
		return
	}

	a.renderer.Page(w, r, "project_form", &render.PageData{
		Title:   "Edit Project",
		Section: "projects",
		Data: map[string]any{
			"Project":    p,
			"IsNew":      false,
			"Categories": models.Categories,
		},
	})
}

// ProjectUpdate handles the edit form submission. The block list is not
// part of this form; blocks are edited through the block endpoints, so
// the stored content is carried over untouched.
func (a *Admin) ProjectUpdate(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findProject(w, r)
	if !ok {
		return
	}
	oldSlug := p.Slug
	readProjectForm(r, p)

	if msg := validateProject(p); msg != "" {
		a.renderer.Page(w, r, "project_form", &render.PageData{
			Title:   "Edit Project",
			Section: "projects",
			Data: map[string]any{
				"Project":    p,
				"IsNew":      false,
				"Categories": models.Categories,
				"Error":      msg,
			},
		})
		return
	}

	loc, err := a.projects.Update(p)
	if err != nil {
		slog.Error("project update failed", "id", p.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if loc == service.SavedRemote {
		a.pageCache.InvalidateProjects(r.Context(), oldSlug)
		a.pageCache.InvalidateProjects(r.Context(), p.Slug)
	}

	http.Redirect(w, r, "/admin/projects/"+p.ID.String(), http.StatusSeeOther)
}

// ProjectDelete removes a project. Deletes have no local fallback: when
// the database is down the delete fails and says so.
func (a *Admin) ProjectDelete(w http.ResponseWriter, r *http.Request) {
	p, ok := a.findProject(w, r)
	if !ok {
		return
	}

	if err := a.projects.Delete(p.ID); err != nil {
		slog.Error("project delete failed", "id", p.ID, "error", err)
		http.Error(w, "Delete failed: the database is unreachable.", http.StatusServiceUnavailable)
		return
	}
	a.pageCache.InvalidateProjects(r.Context(), p.Slug)

	a.ProjectList(w, r)
}

// ProjectToggle flips a project's public visibility.
func (a *Admin) ProjectToggle(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if _, err := a.projects.ToggleVisibility(id); err != nil {
		slog.Error("project toggle failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	a.pageCache.InvalidateAll(r.Context())

	a.ProjectList(w, r)
}

// ProjectsReset replaces the whole collection with the starter set.
func (a *Admin) ProjectsReset(w http.ResponseWriter, r *http.Request) {
	if err := a.projects.Reset(); err != nil {
		slog.Error("project reset failed", "error", err)
		http.Error(w, "Reset failed: the database is unreachable.", http.StatusServiceUnavailable)
		return
	}
	a.pageCache.InvalidateAll(r.Context())

	http.Redirect(w, r, "/admin/projects", http.StatusSeeOther)
}

// findProject resolves the {id} URL parameter against the project
// collection, writing the error response itself when it fails. Looking
// through Load instead of the store keeps degraded reads working.
func (a *Admin) findProject(w http.ResponseWriter, r *http.Request) (*models.Project, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return nil, false
	}

	projects, _, err := a.projects.Load()
	if err != nil {
		slog.Error("project lookup failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return nil, false
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], true
		}
	}
	http.NotFound(w, r)
	return nil, false
}

// readProjectForm fills p from the submitted form. The slug is derived
// from the title when left empty.
func readProjectForm(r *http.Request, p *models.Project) {
	p.Title = strings.TrimSpace(r.FormValue("title"))
	p.Slug = strings.TrimSpace(r.FormValue("slug"))
	if p.Slug == "" {
		p.Slug = slug.Generate(p.Title)
	} else {
		p.Slug = slug.Generate(p.Slug)
	}
	p.Description = strings.TrimSpace(r.FormValue("description"))
	p.CoverImage = strings.TrimSpace(r.FormValue("cover_image"))
	p.DateLabel = strings.TrimSpace(r.FormValue("date_label"))
	p.GithubURL = strings.TrimSpace(r.FormValue("github_url"))
	p.LiveURL = strings.TrimSpace(r.FormValue("live_url"))
	p.SocialURL = strings.TrimSpace(r.FormValue("social_url"))
	p.Hidden = r.FormValue("hidden") == "true"

	p.Categories = nil
	for _, c := range r.Form["categories"] {
		if cat := models.Category(c); models.ValidCategory(cat) {
			p.Categories = append(p.Categories, cat)
		}
	}
	p.Technologies = splitList(r.FormValue("technologies"))
	p.Skills = splitList(r.FormValue("skills"))
}

// splitList turns a comma-separated input into a trimmed string slice.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ---------- Home page ----------

// HomeForm renders the home page editor.
func (a *Admin) HomeForm(w http.ResponseWriter, r *http.Request) {
	home, src, err := a.home.Load()
	if err != nil {
		slog.Error("home load failed", "error", err)
	}
	projects, _, _ := a.projects.Load()

	a.renderer.Page(w, r, "home_form", &render.PageData{
		Title:   "Home Page",
		Section: "home",
		Data: map[string]any{
			"Home":         &home,
			"Projects":     projects,
			"Degraded":     src.Degraded(),
			"SkillsJSON":   marshalIndent(home.SkillsItems),
			"TimelineJSON": marshalIndent(home.TimelineItems),
			"FooterJSON":   marshalIndent(home.FooterLinks),
		},
	})
}

// HomeSave handles the home page editor submission. The structured list
// fields arrive as JSON textareas; a malformed one keeps the previous
// value rather than failing the whole save.
func (a *Admin) HomeSave(w http.ResponseWriter, r *http.Request) {
	home, _, err := a.home.Load()
	if err != nil {
		slog.Error("home load for save failed", "error", err)
	}

	home.HeroTitle = strings.TrimSpace(r.FormValue("hero_title"))
	home.HeroSubtitle = strings.TrimSpace(r.FormValue("hero_subtitle"))
	home.HeroImage = strings.TrimSpace(r.FormValue("hero_image"))
	home.AboutText = r.FormValue("about_text")
	home.AboutImage = strings.TrimSpace(r.FormValue("about_image"))
	home.CTAText = strings.TrimSpace(r.FormValue("cta_text"))
	home.FeaturedProjects = r.Form["featured"]
	if home.FeaturedProjects == nil {
		home.FeaturedProjects = []string{}
	}

	unmarshalInto(r.FormValue("skills_json"), &home.SkillsItems)
	unmarshalInto(r.FormValue("timeline_json"), &home.TimelineItems)
	unmarshalInto(r.FormValue("footer_json"), &home.FooterLinks)

	loc, err := a.home.Save(&home)
	if err != nil {
		slog.Error("home save failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if loc == service.SavedRemote {
		a.pageCache.Invalidate(r.Context(), cache.HomeKey())
	}

	http.Redirect(w, r, "/admin/home", http.StatusSeeOther)
}

// ---------- Messages ----------

// Messages renders the contact message inbox.
func (a *Admin) Messages(w http.ResponseWriter, r *http.Request) {
	messages, src, err := a.contact.Messages()
	if err != nil {
		slog.Error("message list failed", "error", err)
	}

	a.renderer.Page(w, r, "messages", &render.PageData{
		Title:   "Messages",
		Section: "messages",
		Data: map[string]any{
			"Messages": messages,
			"Degraded": src.Degraded(),
		},
	})
}

// MessageMarkRead marks one message as read. Marking an already read
// message is a no-op.
func (a *Admin) MessageMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.contact.MarkRead(id); err != nil {
		slog.Error("mark read failed", "id", id, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	a.Messages(w, r)
}

// MessageDelete removes one message.
func (a *Admin) MessageDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := a.contact.DeleteMessage(id); err != nil {
		slog.Error("message delete failed", "id", id, "error", err)
		http.Error(w, "Delete failed: the database is unreachable.", http.StatusServiceUnavailable)
		return
	}

	a.Messages(w, r)
}

// ---------- Contact info ----------

// ContactInfoForm renders the contact info editor.
func (a *Admin) ContactInfoForm(w http.ResponseWriter, r *http.Request) {
	info, src, err := a.contact.Info()
	if err != nil {
		slog.Error("contact info load failed", "error", err)
	}

	a.renderer.Page(w, r, "contact_info", &render.PageData{
		Title:   "Contact Info",
		Section: "contact",
		Data: map[string]any{
			"Info":       &info,
			"Degraded":   src.Degraded(),
			"SocialJSON": marshalIndent(info.SocialLinks),
		},
	})
}

// ContactInfoSave handles the contact info editor submission.
func (a *Admin) ContactInfoSave(w http.ResponseWriter, r *http.Request) {
	info, _, err := a.contact.Info()
	if err != nil {
		slog.Error("contact info load for save failed", "error", err)
	}

	info.Email = strings.TrimSpace(r.FormValue("email"))
	info.Phone = strings.TrimSpace(r.FormValue("phone"))
	info.Location = strings.TrimSpace(r.FormValue("location"))
	unmarshalInto(r.FormValue("social_json"), &info.SocialLinks)

	loc, err := a.contact.SaveInfo(&info)
	if err != nil {
		slog.Error("contact info save failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if loc == service.SavedRemote {
		a.pageCache.Invalidate(r.Context(), cache.ContactKey())
	}

	http.Redirect(w, r, "/admin/contact", http.StatusSeeOther)
}

// marshalIndent renders v as indented JSON for the structured textareas.
func marshalIndent(v any) string {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(out)
}

// unmarshalInto decodes a JSON textarea into dst, leaving dst unchanged
// when the input is empty or malformed.
func unmarshalInto[T any](raw string, dst *T) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return
	}
	var parsed T
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		slog.Warn("structured field ignored, invalid JSON", "error", err)
		return
	}
	*dst = parsed
}
