package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"folio/internal/cache"
	"folio/internal/email"
	"folio/internal/middleware"
	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/service"
)

// Public groups handlers for the public-facing site. Rendered pages are
// stored in the Valkey page cache; degraded renders (served from the
// fallback store) are never cached so a recovered database shows fresh
// content immediately. The contact page carries a CSRF form and is not
// cached at all.
type Public struct {
	renderer  *render.Renderer
	projects  *service.ProjectService
	home      *service.HomeService
	contact   *service.ContactService
	sender    *email.Sender
	pageCache *cache.PageCache
}

// NewPublic creates a new Public handler group.
func NewPublic(
	renderer *render.Renderer,
	projects *service.ProjectService,
	home *service.HomeService,
	contact *service.ContactService,
	sender *email.Sender,
	pageCache *cache.PageCache,
) *Public {
	return &Public{
		renderer:  renderer,
		projects:  projects,
		home:      home,
		contact:   contact,
		sender:    sender,
		pageCache: pageCache,
	}
}

// Home renders the site home page.
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if cached, ok := p.pageCache.Get(ctx, cache.HomeKey()); ok {
		writeHTML(w, cached)
		return
	}

	home, homeSrc, err := p.home.Load()
	if err != nil {
		slog.Error("home load failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	projects, projSrc, err := p.projects.Load()
	if err != nil {
		slog.Error("home project load failed", "error", err)
	}

	rendered, err := p.renderer.Public("home", &render.PageData{
		Title: home.HeroTitle,
		Data: map[string]any{
			"Home":        &home,
			"Featured":    featuredProjects(&home, projects),
			"FooterLinks": home.FooterLinks,
		},
	})
	if err != nil {
		slog.Error("home render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !homeSrc.Degraded() && !projSrc.Degraded() {
		p.pageCache.Set(ctx, cache.HomeKey(), rendered)
	}
	writeHTML(w, rendered)
}

// Projects renders the project listing, optionally filtered by category.
// Only the unfiltered listing is cached.
func (p *Public) Projects(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	category := r.URL.Query().Get("category")

	if category == "" {
		if cached, ok := p.pageCache.Get(ctx, cache.ProjectsKey()); ok {
			writeHTML(w, cached)
			return
		}
	}

	projects, src, err := p.projects.Load()
	if err != nil {
		slog.Error("project listing failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var visible []models.Project
	for _, proj := range projects {
		if proj.Hidden {
			continue
		}
		if category != "" && !proj.HasCategory(models.Category(category)) {
			continue
		}
		visible = append(visible, proj)
	}

	rendered, err := p.renderer.Public("projects", &render.PageData{
		Title: "Projects",
		Data: map[string]any{
			"Projects":   visible,
			"Category":   category,
			"Categories": models.Categories,
		},
	})
	if err != nil {
		slog.Error("project listing render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if category == "" && !src.Degraded() {
		p.pageCache.Set(ctx, cache.ProjectsKey(), rendered)
	}
	writeHTML(w, rendered)
}

// ProjectDetail renders one project by slug. Hidden projects 404 here
// even when the slug is known.
func (p *Public) ProjectDetail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slugParam := chi.URLParam(r, "slug")

	if cached, ok := p.pageCache.Get(ctx, cache.ProjectKey(slugParam)); ok {
		writeHTML(w, cached)
		return
	}

	projects, src, err := p.projects.Load()
	if err != nil {
		slog.Error("project detail load failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var found *models.Project
	for i := range projects {
		if projects[i].Slug == slugParam && !projects[i].Hidden {
			found = &projects[i]
			break
		}
	}
	if found == nil {
		http.NotFound(w, r)
		return
	}

	rendered, err := p.renderer.Public("project", &render.PageData{
		Title: found.Title,
		Data:  map[string]any{"Project": found},
	})
	if err != nil {
		slog.Error("project detail render failed", "slug", slugParam, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if !src.Degraded() {
		p.pageCache.Set(ctx, cache.ProjectKey(slugParam), rendered)
	}
	writeHTML(w, rendered)
}

// ContactPage renders the contact page with the message form.
func (p *Public) ContactPage(w http.ResponseWriter, r *http.Request) {
	p.renderContact(w, r, map[string]any{})
}

// ContactSubmit handles a contact form submission. The message is stored
// in the database and, when an email provider is configured, forwarded by
// email. Submissions have no local fallback: when both the store and the
// email provider fail, the visitor gets a mailto link instead.
func (p *Public) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	msg := &models.ContactMessage{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Body:    r.FormValue("message"),
	}

	if errMsg := validateMessage(msg); errMsg != "" {
		p.renderContact(w, r, map[string]any{
			"Error":       errMsg,
			"FormName":    msg.Name,
			"FormEmail":   msg.Email,
			"FormSubject": msg.Subject,
			"FormMessage": msg.Body,
		})
		return
	}

	stored := true
	if err := p.contact.Submit(msg); err != nil {
		slog.Error("contact message store failed", "error", err)
		stored = false
	}

	sent := false
	if p.sender.Configured() {
		if err := p.sender.Send(r.Context(), msg); err != nil {
			slog.Error("contact email send failed", "error", err)
		} else {
			sent = true
		}
	}

	if !stored && !sent {
		info, _, _ := p.contact.Info()
		p.renderContact(w, r, map[string]any{
			"Error":       "Your message could not be delivered right now.",
			"MailtoLink":  email.MailtoLink(info.Email, msg),
			"FormName":    msg.Name,
			"FormEmail":   msg.Email,
			"FormSubject": msg.Subject,
			"FormMessage": msg.Body,
		})
		return
	}

	p.renderContact(w, r, map[string]any{"Sent": true})
}

// renderContact renders the contact page with the given page data merged
// over the owner's contact details.
func (p *Public) renderContact(w http.ResponseWriter, r *http.Request, data map[string]any) {
	info, _, err := p.contact.Info()
	if err != nil {
		slog.Error("contact info load failed", "error", err)
	}
	data["Info"] = &info
	for _, key := range []string{"FormName", "FormEmail", "FormSubject", "FormMessage"} {
		if _, ok := data[key]; !ok {
			data[key] = ""
		}
	}

	rendered, err := p.renderer.Public("contact", &render.PageData{
		Title:     "Contact",
		CSRFToken: middleware.GetCSRFToken(r),
		Data:      data,
	})
	if err != nil {
		slog.Error("contact render failed", "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, rendered)
}

// featuredProjects resolves the home page's featured slug list against
// the project collection. Slugs pointing at deleted or hidden projects
// are skipped; order follows the featured list.
func featuredProjects(home *models.HomeContent, projects []models.Project) []models.Project {
	bySlug := make(map[string]models.Project, len(projects))
	for _, p := range projects {
		if !p.Hidden {
			bySlug[p.Slug] = p
		}
	}

	var featured []models.Project
	for _, slug := range home.FeaturedProjects {
		if p, ok := bySlug[slug]; ok {
			featured = append(featured, p)
		}
	}
	return featured
}

func writeHTML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}
