package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"folio/internal/models"
	"folio/internal/render"
	"folio/internal/service"
)

// Block editor endpoints. Each one loads the project, applies one of the
// pure list operations from the models package, saves, and re-renders the
// edit form. The operations are index-based and ignore out-of-range
// indexes, so a stale form can never corrupt the list.

// BlockAppend adds a fresh text block at the end of the project body.
func (a *Admin) BlockAppend(w http.ResponseWriter, r *http.Request) {
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.AppendBlock(p.Content)
		// Appending the first block supersedes any preserved raw payload.
		p.RawContent = ""
	})
}

// BlockRemove deletes one block.
func (a *Admin) BlockRemove(w http.ResponseWriter, r *http.Request) {
	i, ok := blockIndex(w, r)
	if !ok {
		return
	}
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.RemoveBlock(p.Content, i)
	})
}

// BlockRetype changes a block's type, clearing fields the new type
// doesn't carry.
func (a *Admin) BlockRetype(w http.ResponseWriter, r *http.Request) {
	i, ok := blockIndex(w, r)
	if !ok {
		return
	}
	t := models.BlockType(r.FormValue("type"))
	if !models.ValidBlockType(t) {
		http.Error(w, "Invalid block type", http.StatusBadRequest)
		return
	}
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.Retype(p.Content, i, t)
	})
}

// BlockSetField updates a single field of one block.
func (a *Admin) BlockSetField(w http.ResponseWriter, r *http.Request) {
	i, ok := blockIndex(w, r)
	if !ok {
		return
	}
	field := models.BlockField(r.FormValue("field"))
	value := r.FormValue("value")
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.SetField(p.Content, i, field, value)
	})
}

// BlockSwap exchanges a block with its neighbor above or below.
func (a *Admin) BlockSwap(w http.ResponseWriter, r *http.Request) {
	i, ok := blockIndex(w, r)
	if !ok {
		return
	}
	direction, err := strconv.Atoi(r.FormValue("direction"))
	if err != nil || (direction != -1 && direction != 1) {
		http.Error(w, "Invalid direction", http.StatusBadRequest)
		return
	}
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.SwapBlock(p.Content, i, direction)
	})
}

// BlockMove moves a block to an arbitrary position.
func (a *Admin) BlockMove(w http.ResponseWriter, r *http.Request) {
	i, ok := blockIndex(w, r)
	if !ok {
		return
	}
	to, err := strconv.Atoi(r.FormValue("to"))
	if err != nil {
		http.Error(w, "Invalid position", http.StatusBadRequest)
		return
	}
	a.blockOp(w, r, func(p *models.Project) {
		p.Content = models.MoveBlock(p.Content, i, to)
	})
}

// blockOp runs one block mutation against the project named in the URL,
// persists it, and re-renders the edit form.
func (a *Admin) blockOp(w http.ResponseWriter, r *http.Request, mutate func(*models.Project)) {
	p, ok := a.findProject(w, r)
	if !ok {
		return
	}

	mutate(p)

	loc, err := a.projects.Update(p)
	if err != nil {
		slog.Error("block edit save failed", "id", p.ID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if loc == service.SavedRemote {
		a.pageCache.InvalidateProjects(r.Context(), p.Slug)
	}

	a.renderer.Page(w, r, "project_form", &render.PageData{
		Title:   "Edit Project",
		Section: "projects",
		Data: map[string]any{
			"Project":    p,
			"IsNew":      false,
			"Categories": models.Categories,
			"Degraded":   loc.Degraded(),
		},
	})
}

// blockIndex parses the {index} URL parameter.
func blockIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	i, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || i < 0 {
		http.Error(w, "Invalid block index", http.StatusBadRequest)
		return 0, false
	}
	return i, true
}
