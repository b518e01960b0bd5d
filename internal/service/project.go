package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"folio/internal/fallback"
	"folio/internal/models"
)

// ProjectRepo is the database surface the project service needs.
// *store.ProjectStore satisfies it; tests substitute an in-memory fake.
type ProjectRepo interface {
	List() ([]models.Project, error)
	FindByID(id uuid.UUID) (*models.Project, error)
	Create(p *models.Project) (*models.Project, error)
	Update(p *models.Project) error
	Delete(id uuid.UUID) error
	DeleteAll() error
	Count() (int, error)
}

// ProjectService owns the project collection. Reads degrade to the
// fallback cache, writes that fail remotely land in the cache, and an
// empty projects table is repaired once per process with the seed set.
type ProjectService struct {
	repo     ProjectRepo
	cache    *fallback.Cache
	seed     []models.Project
	repaired bool
}

// NewProjectService wires a project service. seed is the collection the
// repair path writes when the remote table turns up empty.
func NewProjectService(repo ProjectRepo, cache *fallback.Cache, seed []models.Project) *ProjectService {
	return &ProjectService{repo: repo, cache: cache, seed: seed}
}

// Load returns the full project collection. On database failure it serves
// the fallback cache; on an empty database it runs the one-time repair
// path before re-reading. Successful remote reads are mirrored into the
// cache so later degraded reads have something to serve.
func (s *ProjectService) Load() ([]models.Project, Source, error) {
	projects, err := s.repo.List()
	if err != nil {
		slog.Warn("project load degraded to fallback cache", "error", err)
		cached, cerr := fallback.Load[models.Project](s.cache, fallback.BucketProjects)
		if cerr != nil {
			return nil, SourceFallback, fmt.Errorf("load projects: remote %v, fallback: %w", err, cerr)
		}
		return cached, SourceFallback, nil
	}

	if len(projects) == 0 && !s.repaired {
		if err := s.Repair(); err != nil {
			return nil, SourceRemote, err
		}
		projects, err = s.repo.List()
		if err != nil {
			return nil, SourceRemote, fmt.Errorf("reload after repair: %w", err)
		}
	}

	s.mirror(projects)
	return projects, SourceRemote, nil
}

// Repair bulk-inserts the seed collection. Called when the projects
// table is found empty on load; runs at most once per process.
func (s *ProjectService) Repair() error {
	s.repaired = true
	for i := range s.seed {
		p := s.seed[i]
		if _, err := s.repo.Create(&p); err != nil {
			return fmt.Errorf("repair seed project %s: %w", p.Slug, err)
		}
	}
	slog.Info("empty project table repaired with seed collection", "count", len(s.seed))
	return nil
}

// Create stores a new project. On database failure the project is
// appended to the cached collection instead and SavedLocal is returned.
func (s *ProjectService) Create(p *models.Project) (SaveLocation, error) {
	created, err := s.repo.Create(p)
	if err != nil {
		slog.Warn("project create degraded to fallback cache", "slug", p.Slug, "error", err)
		return SavedLocal, s.cacheMutation(func(projects []models.Project) []models.Project {
			if p.ID == uuid.Nil {
				p.ID = uuid.New()
			}
			return append(projects, *p)
		})
	}
	*p = *created
	s.reloadMirror()
	return SavedRemote, nil
}

// Update saves changes to an existing project, degrading to the cache on
// database failure.
func (s *ProjectService) Update(p *models.Project) (SaveLocation, error) {
	if err := s.repo.Update(p); err != nil {
		slog.Warn("project update degraded to fallback cache", "id", p.ID, "error", err)
		return SavedLocal, s.cacheMutation(func(projects []models.Project) []models.Project {
			for i := range projects {
				if projects[i].ID == p.ID {
					projects[i] = *p
					return projects
				}
			}
			return append(projects, *p)
		})
	}
	s.reloadMirror()
	return SavedRemote, nil
}

// Delete removes a project. There is no local fallback for deletes; a
// database failure is surfaced as-is.
func (s *ProjectService) Delete(id uuid.UUID) error {
	if err := s.repo.Delete(id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.reloadMirror()
	return nil
}

// ToggleVisibility flips the hidden flag on one project.
func (s *ProjectService) ToggleVisibility(id uuid.UUID) (SaveLocation, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return SavedRemote, fmt.Errorf("toggle visibility: %w", err)
	}
	if p == nil {
		return SavedRemote, fmt.Errorf("toggle visibility: project %s not found", id)
	}
	p.Hidden = !p.Hidden
	return s.Update(p)
}

// Reset discards every stored project and replaces the collection with
// the seed set.
func (s *ProjectService) Reset() error {
	if err := s.repo.DeleteAll(); err != nil {
		return fmt.Errorf("reset projects: %w", err)
	}
	for i := range s.seed {
		p := s.seed[i]
		if _, err := s.repo.Create(&p); err != nil {
			return fmt.Errorf("reset seed project %s: %w", p.Slug, err)
		}
	}
	s.reloadMirror()
	return nil
}

// MigrateFromFallback copies cached projects into the database. Records
// whose ID already exists remotely are skipped, never overwritten, so
// running the migration twice changes nothing. Returns the number of
// records written.
func (s *ProjectService) MigrateFromFallback() (int, error) {
	cached, err := fallback.Load[models.Project](s.cache, fallback.BucketProjects)
	if err != nil {
		return 0, fmt.Errorf("migrate: read fallback cache: %w", err)
	}

	remote, err := s.repo.List()
	if err != nil {
		return 0, fmt.Errorf("migrate: read remote: %w", err)
	}
	existing := make(map[uuid.UUID]bool, len(remote))
	for _, p := range remote {
		existing[p.ID] = true
	}

	migrated := 0
	for i := range cached {
		p := cached[i]
		if existing[p.ID] {
			continue
		}
		if _, err := s.repo.Create(&p); err != nil {
			return migrated, fmt.Errorf("migrate project %s: %w", p.Slug, err)
		}
		migrated++
	}

	// The diff is resolved either way, so mirroring is safe again.
	if err := s.cache.ClearDirty(fallback.BucketProjects); err != nil {
		slog.Warn("project cache dirty flag not cleared", "error", err)
	}
	s.reloadMirror()

	if migrated > 0 {
		slog.Info("migrated cached projects to database", "count", migrated)
	}
	return migrated, nil
}

// PendingLocal reports how many cached projects are absent from the
// database, i.e. how many records a migration run would write. Returns
// 0 when either side cannot be read.
func (s *ProjectService) PendingLocal() int {
	cached, err := fallback.Load[models.Project](s.cache, fallback.BucketProjects)
	if err != nil || len(cached) == 0 {
		return 0
	}
	remote, err := s.repo.List()
	if err != nil {
		return 0
	}
	existing := make(map[uuid.UUID]bool, len(remote))
	for _, p := range remote {
		existing[p.ID] = true
	}
	pending := 0
	for _, p := range cached {
		if !existing[p.ID] {
			pending++
		}
	}
	return pending
}

// cacheMutation applies fn to the cached collection, writes it back, and
// marks the bucket dirty so mirroring cannot wipe the pending records.
func (s *ProjectService) cacheMutation(fn func([]models.Project) []models.Project) error {
	projects, err := fallback.Load[models.Project](s.cache, fallback.BucketProjects)
	if err != nil {
		return fmt.Errorf("fallback read: %w", err)
	}
	if err := fallback.Save(s.cache, fallback.BucketProjects, fn(projects)); err != nil {
		return fmt.Errorf("fallback write: %w", err)
	}
	if err := s.cache.MarkDirty(fallback.BucketProjects); err != nil {
		return fmt.Errorf("fallback write: %w", err)
	}
	return nil
}

// mirror writes a successfully loaded collection into the cache. Skipped
// while the bucket holds unmigrated local writes; best-effort otherwise.
func (s *ProjectService) mirror(projects []models.Project) {
	if dirty, err := s.cache.Dirty(fallback.BucketProjects); err != nil || dirty {
		return
	}
	if err := fallback.Save(s.cache, fallback.BucketProjects, projects); err != nil {
		slog.Warn("project cache mirror failed", "error", err)
	}
}

func (s *ProjectService) reloadMirror() {
	projects, err := s.repo.List()
	if err != nil {
		return
	}
	s.mirror(projects)
}
