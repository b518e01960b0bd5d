package service

import (
	"fmt"
	"log/slog"

	"folio/internal/fallback"
	"folio/internal/models"
)

// HomeRepo is the database surface the home content service needs.
type HomeRepo interface {
	Get() (*models.HomeContent, error)
	Save(h *models.HomeContent) error
}

// HomeService owns the singleton home page content.
type HomeService struct {
	repo  HomeRepo
	cache *fallback.Cache
	seed  models.HomeContent
}

// NewHomeService wires a home content service. seed is served when
// neither the database nor the cache has a record yet.
func NewHomeService(repo HomeRepo, cache *fallback.Cache, seed models.HomeContent) *HomeService {
	return &HomeService{repo: repo, cache: cache, seed: seed}
}

// Load returns the home content, falling back to the cache and then to
// the built-in seed. The seed path still reports SourceRemote: the
// database answered, it just had nothing stored yet.
func (s *HomeService) Load() (models.HomeContent, Source, error) {
	h, err := s.repo.Get()
	if err != nil {
		slog.Warn("home content load degraded to fallback cache", "error", err)
		cached, ok, cerr := fallback.LoadOne[models.HomeContent](s.cache, fallback.BucketHome)
		if cerr != nil {
			return s.seed, SourceFallback, fmt.Errorf("load home content: remote %v, fallback: %w", err, cerr)
		}
		if !ok {
			return s.seed, SourceFallback, nil
		}
		return cached, SourceFallback, nil
	}

	if h == nil {
		return s.seed, SourceRemote, nil
	}

	if dirty, derr := s.cache.Dirty(fallback.BucketHome); derr == nil && !dirty {
		if err := fallback.SaveOne(s.cache, fallback.BucketHome, *h); err != nil {
			slog.Warn("home content cache mirror failed", "error", err)
		}
	}
	return *h, SourceRemote, nil
}

// Save writes the home content, degrading to the cache on database
// failure. A degraded save marks the bucket dirty until it is migrated;
// a successful remote save supersedes any pending local edit.
func (s *HomeService) Save(h *models.HomeContent) (SaveLocation, error) {
	if err := s.repo.Save(h); err != nil {
		slog.Warn("home content save degraded to fallback cache", "error", err)
		if cerr := fallback.SaveOne(s.cache, fallback.BucketHome, *h); cerr != nil {
			return SavedLocal, fmt.Errorf("save home content: remote %v, fallback: %w", err, cerr)
		}
		if cerr := s.cache.MarkDirty(fallback.BucketHome); cerr != nil {
			return SavedLocal, fmt.Errorf("save home content: remote %v, fallback: %w", err, cerr)
		}
		return SavedLocal, nil
	}

	if err := s.cache.ClearDirty(fallback.BucketHome); err != nil {
		slog.Warn("home content cache dirty flag not cleared", "error", err)
	}
	if err := fallback.SaveOne(s.cache, fallback.BucketHome, *h); err != nil {
		slog.Warn("home content cache mirror failed", "error", err)
	}
	return SavedRemote, nil
}

// MigrateFromFallback writes the cached home content to the database if
// the database has none. An existing remote record is never overwritten.
func (s *HomeService) MigrateFromFallback() (bool, error) {
	existing, err := s.repo.Get()
	if err != nil {
		return false, fmt.Errorf("migrate home content: read remote: %w", err)
	}
	if existing != nil {
		// Remote record wins; the pending local edit is resolved.
		s.clearDirty()
		return false, nil
	}

	cached, ok, err := fallback.LoadOne[models.HomeContent](s.cache, fallback.BucketHome)
	if err != nil {
		return false, fmt.Errorf("migrate home content: read fallback: %w", err)
	}
	if !ok {
		s.clearDirty()
		return false, nil
	}

	if err := s.repo.Save(&cached); err != nil {
		return false, fmt.Errorf("migrate home content: %w", err)
	}
	s.clearDirty()
	slog.Info("migrated cached home content to database")
	return true, nil
}

func (s *HomeService) clearDirty() {
	if err := s.cache.ClearDirty(fallback.BucketHome); err != nil {
		slog.Warn("home content cache dirty flag not cleared", "error", err)
	}
}
