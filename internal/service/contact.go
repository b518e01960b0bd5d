package service

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"folio/internal/fallback"
	"folio/internal/models"
)

// MessageRepo is the database surface for contact form submissions.
type MessageRepo interface {
	List() ([]models.ContactMessage, error)
	Create(m *models.ContactMessage) (*models.ContactMessage, error)
	MarkRead(id uuid.UUID) error
	Delete(id uuid.UUID) error
	UnreadCount() (int, error)
}

// ContactInfoRepo is the database surface for the contact details singleton.
type ContactInfoRepo interface {
	Get() (*models.ContactInfo, error)
	Save(c *models.ContactInfo) error
}

// ContactService owns contact messages and the contact info singleton.
// Contact info degrades to the fallback cache like the other singletons;
// messages do not: a failed message write is a plain error, accepted as
// lossy.
type ContactService struct {
	messages MessageRepo
	info     ContactInfoRepo
	cache    *fallback.Cache
	seed     models.ContactInfo
}

// NewContactService wires a contact service.
func NewContactService(messages MessageRepo, info ContactInfoRepo, cache *fallback.Cache, seed models.ContactInfo) *ContactService {
	return &ContactService{messages: messages, info: info, cache: cache, seed: seed}
}

// Messages returns all stored messages, falling back to the cache on
// database failure.
func (s *ContactService) Messages() ([]models.ContactMessage, Source, error) {
	msgs, err := s.messages.List()
	if err != nil {
		slog.Warn("message load degraded to fallback cache", "error", err)
		cached, cerr := fallback.Load[models.ContactMessage](s.cache, fallback.BucketMessages)
		if cerr != nil {
			return nil, SourceFallback, fmt.Errorf("load messages: remote %v, fallback: %w", err, cerr)
		}
		return cached, SourceFallback, nil
	}

	if err := fallback.Save(s.cache, fallback.BucketMessages, msgs); err != nil {
		slog.Warn("message cache mirror failed", "error", err)
	}
	return msgs, SourceRemote, nil
}

// Submit stores a new contact form submission. There is no local
// fallback on this path.
func (s *ContactService) Submit(m *models.ContactMessage) error {
	created, err := s.messages.Create(m)
	if err != nil {
		return fmt.Errorf("submit message: %w", err)
	}
	*m = *created
	return nil
}

// MarkRead flips the read flag on one message.
func (s *ContactService) MarkRead(id uuid.UUID) error {
	if err := s.messages.MarkRead(id); err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// DeleteMessage removes a message. No local fallback; a database failure
// is surfaced as-is.
func (s *ContactService) DeleteMessage(id uuid.UUID) error {
	if err := s.messages.Delete(id); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// UnreadCount returns the unread message count for the admin badge.
// Best-effort: on database failure it reports zero.
func (s *ContactService) UnreadCount() int {
	count, err := s.messages.UnreadCount()
	if err != nil {
		return 0
	}
	return count
}

// Info returns the contact details, falling back to the cache and then
// the built-in seed.
func (s *ContactService) Info() (models.ContactInfo, Source, error) {
	c, err := s.info.Get()
	if err != nil {
		slog.Warn("contact info load degraded to fallback cache", "error", err)
		cached, ok, cerr := fallback.LoadOne[models.ContactInfo](s.cache, fallback.BucketContactInfo)
		if cerr != nil {
			return s.seed, SourceFallback, fmt.Errorf("load contact info: remote %v, fallback: %w", err, cerr)
		}
		if !ok {
			return s.seed, SourceFallback, nil
		}
		return cached, SourceFallback, nil
	}

	if c == nil {
		return s.seed, SourceRemote, nil
	}

	if dirty, derr := s.cache.Dirty(fallback.BucketContactInfo); derr == nil && !dirty {
		if err := fallback.SaveOne(s.cache, fallback.BucketContactInfo, *c); err != nil {
			slog.Warn("contact info cache mirror failed", "error", err)
		}
	}
	return *c, SourceRemote, nil
}

// SaveInfo writes the contact details, degrading to the cache on
// database failure. A degraded save marks the bucket dirty; the next
// successful remote save resolves it.
func (s *ContactService) SaveInfo(c *models.ContactInfo) (SaveLocation, error) {
	if err := s.info.Save(c); err != nil {
		slog.Warn("contact info save degraded to fallback cache", "error", err)
		if cerr := fallback.SaveOne(s.cache, fallback.BucketContactInfo, *c); cerr != nil {
			return SavedLocal, fmt.Errorf("save contact info: remote %v, fallback: %w", err, cerr)
		}
		if cerr := s.cache.MarkDirty(fallback.BucketContactInfo); cerr != nil {
			return SavedLocal, fmt.Errorf("save contact info: remote %v, fallback: %w", err, cerr)
		}
		return SavedLocal, nil
	}

	if err := s.cache.ClearDirty(fallback.BucketContactInfo); err != nil {
		slog.Warn("contact info cache dirty flag not cleared", "error", err)
	}
	if err := fallback.SaveOne(s.cache, fallback.BucketContactInfo, *c); err != nil {
		slog.Warn("contact info cache mirror failed", "error", err)
	}
	return SavedRemote, nil
}
