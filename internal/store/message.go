package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"folio/internal/models"
)

// MessageStore handles contact form submission database operations.
type MessageStore struct {
	db *sql.DB
}

// NewMessageStore creates a new MessageStore with the given database connection.
func NewMessageStore(db *sql.DB) *MessageStore {
	return &MessageStore{db: db}
}

const messageColumns = `id, name, email, subject, body, read, created_at`

func scanMessage(scanner interface{ Scan(...any) error }) (*models.ContactMessage, error) {
	m := &models.ContactMessage{}
	err := scanner.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Body, &m.Read, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// List returns all messages, newest first.
func (s *MessageStore) List() ([]models.ContactMessage, error) {
	rows, err := s.db.Query(`SELECT ` + messageColumns + ` FROM contact_messages ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var items []models.ContactMessage
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

// Create stores a new contact form submission.
func (s *MessageStore) Create(m *models.ContactMessage) (*models.ContactMessage, error) {
	row := s.db.QueryRow(`
		INSERT INTO contact_messages (id, name, email, subject, body)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+messageColumns,
		idOrNew(m.ID), m.Name, m.Email, m.Subject, m.Body)
	created, err := scanMessage(row)
	if err != nil {
		return nil, fmt.Errorf("create message: %w", err)
	}
	return created, nil
}

// MarkRead flips the read flag on a message. Marking an already-read
// message is a no-op.
func (s *MessageStore) MarkRead(id uuid.UUID) error {
	_, err := s.db.Exec(`UPDATE contact_messages SET read = TRUE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark message read: %w", err)
	}
	return nil
}

// Delete removes a message by ID.
func (s *MessageStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}

// UnreadCount returns the number of unread messages, shown as the admin
// inbox badge.
func (s *MessageStore) UnreadCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM contact_messages WHERE NOT read`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count unread messages: %w", err)
	}
	return count, nil
}
