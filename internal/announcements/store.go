package announcements

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/play2learn/backend/internal/models"
)

var ErrNotFound = errors.New("announcement not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(schoolID, authorID int64, req models.CreateAnnouncementRequest) (*models.Announcement, error) {
	var a models.Announcement
	err := s.db.QueryRow(`
		INSERT INTO announcements (school_id, author_id, title, body, pinned)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, school_id, author_id, title, body, pinned, created_at, updated_at
	`, schoolID, authorID, req.Title, req.Body, req.Pinned).
		Scan(&a.ID, &a.SchoolID, &a.AuthorID, &a.Title, &a.Body, &a.Pinned, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &a, nil
}

// ListForSchool returns the school's announcements, pinned first, newest first.
func (s *Store) ListForSchool(schoolID int64) ([]models.Announcement, error) {
	rows, err := s.db.Query(`
		SELECT id, school_id, author_id, title, body, pinned, created_at, updated_at
		FROM announcements
		WHERE school_id = $1
		ORDER BY pinned DESC, created_at DESC
	`, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	defer rows.Close()

	var out []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.SchoolID, &a.AuthorID, &a.Title, &a.Body, &a.Pinned, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan announcement: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Update applies a partial edit, scoped to the school so one school's staff
// can't edit another's posts.
func (s *Store) Update(schoolID, id int64, req models.UpdateAnnouncementRequest) (*models.Announcement, error) {
	var a models.Announcement
	err := s.db.QueryRow(`
		UPDATE announcements SET
			title      = COALESCE($1, title),
			body       = COALESCE($2, body),
			pinned     = COALESCE($3, pinned),
			updated_at = NOW()
		WHERE id = $4 AND school_id = $5
		RETURNING id, school_id, author_id, title, body, pinned, created_at, updated_at
	`, req.Title, req.Body, req.Pinned, id, schoolID).
		Scan(&a.ID, &a.SchoolID, &a.AuthorID, &a.Title, &a.Body, &a.Pinned, &a.CreatedAt, &a.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return &a, nil
}

func (s *Store) Delete(schoolID, id int64) error {
	result, err := s.db.Exec(`DELETE FROM announcements WHERE id = $1 AND school_id = $2`, id, schoolID)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
