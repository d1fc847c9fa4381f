package testimonials

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/play2learn/backend/internal/models"
)

var ErrNotFound = errors.New("testimonial not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const testimonialColumns = `id, school_id, author_id, content, rating, sentiment_score, sentiment_label, status, created_at`

func (s *Store) Create(authorID int64, schoolID *int64, content string, rating int, score float64, label string) (*models.Testimonial, error) {
	var t models.Testimonial
	err := s.db.QueryRow(`
		INSERT INTO testimonials (school_id, author_id, content, rating, sentiment_score, sentiment_label, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'pending')
		RETURNING `+testimonialColumns,
		schoolID, authorID, content, rating, score, label).
		Scan(&t.ID, &t.SchoolID, &t.AuthorID, &t.Content, &t.Rating,
			&t.SentimentScore, &t.SentimentLabel, &t.Status, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create testimonial: %w", err)
	}
	return &t, nil
}

// ListByStatus returns testimonials in a moderation state, newest first.
// The author's name is shortened to first name plus last initial since
// approved entries end up on the public feed.
func (s *Store) ListByStatus(status models.TestimonialStatus, limit int) ([]models.Testimonial, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.school_id, t.author_id, u.name, t.content, t.rating,
		       t.sentiment_score, t.sentiment_label, t.status, t.created_at
		FROM testimonials t
		JOIN users u ON u.id = t.author_id
		WHERE t.status = $1
		ORDER BY t.created_at DESC
		LIMIT $2
	`, status, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list testimonials: %w", err)
	}
	defer rows.Close()

	var out []models.Testimonial
	for rows.Next() {
		var t models.Testimonial
		var authorName string
		if err := rows.Scan(&t.ID, &t.SchoolID, &t.AuthorID, &authorName, &t.Content, &t.Rating,
			&t.SentimentScore, &t.SentimentLabel, &t.Status, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan testimonial: %w", err)
		}
		t.AuthorName = models.User{Name: authorName}.DisplayName()
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *Store) SetStatus(id int64, status models.TestimonialStatus) (*models.Testimonial, error) {
	var t models.Testimonial
	err := s.db.QueryRow(`
		UPDATE testimonials SET status = $1 WHERE id = $2
		RETURNING `+testimonialColumns,
		status, id).
		Scan(&t.ID, &t.SchoolID, &t.AuthorID, &t.Content, &t.Rating,
			&t.SentimentScore, &t.SentimentLabel, &t.Status, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to moderate testimonial: %w", err)
	}
	return &t, nil
}
