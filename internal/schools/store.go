package schools

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/play2learn/backend/internal/models"
)

var ErrNotFound = errors.New("school not found")
var ErrSlugTaken = errors.New("slug already in use")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const schoolColumns = `id, name, slug, license_tier, is_active, created_at, updated_at`

func scanSchool(row *sql.Row) (*models.School, error) {
	var school models.School
	err := row.Scan(&school.ID, &school.Name, &school.Slug, &school.LicenseTier,
		&school.IsActive, &school.CreatedAt, &school.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan school: %w", err)
	}
	return &school, nil
}

func (s *Store) Create(req models.CreateSchoolRequest) (*models.School, error) {
	row := s.db.QueryRow(`
		INSERT INTO schools (name, slug, license_tier)
		VALUES ($1, $2, $3)
		RETURNING `+schoolColumns,
		req.Name, req.Slug, req.LicenseTier)

	school, err := scanSchool(row)
	if err != nil && strings.Contains(err.Error(), "schools_slug_key") {
		return nil, ErrSlugTaken
	}
	return school, err
}

func (s *Store) GetByID(id int64) (*models.School, error) {
	return scanSchool(s.db.QueryRow(`SELECT `+schoolColumns+` FROM schools WHERE id = $1`, id))
}

func (s *Store) GetBySlug(slug string) (*models.School, error) {
	return scanSchool(s.db.QueryRow(`SELECT `+schoolColumns+` FROM schools WHERE slug = $1`, slug))
}

func (s *Store) List() ([]models.School, error) {
	rows, err := s.db.Query(`SELECT ` + schoolColumns + ` FROM schools ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	defer rows.Close()

	var out []models.School
	for rows.Next() {
		var school models.School
		if err := rows.Scan(&school.ID, &school.Name, &school.Slug, &school.LicenseTier,
			&school.IsActive, &school.CreatedAt, &school.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan school: %w", err)
		}
		out = append(out, school)
	}
	return out, rows.Err()
}

func (s *Store) Update(id int64, req models.UpdateSchoolRequest) (*models.School, error) {
	row := s.db.QueryRow(`
		UPDATE schools SET
			name         = COALESCE($1, name),
			license_tier = COALESCE($2, license_tier),
			is_active    = COALESCE($3, is_active),
			updated_at   = NOW()
		WHERE id = $4
		RETURNING `+schoolColumns,
		req.Name, req.LicenseTier, req.IsActive, id)
	return scanSchool(row)
}

// CountStudents returns the number of active student seats in use.
func (s *Store) CountStudents(schoolID int64) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM users WHERE school_id = $1 AND role = 'student'
	`, schoolID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count students: %w", err)
	}
	return count, nil
}
