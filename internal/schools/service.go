package schools

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/play2learn/backend/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

func (s *Service) Create(req models.CreateSchoolRequest) (*models.School, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Slug = strings.TrimSpace(strings.ToLower(req.Slug))

	if req.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if !slugPattern.MatchString(req.Slug) {
		return nil, fmt.Errorf("slug must be lowercase letters, digits, and hyphens")
	}
	if req.LicenseTier == "" {
		req.LicenseTier = models.TierTrial
	}
	if !models.ValidTiers[req.LicenseTier] {
		return nil, fmt.Errorf("invalid license tier %q", req.LicenseTier)
	}

	return s.store.Create(req)
}

func (s *Service) Get(id int64) (*models.School, error) {
	return s.store.GetByID(id)
}

func (s *Service) GetBySlug(slug string) (*models.School, error) {
	return s.store.GetBySlug(strings.TrimSpace(strings.ToLower(slug)))
}

func (s *Service) List() ([]models.School, error) {
	out, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.School{}
	}
	return out, nil
}

func (s *Service) Update(id int64, req models.UpdateSchoolRequest) (*models.School, error) {
	if req.LicenseTier != nil && !models.ValidTiers[*req.LicenseTier] {
		return nil, fmt.Errorf("invalid license tier %q", *req.LicenseTier)
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("name cannot be empty")
	}
	return s.store.Update(id, req)
}

// Usage reports seat consumption against the school's license tier.
func (s *Service) Usage(id int64) (*models.SchoolUsage, error) {
	school, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountStudents(id)
	if err != nil {
		return nil, err
	}
	return &models.SchoolUsage{
		School:       *school,
		StudentCount: count,
		SeatLimit:    school.SeatLimit(),
	}, nil
}

// HasSeatFor reports whether the school can accept another student account.
func (s *Service) HasSeatFor(school *models.School) (bool, error) {
	count, err := s.store.CountStudents(school.ID)
	if err != nil {
		return false, err
	}
	return count < school.SeatLimit(), nil
}
