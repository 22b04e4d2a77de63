package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

var (
	ErrRepresentativeNotFound = repository.ErrRepresentativeNotFound
	ErrStudentNotFound        = repository.ErrStudentNotFound
	ErrInvalidPhone           = errors.New("phone code and number must be numeric")
	ErrInvalidGrade           = errors.New("unknown grade")
	ErrInvalidSection         = errors.New("unknown section")
)

type RosterRepository interface {
	CreateRepresentative(ctx context.Context, rep domain.Representative) (domain.Representative, error)
	FindRepresentativeByID(ctx context.Context, id uint64) (domain.Representative, error)
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	FindStudentByID(ctx context.Context, id uint) (domain.Student, error)
	FindStudentsByRepresentative(ctx context.Context, representativeID uint64) ([]domain.Student, error)
	DetachStudent(ctx context.Context, studentID uint) error
}

type RosterService struct {
	repo RosterRepository
}

func NewRosterService(repo RosterRepository) *RosterService {
	return &RosterService{
		repo: repo,
	}
}

// RegisterRepresentative creates a guardian account keyed by phone.
// Registering the same phone twice returns the existing account, so
// registration is idempotent.
func (s *RosterService) RegisterRepresentative(ctx context.Context, phoneCode, phoneNumber, name string) (domain.Representative, error) {
	id, err := domain.PhoneIdentity(phoneCode, phoneNumber)
	if err != nil {
		return domain.Representative{}, ErrInvalidPhone
	}

	created, err := s.repo.CreateRepresentative(ctx, domain.Representative{
		ID:          id,
		Name:        name,
		PhoneCode:   phoneCode,
		PhoneNumber: phoneNumber,
	})
	if err != nil {
		if errors.Is(err, repository.ErrRepresentativeExists) {
			existing, findErr := s.repo.FindRepresentativeByID(ctx, id)
			if findErr != nil {
				return domain.Representative{}, fmt.Errorf("s.repo.FindRepresentativeByID -> %w", findErr)
			}
			return existing, nil
		}

		return domain.Representative{}, fmt.Errorf("s.repo.CreateRepresentative -> %w", err)
	}

	return created, nil
}

func (s *RosterService) GetRepresentative(ctx context.Context, id uint64) (domain.Representative, error) {
	rep, err := s.repo.FindRepresentativeByID(ctx, id)
	if err != nil {
		return domain.Representative{}, fmt.Errorf("s.repo.FindRepresentativeByID -> %w", err)
	}

	return rep, nil
}

func (s *RosterService) CreateStudent(ctx context.Context, representativeID uint64, name, grade, section string) (domain.Student, error) {
	if !domain.IsValidGrade(grade) {
		return domain.Student{}, ErrInvalidGrade
	}
	if !domain.IsValidSection(section) {
		return domain.Student{}, ErrInvalidSection
	}

	if _, err := s.repo.FindRepresentativeByID(ctx, representativeID); err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.FindRepresentativeByID -> %w", err)
	}

	created, err := s.repo.CreateStudent(ctx, domain.Student{
		RepresentativeID: &representativeID,
		Name:             name,
		Grade:            grade,
		Section:          section,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("s.repo.CreateStudent -> %w", err)
	}

	return created, nil
}

func (s *RosterService) ListStudents(ctx context.Context, representativeID uint64) ([]domain.Student, error) {
	students, err := s.repo.FindStudentsByRepresentative(ctx, representativeID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindStudentsByRepresentative -> %w", err)
	}

	return students, nil
}

// DetachStudent unlinks a student from its representative. Lines the
// student holds on open orders are removed (with stock credited);
// lines on closed orders are kept for reporting.
func (s *RosterService) DetachStudent(ctx context.Context, studentID uint) error {
	if err := s.repo.DetachStudent(ctx, studentID); err != nil {
		return fmt.Errorf("s.repo.DetachStudent -> %w", err)
	}

	return nil
}
