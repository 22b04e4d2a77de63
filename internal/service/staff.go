package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

var (
	ErrStaffEmailExists = repository.ErrStaffEmailExists
	ErrStaffNotFound    = repository.ErrStaffNotFound
	ErrWrongPassword    = errors.New("wrong password")
)

type StaffRepository interface {
	Create(ctx context.Context, staff domain.Staff) (domain.Staff, error)
	FindByID(ctx context.Context, id uint) (domain.Staff, error)
	FindByEmail(ctx context.Context, email string) (domain.Staff, error)
}

type StaffService struct {
	repo StaffRepository
}

func NewStaffService(repo StaffRepository) *StaffService {
	return &StaffService{
		repo: repo,
	}
}

// CreateAccount hashes the password and stores a staff account. There
// is no public signup endpoint; this is used by seeding.
func (s *StaffService) CreateAccount(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(staff.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Staff{}, err
	}
	staff.Password = string(hash)

	created, err := s.repo.Create(ctx, staff)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *StaffService) Login(ctx context.Context, email, password string) (domain.Staff, error) {
	staff, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrStaffNotFound) {
			return domain.Staff{}, ErrStaffNotFound
		}

		return domain.Staff{}, fmt.Errorf("s.repo.FindByEmail -> %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)); err != nil {
		return domain.Staff{}, ErrWrongPassword
	}

	return staff, nil
}

func (s *StaffService) GetStaff(ctx context.Context, id uint) (domain.Staff, error) {
	staff, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return staff, nil
}
