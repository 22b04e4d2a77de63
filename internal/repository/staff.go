package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

var (
	ErrStaffEmailExists = dao.ErrStaffEmailExists
	ErrStaffNotFound    = dao.ErrStaffNotFound
)

type StaffDAO interface {
	Insert(ctx context.Context, staff dao.Staff) (dao.Staff, error)
	FindByID(ctx context.Context, id uint) (dao.Staff, error)
	FindByEmail(ctx context.Context, email string) (dao.Staff, error)
}

type StaffRepository struct {
	dao StaffDAO
}

func NewStaffRepository(dao StaffDAO) *StaffRepository {
	return &StaffRepository{
		dao: dao,
	}
}

func (r *StaffRepository) Create(ctx context.Context, staff domain.Staff) (domain.Staff, error) {
	created, err := r.dao.Insert(ctx, dao.Staff{
		Email:    staff.Email,
		Password: staff.Password,
		Name:     staff.Name,
	})
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *StaffRepository) FindByID(ctx context.Context, id uint) (domain.Staff, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StaffRepository) FindByEmail(ctx context.Context, email string) (domain.Staff, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.Staff{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *StaffRepository) daoToDomain(s dao.Staff) domain.Staff {
	return domain.Staff{
		ID:        s.ID,
		Email:     s.Email,
		Password:  s.Password,
		Name:      s.Name,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
