package repository

import (
	"context"
	"fmt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository/dao"
)

var (
	ErrRepresentativeExists   = dao.ErrRepresentativeExists
	ErrRepresentativeNotFound = dao.ErrRepresentativeNotFound
	ErrStudentNotFound        = dao.ErrStudentNotFound
)

type RosterDAO interface {
	InsertRepresentative(ctx context.Context, rep dao.Representative) (dao.Representative, error)
	FindRepresentativeByID(ctx context.Context, id uint64) (dao.Representative, error)
	InsertStudent(ctx context.Context, student dao.Student) (dao.Student, error)
	FindStudentByID(ctx context.Context, id uint) (dao.Student, error)
	FindStudentsByRepresentative(ctx context.Context, representativeID uint64) ([]dao.Student, error)
	DetachStudent(ctx context.Context, studentID uint) error
}

type RosterRepository struct {
	dao RosterDAO
}

func NewRosterRepository(dao RosterDAO) *RosterRepository {
	return &RosterRepository{
		dao: dao,
	}
}

func (r *RosterRepository) CreateRepresentative(ctx context.Context, rep domain.Representative) (domain.Representative, error) {
	created, err := r.dao.InsertRepresentative(ctx, dao.Representative{
		ID:          rep.ID,
		Name:        rep.Name,
		PhoneCode:   rep.PhoneCode,
		PhoneNumber: rep.PhoneNumber,
	})
	if err != nil {
		return domain.Representative{}, fmt.Errorf("r.dao.InsertRepresentative -> %w", err)
	}

	return r.representativeDaoToDomain(created), nil
}

func (r *RosterRepository) FindRepresentativeByID(ctx context.Context, id uint64) (domain.Representative, error) {
	found, err := r.dao.FindRepresentativeByID(ctx, id)
	if err != nil {
		return domain.Representative{}, fmt.Errorf("r.dao.FindRepresentativeByID -> %w", err)
	}

	return r.representativeDaoToDomain(found), nil
}

func (r *RosterRepository) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	created, err := r.dao.InsertStudent(ctx, dao.Student{
		RepresentativeID: student.RepresentativeID,
		Name:             student.Name,
		Grade:            student.Grade,
		Section:          student.Section,
	})
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.InsertStudent -> %w", err)
	}

	return r.studentDaoToDomain(created), nil
}

func (r *RosterRepository) FindStudentByID(ctx context.Context, id uint) (domain.Student, error) {
	found, err := r.dao.FindStudentByID(ctx, id)
	if err != nil {
		return domain.Student{}, fmt.Errorf("r.dao.FindStudentByID -> %w", err)
	}

	return r.studentDaoToDomain(found), nil
}

func (r *RosterRepository) FindStudentsByRepresentative(ctx context.Context, representativeID uint64) ([]domain.Student, error) {
	found, err := r.dao.FindStudentsByRepresentative(ctx, representativeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindStudentsByRepresentative -> %w", err)
	}

	students := make([]domain.Student, len(found))
	for i, s := range found {
		students[i] = r.studentDaoToDomain(s)
	}

	return students, nil
}

func (r *RosterRepository) DetachStudent(ctx context.Context, studentID uint) error {
	if err := r.dao.DetachStudent(ctx, studentID); err != nil {
		return fmt.Errorf("r.dao.DetachStudent -> %w", err)
	}

	return nil
}

func (r *RosterRepository) representativeDaoToDomain(rep dao.Representative) domain.Representative {
	students := make([]domain.Student, len(rep.Students))
	for i, s := range rep.Students {
		students[i] = r.studentDaoToDomain(s)
	}

	return domain.Representative{
		ID:          rep.ID,
		Name:        rep.Name,
		PhoneCode:   rep.PhoneCode,
		PhoneNumber: rep.PhoneNumber,
		Students:    students,
		CreatedAt:   rep.CreatedAt,
		UpdatedAt:   rep.UpdatedAt,
	}
}

func (r *RosterRepository) studentDaoToDomain(s dao.Student) domain.Student {
	return domain.Student{
		ID:               s.ID,
		RepresentativeID: s.RepresentativeID,
		Name:             s.Name,
		Grade:            s.Grade,
		Section:          s.Section,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
