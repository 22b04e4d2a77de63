package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrRepresentativeExists   = errors.New("representative already exists")
	ErrRepresentativeNotFound = errors.New("representative not found")
	ErrStudentNotFound        = errors.New("student not found")
)

// Representative's primary key is assigned by the caller: the numeric
// concatenation of phone code and phone number. No auto increment.
type Representative struct {
	ID uint64 `gorm:"primaryKey;autoIncrement:false"`

	Name        string `gorm:"not null"`
	PhoneCode   string `gorm:"not null"`
	PhoneNumber string `gorm:"not null"`

	Students []Student `gorm:"foreignKey:RepresentativeID"`
	Orders   []Order   `gorm:"foreignKey:RepresentativeID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Student struct {
	ID uint `gorm:"primaryKey"`

	// Nullable so a student can be detached without losing the lines
	// it holds on already-closed orders.
	RepresentativeID *uint64 `gorm:"index"`

	Name    string `gorm:"not null"`
	Grade   string `gorm:"not null"`
	Section string `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RosterDAO struct {
	db *gorm.DB
}

func NewRosterDAO(db *gorm.DB) *RosterDAO {
	return &RosterDAO{
		db: db,
	}
}

func (d *RosterDAO) InsertRepresentative(ctx context.Context, rep Representative) (Representative, error) {
	result := d.db.WithContext(ctx).Create(&rep)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Representative{}, ErrRepresentativeExists
		}

		return Representative{}, result.Error
	}

	return rep, nil
}

func (d *RosterDAO) FindRepresentativeByID(ctx context.Context, id uint64) (Representative, error) {
	var rep Representative

	result := d.db.WithContext(ctx).Preload("Students").First(&rep, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Representative{}, ErrRepresentativeNotFound
		}

		return Representative{}, result.Error
	}

	return rep, nil
}

func (d *RosterDAO) InsertStudent(ctx context.Context, student Student) (Student, error) {
	result := d.db.WithContext(ctx).Create(&student)
	if result.Error != nil {
		return Student{}, result.Error
	}

	return student, nil
}

func (d *RosterDAO) FindStudentByID(ctx context.Context, id uint) (Student, error) {
	var student Student

	result := d.db.WithContext(ctx).First(&student, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Student{}, ErrStudentNotFound
		}

		return Student{}, result.Error
	}

	return student, nil
}

func (d *RosterDAO) FindStudentsByRepresentative(ctx context.Context, representativeID uint64) ([]Student, error) {
	var students []Student

	result := d.db.WithContext(ctx).
		Where("representative_id = ?", representativeID).
		Order("id").
		Find(&students)
	if result.Error != nil {
		return nil, result.Error
	}

	return students, nil
}

// DetachStudent nulls the representative link and removes the student's
// lines on still-open orders, crediting stock for each removed line.
// Lines on closed orders stay untouched. All in one transaction so the
// stock ledger cannot desync.
func (d *RosterDAO) DetachStudent(ctx context.Context, studentID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var student Student
		if err := tx.First(&student, studentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStudentNotFound
			}
			return err
		}

		var openLines []OrderLine
		err := tx.
			Joins("JOIN orders ON orders.id = order_lines.order_id").
			Where("order_lines.student_id = ? AND orders.closed = ?", studentID, false).
			Find(&openLines).Error
		if err != nil {
			return err
		}

		for _, line := range openLines {
			if err := creditStock(tx, line.ProductID); err != nil {
				return err
			}
			if err := tx.Delete(&OrderLine{}, line.ID).Error; err != nil {
				return err
			}
		}

		return tx.Model(&student).Update("representative_id", nil).Error
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
