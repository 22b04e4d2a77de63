package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/cantinazo/api/internal/domain"
	"github.com/cantinazo/api/internal/repository"
)

type fakeStaffRepo struct {
	byEmail map[string]domain.Staff
}

func (f *fakeStaffRepo) Create(_ context.Context, staff domain.Staff) (domain.Staff, error) {
	if _, ok := f.byEmail[staff.Email]; ok {
		return domain.Staff{}, repository.ErrStaffEmailExists
	}
	staff.ID = uint(len(f.byEmail) + 1)
	f.byEmail[staff.Email] = staff

	return staff, nil
}

func (f *fakeStaffRepo) FindByID(_ context.Context, id uint) (domain.Staff, error) {
	for _, staff := range f.byEmail {
		if staff.ID == id {
			return staff, nil
		}
	}

	return domain.Staff{}, repository.ErrStaffNotFound
}

func (f *fakeStaffRepo) FindByEmail(_ context.Context, email string) (domain.Staff, error) {
	staff, ok := f.byEmail[email]
	if !ok {
		return domain.Staff{}, repository.ErrStaffNotFound
	}

	return staff, nil
}

func TestStaffLogin(t *testing.T) {
	repo := &fakeStaffRepo{byEmail: map[string]domain.Staff{}}
	svc := NewStaffService(repo)
	ctx := context.Background()

	created, err := svc.CreateAccount(ctx, domain.Staff{
		Email:    "cantina@colegio.edu",
		Password: "s3cret",
		Name:     "Cantina",
	})
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", repo.byEmail[created.Email].Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.byEmail[created.Email].Password), []byte("s3cret")))

	staff, err := svc.Login(ctx, "cantina@colegio.edu", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, staff.ID)

	_, err = svc.Login(ctx, "cantina@colegio.edu", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "nobody@colegio.edu", "s3cret")
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
