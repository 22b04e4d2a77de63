package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cantinazo/api/internal/domain"
)

func newRosterServiceForTest() (*RosterService, *fakeRosterRepo) {
	repo := &fakeRosterRepo{reps: map[uint64]domain.Representative{}}

	return NewRosterService(repo), repo
}

func TestRegisterRepresentative_IDFromPhone(t *testing.T) {
	svc, _ := newRosterServiceForTest()

	rep, err := svc.RegisterRepresentative(context.Background(), "58", "4121234567", "María Pérez")
	require.NoError(t, err)
	assert.EqualValues(t, 584121234567, rep.ID)
	assert.Equal(t, "+584121234567", rep.PhoneE164())
}

func TestRegisterRepresentative_Idempotent(t *testing.T) {
	svc, _ := newRosterServiceForTest()
	ctx := context.Background()

	first, err := svc.RegisterRepresentative(ctx, "58", "4121234567", "María Pérez")
	require.NoError(t, err)

	// Same phone again, even with another name, returns the original.
	second, err := svc.RegisterRepresentative(ctx, "58", "4121234567", "M. Pérez de G.")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "María Pérez", second.Name)
}

func TestRegisterRepresentative_InvalidPhone(t *testing.T) {
	svc, _ := newRosterServiceForTest()
	ctx := context.Background()

	_, err := svc.RegisterRepresentative(ctx, "+58", "4121234567", "María Pérez")
	assert.ErrorIs(t, err, ErrInvalidPhone)

	_, err = svc.RegisterRepresentative(ctx, "58", "412-123-4567", "María Pérez")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}

func TestCreateStudent_Validation(t *testing.T) {
	svc, _ := newRosterServiceForTest()
	ctx := context.Background()

	rep, err := svc.RegisterRepresentative(ctx, "58", "4121234567", "María Pérez")
	require.NoError(t, err)

	_, err = svc.CreateStudent(ctx, rep.ID, "Pedro", "13", "A")
	assert.ErrorIs(t, err, ErrInvalidGrade)

	_, err = svc.CreateStudent(ctx, rep.ID, "Pedro", "3", "Z")
	assert.ErrorIs(t, err, ErrInvalidSection)

	_, err = svc.CreateStudent(ctx, 999, "Pedro", "3", "A")
	assert.ErrorIs(t, err, ErrRepresentativeNotFound)

	student, err := svc.CreateStudent(ctx, rep.ID, "Pedro", "3", "A")
	require.NoError(t, err)
	require.NotNil(t, student.RepresentativeID)
	assert.Equal(t, rep.ID, *student.RepresentativeID)
}
