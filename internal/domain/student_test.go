package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhoneIdentity(t *testing.T) {
	id, err := PhoneIdentity("58", "4121234567")
	require.NoError(t, err)
	assert.EqualValues(t, 584121234567, id)

	_, err = PhoneIdentity("58", "412-123")
	assert.Error(t, err)
}

func TestGradeAndSectionValidation(t *testing.T) {
	assert.True(t, IsValidGrade("1"))
	assert.True(t, IsValidGrade("11"))
	assert.False(t, IsValidGrade("12"))
	assert.False(t, IsValidGrade(""))

	assert.Equal(t, "1er. grado", GradeLabel("1"))
	assert.Equal(t, "5to. año", GradeLabel("11"))
	assert.Equal(t, "99", GradeLabel("99"))

	assert.True(t, IsValidSection("U"))
	assert.True(t, IsValidSection("A"))
	assert.False(t, IsValidSection("C"))
}
