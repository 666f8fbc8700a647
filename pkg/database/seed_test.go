package database

import (
	"bootcamp_lms_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestDefaultAdminDefaults(t *testing.T) {
	t.Setenv("LMS_ADMIN_EMAIL", "")
	t.Setenv("LMS_ADMIN_PASSWORD", "")

	admin, err := defaultAdmin()
	require.NoError(t, err)

	assert.Equal(t, model.Admin, admin.Role)
	assert.Equal(t, defaultAdminEmail, admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(admin.Password), []byte(defaultAdminPassword)))
	// only the hash may be stored
	assert.NotEqual(t, defaultAdminPassword, admin.Password)
}

func TestDefaultAdminEnvOverrides(t *testing.T) {
	t.Setenv("LMS_ADMIN_EMAIL", "ops@example.com")
	t.Setenv("LMS_ADMIN_PASSWORD", "s3cret-enough")

	admin, err := defaultAdmin()
	require.NoError(t, err)

	assert.Equal(t, "ops@example.com", admin.Email)
	assert.NoError(t, bcrypt.CompareHashAndPassword(
		[]byte(admin.Password), []byte("s3cret-enough")))
}

func TestStarterCourseShape(t *testing.T) {
	course := starterCourse()

	assert.False(t, course.Published)
	require.Len(t, course.Modules, 1)
	assert.Equal(t, 1, course.Modules[0].Order)

	require.Len(t, course.Modules[0].Lessons, 1)
	lesson := course.Modules[0].Lessons[0]
	assert.True(t, lesson.HasPayloadFor(lesson.Type))
}
