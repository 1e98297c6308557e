package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/swecha/intern-portal/storage/model"
)

func TestLoginBuildsSession(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()
	authService := NewAuthService(userService)

	assert.NoError(t, userService.Register(testUser("asha@example.org")))

	user, err := authService.Login("asha@example.org", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "asha@example.org", user.Email)
	assert.Equal(t, model.RoleAIDeveloper, user.Role)
	assert.Equal(t, "IIIT Hyderabad", user.College)
	assert.NotEmpty(t, user.Token)
	assert.WithinDuration(t, time.Now(), user.LoginTime, time.Minute)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()
	authService := NewAuthService(userService)

	assert.NoError(t, userService.Register(testUser("asha@example.org")))

	_, err := authService.Login("asha@example.org", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckLiveness(t *testing.T) {
	loginTime := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	assert.NoError(t, CheckLiveness(loginTime, loginTime.Add(29*time.Minute+59*time.Second)))
	assert.NoError(t, CheckLiveness(loginTime, loginTime.Add(30*time.Minute)))
	assert.ErrorIs(t, CheckLiveness(loginTime, loginTime.Add(30*time.Minute+time.Second)), ErrSessionExpired)
	assert.ErrorIs(t, CheckLiveness(loginTime, loginTime.Add(2*time.Hour)), ErrSessionExpired)
}
