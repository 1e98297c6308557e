package service

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/swecha/intern-portal/storage/model"
)

func testUser(email string) model.User {
	return model.User{
		Name:     "Asha",
		Email:    email,
		Password: "secret",
		Role:     model.RoleAIDeveloper,
		College:  "IIIT Hyderabad",
	}
}

func TestRegisterThenAuthenticate(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()

	assert.NoError(t, userService.Register(testUser("asha@example.org")))

	user, err := userService.Authenticate("asha@example.org", "secret")
	assert.NoError(t, err)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, model.RoleAIDeveloper, user.Role)
}

func TestRegisterDuplicateEmailLeavesTableUnchanged(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()

	assert.NoError(t, userService.Register(testUser("asha@example.org")))

	duplicate := testUser("asha@example.org")
	duplicate.Name = "Someone Else"
	err := userService.Register(duplicate)
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	users, err := userService.GetUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, "Asha", users[0].Name)
}

func TestRegisterConcurrentDuplicateEmailLandsOnce(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()

	const attempts = 20
	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := userService.Register(testUser("asha@example.org")); err == nil {
				wins.Add(1)
			} else {
				assert.ErrorIs(t, err, ErrDuplicateEmail)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	users, err := userService.GetUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()

	missingName := testUser("a@example.org")
	missingName.Name = " "
	assert.ErrorIs(t, userService.Register(missingName), ErrValidation)

	badRole := testUser("b@example.org")
	badRole.Role = "Manager"
	assert.ErrorIs(t, userService.Register(badRole), ErrValidation)

	users, err := userService.GetUsers()
	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestAuthenticateIsExactAndCaseSensitive(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()
	assert.NoError(t, userService.Register(testUser("asha@example.org")))

	_, err := userService.Authenticate("asha@example.org", "Secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = userService.Authenticate("Asha@example.org", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = userService.Authenticate("nobody@example.org", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCollegeScopedQueries(t *testing.T) {
	setupDataFolder(t)
	userService := NewUserService()

	dev := testUser("dev@example.org")
	lead := model.User{Name: "Ravi", Email: "ravi@example.org", Password: "pw", Role: model.RoleTechLead, College: "IIIT Hyderabad"}
	other := model.User{Name: "Mina", Email: "mina@example.org", Password: "pw", Role: model.RoleAIDeveloper, College: "NIT Warangal"}
	assert.NoError(t, userService.Register(dev))
	assert.NoError(t, userService.Register(lead))
	assert.NoError(t, userService.Register(other))

	developers, err := userService.GetDevelopersByCollege("IIIT Hyderabad")
	assert.NoError(t, err)
	assert.Len(t, developers, 1)
	assert.Equal(t, "dev@example.org", developers[0].Email)

	byCollege, err := userService.GetUsersByCollege("NIT Warangal")
	assert.NoError(t, err)
	assert.Len(t, byCollege, 1)

	colleges, err := userService.GetColleges()
	assert.NoError(t, err)
	assert.Equal(t, []string{"IIIT Hyderabad", "NIT Warangal"}, colleges)
}
