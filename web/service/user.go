package service

import (
	"strings"

	"github.com/swecha/intern-portal/config"
	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/storage"
	"github.com/swecha/intern-portal/storage/model"
)

// UserService is the user directory: registration and credential checks over
// the users table. Emails are the unique key; rows are never deleted.
type UserService struct {
	users *storage.Table[model.User]
}

func NewUserService() *UserService {
	return &UserService{
		users: storage.NewTable[model.User](config.GetUsersPath()),
	}
}

// Register appends a new user row. Every field is required and the email
// must not be registered yet; the uniqueness check runs inside the same
// locked mutation that persists the row, so two racing registrations of one
// email cannot both land.
func (s *UserService) Register(user model.User) error {
	if strings.TrimSpace(user.Name) == "" ||
		strings.TrimSpace(user.Email) == "" ||
		user.Password == "" ||
		strings.TrimSpace(user.College) == "" {
		return ErrValidation
	}
	if !model.ValidRole(user.Role) {
		return ErrValidation
	}

	err := s.users.Mutate(func(users []model.User) ([]model.User, error) {
		for i := range users {
			if users[i].Email == user.Email {
				return nil, ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return err
	}
	logger.Infof("registered %s (%s, %s)", user.Email, user.Role, user.College)
	return nil
}

// Authenticate matches email and password exactly. The compare is plaintext
// and case-sensitive for compatibility with existing data files.
func (s *UserService) Authenticate(email string, password string) (*model.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Email == email && users[i].Password == password {
			return &users[i], nil
		}
	}
	return nil, ErrInvalidCredentials
}

// GetUsers returns every registered user in store order.
func (s *UserService) GetUsers() ([]model.User, error) {
	return s.users.Load()
}

// GetUsersByCollege filters users by college; an empty college returns all.
func (s *UserService) GetUsersByCollege(college string) ([]model.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return nil, err
	}
	if college == "" {
		return users, nil
	}
	filtered := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.College == college {
			filtered = append(filtered, u)
		}
	}
	return filtered, nil
}

// GetDevelopersByCollege returns the AI Developers of one college, the Tech
// Lead "Interns" view.
func (s *UserService) GetDevelopersByCollege(college string) ([]model.User, error) {
	users, err := s.users.Load()
	if err != nil {
		return nil, err
	}
	developers := make([]model.User, 0, len(users))
	for _, u := range users {
		if u.Role == model.RoleAIDeveloper && u.College == college {
			developers = append(developers, u)
		}
	}
	return developers, nil
}

// GetColleges returns the distinct colleges in registration order, for the
// admin intern filter.
func (s *UserService) GetColleges() ([]string, error) {
	users, err := s.users.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	colleges := make([]string, 0)
	for _, u := range users {
		if !seen[u.College] {
			seen[u.College] = true
			colleges = append(colleges, u.College)
		}
	}
	return colleges, nil
}
