package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/web/session"
)

// SessionMaxAge is the idle timeout after which a session must be discarded
// and the actor forced to re-authenticate.
const SessionMaxAge = 30 * time.Minute

// AuthService turns credentials into sessions.
type AuthService struct {
	userService *UserService
}

func NewAuthService(userService *UserService) *AuthService {
	return &AuthService{userService: userService}
}

// Login delegates the credential check to the user directory and builds the
// session object for the actor.
func (s *AuthService) Login(email string, password string) (*session.User, error) {
	user, err := s.userService.Authenticate(email, password)
	if err != nil {
		return nil, err
	}
	sessionUser := &session.User{
		Email:     user.Email,
		Role:      user.Role,
		Name:      user.Name,
		College:   user.College,
		LoginTime: time.Now(),
		Token:     uuid.NewString(),
	}
	logger.Infof("%s logged in as %s [%s]", user.Email, user.Role, sessionUser.Token)
	return sessionUser, nil
}

// CheckLiveness fails with ErrSessionExpired once more than SessionMaxAge
// has passed since login. Exactly SessionMaxAge is still live.
func CheckLiveness(loginTime time.Time, now time.Time) error {
	if now.Sub(loginTime) > SessionMaxAge {
		return ErrSessionExpired
	}
	return nil
}
