package engine

import (
	"fmt"
	"strings"

	"github.com/First-Work/pk-pos-final/internal/domain"
)

// RegisterUser adds a user to the directory. User IDs are unique.
func (e *Engine) RegisterUser(user domain.User) error {
	user.UserID = strings.TrimSpace(user.UserID)
	user.FirstName = strings.TrimSpace(user.FirstName)
	user.LastName = strings.TrimSpace(user.LastName)
	if user.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrValidation)
	}
	if user.Password == "" {
		return fmt.Errorf("%w: password is required", ErrValidation)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.users {
		if existing.UserID == user.UserID {
			return fmt.Errorf("%w: user id %s is taken", ErrInvalidOperation, user.UserID)
		}
	}
	e.users = append(e.users, user)
	return nil
}

// Login returns the user matching the given credentials.
func (e *Engine) Login(userID, password string) (domain.User, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, user := range e.users {
		if user.UserID == strings.TrimSpace(userID) && user.Password == password {
			return user, nil
		}
	}
	return domain.User{}, ErrNotFound
}

func (e *Engine) Users() []domain.User {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.User(nil), e.users...)
}
