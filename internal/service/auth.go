package service

import (
	"latinvocab/internal/repository"
)

// AuthService gates access with a single shared PIN
type AuthService struct {
	authRepo repository.AuthRepository
	pin      string
}

// NewAuthService creates a new auth service. An empty pin disables the gate.
func NewAuthService(authRepo repository.AuthRepository, pin string) *AuthService {
	return &AuthService{
		authRepo: authRepo,
		pin:      pin,
	}
}

// Required reports whether a PIN is configured
func (s *AuthService) Required() bool {
	return s.pin != ""
}

// CheckPassword verifies if provided PIN matches
func (s *AuthService) CheckPassword(candidate string) bool {
	return !s.Required() || candidate == s.pin
}

// CheckSecret verifies the PIN and remembers the user on success.
// A wrong PIN leaves the stored state untouched.
func (s *AuthService) CheckSecret(userID int64, candidate string) (bool, error) {
	if !s.Required() {
		return true, nil
	}
	if !s.CheckPassword(candidate) {
		return false, nil
	}
	if err := s.authRepo.SetAuthenticated(userID); err != nil {
		return false, err
	}
	return true, nil
}

// IsAuthorized checks if user is authorized
func (s *AuthService) IsAuthorized(userID int64) (bool, error) {
	if !s.Required() {
		return true, nil
	}
	return s.authRepo.IsAuthenticated(userID)
}

// Logout forgets the user's successful PIN entry
func (s *AuthService) Logout(userID int64) error {
	return s.authRepo.ClearAuthenticated(userID)
}
