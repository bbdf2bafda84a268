package services

import (
	"errors"
	"fmt"

	"bazar/internal/models"
	"bazar/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Credential errors surfaced to handlers. Handlers branch on these with
// errors.Is to pick the user-facing message.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrUserNotFound      = errors.New("no user registered with this email")
	ErrBadPassword       = errors.New("incorrect password")
)

// AuthService handles business logic for registration and login.
type AuthService struct {
	userRepo repositories.UserRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository) *AuthService {
	return &AuthService{
		userRepo: userRepo,
	}
}

// RegisterUser registers a new user, hashes their password and saves them to
// the database. Duplicate usernames and emails are reported per field.
func (s *AuthService) RegisterUser(username, email, rawPassword string) (*models.User, error) {
	// Check if username or email already exists so the caller can report
	// which field collided.
	if existing, err := s.userRepo.GetByUsername(username); err == nil && existing != nil {
		return nil, ErrDuplicateUsername
	}
	if existing, err := s.userRepo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
	}

	if err := s.userRepo.Create(user); err != nil {
		// The pre-check and the insert are not atomic. A concurrent
		// registration can still trip the unique index, in which case we
		// re-resolve the colliding field.
		if errors.Is(err, repositories.ErrDuplicateKey) {
			if existing, lookupErr := s.userRepo.GetByUsername(username); lookupErr == nil && existing != nil {
				return nil, ErrDuplicateUsername
			}
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return user, nil
}

// VerifyCredentials authenticates a user by email and password.
// It distinguishes an unknown email from a wrong password so the login form
// can show a specific message for each.
func (s *AuthService) VerifyCredentials(email, rawPassword string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(rawPassword)); err != nil {
		return nil, ErrBadPassword
	}

	return user, nil
}
