package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/isdelr/agrasia-be/internal/auth"
	"github.com/isdelr/agrasia-be/internal/models"
	"github.com/isdelr/agrasia-be/internal/store"
	"github.com/rs/zerolog/log"
)

// AuthServiceProvider defines the interface for registration and login.
type AuthServiceProvider interface {
	Register(name, email, password string) error
	Login(email, password string) (LoginResult, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token    string
	UserName string
}

// TokenIssuer mints session tokens.
type TokenIssuer interface {
	Issue(name, email string) (string, error)
}

type registerInput struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

var validate = validator.New()

// AuthService orchestrates registration and login over the credential store.
type AuthService struct {
	store  store.CredentialStore
	hasher auth.PasswordHasher
	tokens TokenIssuer
	events EventServiceProvider

	// mu serializes the read-modify-write cycle on the credential store.
	mu sync.Mutex

	// dummyHash is compared against when the email is unknown so both
	// failure paths pay for one hash comparison.
	dummyHash string
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(credentials store.CredentialStore, hasher auth.PasswordHasher, tokens TokenIssuer, events EventServiceProvider) *AuthService {
	dummy, err := hasher.Hash("agrasia-dummy-password")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prepare dummy password hash")
	}
	return &AuthService{
		store:     credentials,
		hasher:    hasher,
		tokens:    tokens,
		events:    events,
		dummyHash: dummy,
	}
}

// Register creates a new user. It does not log the user in.
func (s *AuthService) Register(name, email, password string) error {
	if err := validate.Struct(registerInput{Name: name, Email: email, Password: password}); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, missingFields(err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load users: %w", err)
	}
	for _, u := range users {
		if u.Email == email {
			return ErrConflict
		}
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("failed to generate user id: %w", err)
	}

	users = append(users, models.User{
		ID:           id.String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	})
	if err := s.store.SaveAll(users); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	s.recordEvent("user.register", "info", fmt.Sprintf("User '%s' registered.", name))
	return nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(email, password string) (LoginResult, error) {
	users, err := s.store.LoadAll()
	if err != nil {
		return LoginResult{}, fmt.Errorf("failed to load users: %w", err)
	}

	var found *models.User
	for i := range users {
		if users[i].Email == email {
			found = &users[i]
			break
		}
	}

	if found == nil {
		s.hasher.Verify(password, s.dummyHash)
		s.recordEvent("auth.login.fail", "warn", "Failed login attempt.")
		return LoginResult{}, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, found.PasswordHash) {
		s.recordEvent("auth.login.fail", "warn", "Failed login attempt.")
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(found.Name, found.Email)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, UserName: found.Name}, nil
}

func (s *AuthService) recordEvent(eventType, level, message string) {
	if s.events == nil {
		return
	}
	if err := s.events.CreateEvent(eventType, level, message, nil); err != nil {
		log.Warn().Err(err).Str("type", eventType).Msg("Failed to record event")
	}
}

func missingFields(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err.Error()
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, strings.ToLower(fe.Field()))
	}
	return "missing " + strings.Join(fields, ", ")
}
