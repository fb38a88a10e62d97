package state

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"storefront/internal/domain/entity"
	"storefront/internal/storefront/apiclient"
	"storefront/internal/storefront/storage"
	"storefront/pkg/errors"
	"storefront/pkg/response"
)

const (
	msgPasswordMismatch = "Passwords do not match!"
	msgPasswordTooShort = "Password must be at least 6 characters"
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	Login(ctx context.Context, email, password string) (*apiclient.LoginResult, error)
}

// TokenHolder receives the session's bearer token.
type TokenHolder interface {
	SetToken(token string)
}

type RegisterForm struct {
	Name            string `validate:"required"`
	Email           string `validate:"required,email"`
	Password        string `validate:"required,min=6"`
	ConfirmPassword string `validate:"eqfield=Password"`
}

// Session is the logged-in user, kept in durable storage across runs.
type Session struct {
	auth     AuthService
	store    storage.Store
	cart     *Manager
	tokens   TokenHolder
	validate *validator.Validate
	log      Logger

	mu   sync.RWMutex
	user *entity.User
}

// NewSession wires a session. tokens may be nil.
func NewSession(auth AuthService, store storage.Store, cart *Manager, tokens TokenHolder) *Session {
	return &Session{
		auth:     auth,
		store:    store,
		cart:     cart,
		tokens:   tokens,
		validate: validator.New(),
		log:      cart.log,
	}
}

// CheckAuth restores the user saved by a previous Login. Corrupt session
// data is removed and the session starts logged out.
func (s *Session) CheckAuth() *entity.User {
	loggedIn, err := s.store.Get(storage.KeyLoggedIn)
	if err != nil || loggedIn != "true" {
		return nil
	}

	raw, err := s.store.Get(storage.KeyUser)
	if err != nil {
		return nil
	}

	var user entity.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		s.log.Printf("Stored session is unreadable, logging out: %v", err)
		if delErr := s.store.Delete(storage.KeyLoggedIn, storage.KeyUser); delErr != nil {
			s.log.Printf("Failed to clear session: %v", delErr)
		}
		return nil
	}

	token, err := s.store.Get(storage.KeyToken)
	if err == nil {
		s.setToken(token)
	}

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user
}

// Register checks the form locally before asking the server.
func (s *Session) Register(ctx context.Context, form RegisterForm) (*entity.User, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)

	if err := s.validate.Struct(form); err != nil {
		return nil, registerValidationError(err)
	}

	return s.auth.Register(ctx, form.Name, form.Email, form.Password)
}

func registerValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Validation("Invalid input data")
	}

	for _, fe := range fieldErrs {
		if fe.Tag() == "eqfield" {
			return errors.Validation(msgPasswordMismatch)
		}
	}
	for _, fe := range fieldErrs {
		if fe.Field() == "Password" && fe.Tag() == "min" {
			return errors.Validation(msgPasswordTooShort)
		}
	}
	return errors.Validation(response.ValidationMessage(fieldErrs[0]))
}

func (s *Session) Login(ctx context.Context, email, password string) (*entity.User, error) {
	result, err := s.auth.Login(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(result.User)
	if err != nil {
		return nil, err
	}
	entries := []struct{ key, value string }{
		{storage.KeyUser, string(raw)},
		{storage.KeyToken, result.Token},
		{storage.KeyLoggedIn, "true"},
	}
	for i, e := range entries {
		if err := s.store.Set(e.key, e.value); err != nil {
			// Never leave a half-written session behind.
			written := make([]string, 0, i)
			for _, prev := range entries[:i] {
				written = append(written, prev.key)
			}
			if len(written) > 0 {
				if derr := s.store.Delete(written...); derr != nil {
					s.log.Printf("Failed to roll back session keys: %v", derr)
				}
			}
			return nil, fmt.Errorf("save session: %w", err)
		}
	}

	s.setToken(result.Token)
	user := result.User
	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
	return &user, nil
}

// Logout forgets the user and empties the cart, in memory and on disk.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	s.setToken("")

	if err := s.cart.Clear(); err != nil {
		s.log.Printf("Failed to clear cart on logout: %v", err)
	}
	return s.store.Delete(storage.KeyLoggedIn, storage.KeyUser, storage.KeyToken, storage.KeyCart)
}

// CurrentUser returns nil when logged out.
func (s *Session) CurrentUser() *entity.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

func (s *Session) requireUser(action string) (*entity.User, error) {
	user := s.CurrentUser()
	if user == nil {
		return nil, errors.Unauthorized("Please login to "+action, nil)
	}
	return user, nil
}

func (s *Session) setToken(token string) {
	if s.tokens != nil {
		s.tokens.SetToken(token)
	}
}
