package users

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/asysyifa-husada/clinic-service/internal/auth"
	"github.com/asysyifa-husada/clinic-service/internal/storage"
	"github.com/google/uuid"
)

var (
	ErrMissingUsername    = errors.New("username is required")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidRole        = errors.New("invalid role")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrSuperAdminImmut    = errors.New("the superadmin account cannot be deleted")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

const (
	bootstrapUsername = "superadmin"
	bootstrapPassword = "suportadmin"

	minPasswordLength = 6
)

// TokenIssuer mints the bearer token returned on login.
type TokenIssuer interface {
	Issue(userID, username, role string) (string, error)
}

type Service struct {
	users   *storage.Collection[User]
	session *storage.Singleton[Session]
	tokens  TokenIssuer
	now     func() time.Time
}

func NewService(kv storage.KV, tokens TokenIssuer) *Service {
	return &Service{
		users:   storage.NewCollection[User](kv, storage.KeyUsers),
		session: storage.NewSingleton[Session](kv, storage.KeySession),
		tokens:  tokens,
		now:     time.Now,
	}
}

func validRole(role string) bool {
	switch role {
	case auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleUser:
		return true
	}
	return false
}

// Bootstrap makes sure the superadmin account exists. The password can be
// overridden with AUTH_BOOTSTRAP_PASSWORD; otherwise the built-in default
// is used, matching the original deployment.
func (s *Service) Bootstrap(ctx context.Context) error {
	_, err := s.users.Find(ctx, func(u User) bool {
		return strings.EqualFold(u.Username, bootstrapUsername)
	})
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to look up superadmin: %w", err)
	}

	password := os.Getenv("AUTH_BOOTSTRAP_PASSWORD")
	if password == "" {
		password = bootstrapPassword
	}

	admin := User{
		ID:        uuid.New().String(),
		Username:  bootstrapUsername,
		Password:  password,
		Role:      auth.RoleSuperAdmin,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Save(ctx, admin); err != nil {
		return fmt.Errorf("failed to create superadmin: %w", err)
	}
	log.Printf("Bootstrapped %s account", bootstrapUsername)
	return nil
}

// CreateUser adds an account. Usernames are unique case-insensitively, so
// "alice" and "Alice" collide.
func (s *Service) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, ErrMissingUsername
	}
	if len(req.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if !validRole(req.Role) {
		return nil, ErrInvalidRole
	}

	_, err := s.users.Find(ctx, func(u User) bool {
		return strings.EqualFold(u.Username, username)
	})
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}

	user := User{
		ID:        uuid.New().String(),
		Username:  username,
		Password:  req.Password,
		Role:      req.Role,
		CreatedAt: s.now().UTC(),
	}
	if err := s.users.Save(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}
	return &user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	// passwords never leave the service
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	user, err := s.users.Get(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if strings.EqualFold(user.Username, bootstrapUsername) {
		return ErrSuperAdminImmut
	}

	if _, err := s.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// Login checks credentials, persists the session singleton and issues a
// bearer token. Both the username and the password comparison are exact;
// only uniqueness checks at creation time ignore case.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*Session, string, error) {
	user, err := s.users.Find(ctx, func(u User) bool {
		return u.Username == req.Username
	})
	if errors.Is(err, storage.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}
	if user.Password != req.Password {
		return nil, "", ErrInvalidCredentials
	}

	session := Session{
		UserID:     user.ID,
		Username:   user.Username,
		Role:       user.Role,
		LoggedInAt: s.now().UTC(),
	}
	if err := s.session.Set(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to persist session: %w", err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}
	return &session, token, nil
}

// Logout clears the persisted session.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.session.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// CurrentSession returns the persisted session, if any.
func (s *Service) CurrentSession(ctx context.Context) (*Session, bool, error) {
	session, ok, err := s.session.Get(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !ok {
		return nil, false, nil
	}
	return &session, true, nil
}

// CurrentUserID implements auth.SessionStore.
func (s *Service) CurrentUserID(ctx context.Context) (string, bool, error) {
	session, ok, err := s.CurrentSession(ctx)
	if err != nil || !ok {
		return "", false, err
	}
	return session.UserID, true, nil
}

var _ auth.SessionStore = (*Service)(nil)
