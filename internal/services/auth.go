package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/blogpessoal/blogapi/internal/events"
	"github.com/blogpessoal/blogapi/internal/store"
	"github.com/blogpessoal/blogapi/types"
	"github.com/pkg/errors"
)

// tokenPrefix is prepended to issued tokens so clients can send them verbatim
// in the Authorization header.
const tokenPrefix = "Bearer "

// ErrInvalidCredentials is returned by Login for an unknown email or a wrong
// password. The two cases are only told apart in logs.
var ErrInvalidCredentials = errors.New("invalid credentials")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer produces signed credentials for a user.
type TokenIssuer interface {
	Issue(user types.User) (string, error)
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	User  types.User `json:"usuario"`
	Token string     `json:"token"`
}

// AuthService owns registration and login.
type AuthService struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	events events.Publisher
	logger *slog.Logger
}

func NewAuthService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, publisher events.Publisher, logger *slog.Logger) *AuthService {
	if publisher == nil {
		publisher = events.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		events: publisher,
		logger: logger,
	}
}

// Register hashes the password and stores the user. Email uniqueness is
// decided by the store; a conflict surfaces as store.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, user types.User, password string) (types.User, error) {
	if strings.TrimSpace(user.Type) == "" {
		user.Type = types.UserTypeNormal
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return types.User{}, errors.Wrap(err, "hash password")
	}
	user.PasswordHash = hashed

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return types.User{}, err
		}
		return types.User{}, errors.Wrap(err, "create user")
	}

	s.events.Publish(ctx, events.UserRegistered, created.ID)
	return created, nil
}

// Login checks the credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.logger.WarnContext(ctx, "login rejected", slog.String("reason", "unknown_email"))
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, errors.Wrap(err, "load user")
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.WarnContext(ctx, "login rejected", slog.String("reason", "wrong_password"), slog.Int("user_id", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return LoginResult{}, errors.Wrap(err, "issue token")
	}

	return LoginResult{User: user, Token: tokenPrefix + token}, nil
}
