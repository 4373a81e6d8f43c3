package users

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	sharedauth "healthrisk-backend/internal/shared/auth"
	"healthrisk-backend/internal/shared/telemetry"
	"healthrisk-backend/internal/shared/util"
)

var errNotConfigured = errors.New("users service not configured")

// Token is the bearer token issued after a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Service struct {
	Repo Repo
	// HashCost is the bcrypt cost; zero means bcrypt.DefaultCost.
	HashCost int
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// Signup registers a password account. Emails are unique case-insensitively.
func (s *Service) Signup(ctx context.Context, name, email, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return User{}, errors.New("invalid email")
	}

	if _, err := s.Repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Provider:     ProviderPassword,
	}
	if err := s.Repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	telemetry.Info("user.signup", map[string]any{
		"user_id":    user.ID,
		"email_hash": util.HashIdentifier(email),
	})
	return s.Repo.GetByID(ctx, user.ID)
}

// Authenticate checks an email/password pair. Unknown emails and wrong
// passwords both yield ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	user, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if user.PasswordHash == "" {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		telemetry.Warn("user.login_failed", map[string]any{
			"email_hash": util.HashIdentifier(email),
		})
		return User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return Token{}, err
	}
	access, err := IssueToken(user)
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: access, TokenType: "bearer"}, nil
}

// UpsertFromAuth persists an identity from an external provider and returns
// the stored user.
func (s *Service) UpsertFromAuth(ctx context.Context, user User) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	user.Email = normalizeEmail(user.Email)
	if user.Email == "" {
		return User{}, errors.New("email is required")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Name == "" {
		user.Name = user.Email
	}
	return s.Repo.UpsertByEmail(ctx, user)
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errNotConfigured
	}
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.Repo.GetByID(ctx, userID)
}

// IssueToken signs a JWT carrying the user's identity.
func IssueToken(user User) (string, error) {
	return sharedauth.SignJWT(sharedauth.Claims{
		Sub:     user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Picture: user.PictureURL,
	})
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
