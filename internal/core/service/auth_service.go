package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/pulsehr/feedback-flow/internal/core/domain"
	"github.com/pulsehr/feedback-flow/internal/core/ports"
)

const defaultSessionTTL = 7 * 24 * time.Hour

// AuthService implements registration, login, and session verification.
type AuthService struct {
	repo       ports.UserRepository
	jwtSecret  string
	sessionTTL time.Duration
}

func NewAuthService(repo ports.UserRepository, jwtSecret string, sessionTTL time.Duration) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = defaultSessionTTL
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, sessionTTL: sessionTTL}
}

// Register creates an account and returns a signed session token for it.
// Client accounts carry no credential; HR accounts must supply a password.
func (s *AuthService) Register(ctx context.Context, name, email, role, password string) (string, *domain.User, error) {
	if name == "" || email == "" || role == "" {
		return "", nil, fmt.Errorf("%w: name, email and role are required", domain.ErrInvalidInput)
	}
	if !domain.ValidRole(role) {
		return "", nil, fmt.Errorf("%w: role must be hr or client", domain.ErrInvalidInput)
	}
	if role == domain.RoleHR && password == "" {
		return "", nil, fmt.Errorf("%w: password is required for hr users", domain.ErrInvalidInput)
	}

	var hash string
	if role == domain.RoleHR {
		h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return "", nil, err
		}
		hash = string(h)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(created)
	if err != nil {
		return "", nil, err
	}
	return token, created, nil
}

// Login authenticates an HR user by email and password. Unknown accounts,
// credential-less client accounts, and hash mismatches all return the same
// ErrInvalidCredentials so callers cannot probe which emails exist.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if user.PasswordHash == "" {
		return "", nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Verify parses and validates a session token and confirms the referenced
// user still exists. Verification is stateless apart from that lookup.
func (s *AuthService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}

	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}

	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"role":    user.Role,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
