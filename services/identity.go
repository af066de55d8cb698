package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"skill-exchange/config"
	"skill-exchange/logging"
	"skill-exchange/models"
	"skill-exchange/store"
	"skill-exchange/utils"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	generateFromPassword   = bcrypt.GenerateFromPassword
	compareHashAndPassword = bcrypt.CompareHashAndPassword
	generateToken          = utils.GenerateToken
	parseToken             = utils.ParseToken
)

// Session is the result of a successful login.
type Session struct {
	Token     string
	Name      string
	ExpiresIn time.Duration
}

// IdentityService registers users, issues tokens and resolves them back to
// the acting user.
type IdentityService struct {
	users   store.UserStore
	revoked store.RevocationStore
	auth    config.AuthConfig
}

func NewIdentityService(users store.UserStore, revoked store.RevocationStore, auth config.AuthConfig) *IdentityService {
	return &IdentityService{users: users, revoked: revoked, auth: auth}
}

func (s *IdentityService) Register(ctx context.Context, name, email, password string) (models.User, error) {
	name = strings.TrimSpace(name)
	email = NormalizeEmail(email)
	switch {
	case name == "":
		return models.User{}, invalid("name", "is required")
	case email == "":
		return models.User{}, invalid("email", "is required")
	case password == "":
		return models.User{}, invalid("password", "is required")
	case !emailPattern.MatchString(email):
		return models.User{}, invalid("email", "must be a valid email address")
	}

	if _, found, err := s.users.FindByEmail(ctx, email); err != nil {
		return models.User{}, err
	} else if found {
		return models.User{}, fmt.Errorf("user %s already exists: %w", email, ErrConflict)
	}

	hashed, err := generateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		ID:           newID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		CreatedAt:    now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return models.User{}, translateStoreError(err)
	}
	logging.FromContext(ctx).Info("registered user", zap.String("user_id", user.ID), zap.String("email", user.Email))
	return user, nil
}

// Authenticate checks the credentials and issues a signed token. Unknown
// emails and wrong passwords both yield ErrInvalidCredentials.
func (s *IdentityService) Authenticate(ctx context.Context, email, password string) (Session, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, invalid("email", "email and password are required")
	}

	user, found, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Session{}, ErrInvalidCredentials
	}
	if err := compareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	claims := utils.Claims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}
	claims.ID = newID()
	token, err := generateToken(claims, s.auth.TokenTTL, s.auth.Issuer, s.auth.TokenSecret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, Name: user.Name, ExpiresIn: s.auth.TokenTTL}, nil
}

// Resolve validates the token and rejects it once it has been revoked.
func (s *IdentityService) Resolve(ctx context.Context, token string) (*utils.Claims, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	claims, err := parseToken(token, s.auth.TokenSecret)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrInvalidToken)
	}
	if claims.ID != "" && s.revoked != nil {
		revoked, err := s.revoked.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("check revocation: %w", err)
		}
		if revoked {
			return nil, fmt.Errorf("token revoked: %w", ErrInvalidToken)
		}
	}
	return claims, nil
}

// Logout revokes the token until it would have expired on its own.
func (s *IdentityService) Logout(ctx context.Context, token string) error {
	claims, err := s.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			return nil
		}
		return err
	}
	if claims.ID == "" || s.revoked == nil {
		return nil
	}
	return s.revoked.Revoke(ctx, claims.ID, remaining(claims.ExpiresAt))
}

func remaining(expiresAt *jwt.NumericDate) time.Duration {
	if expiresAt == nil {
		return time.Second
	}
	return time.Until(expiresAt.Time)
}
