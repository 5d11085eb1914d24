package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/fitzer-app/fitzer/backend/internal/models"
	"github.com/fitzer-app/fitzer/backend/internal/types"
)

// TokenTTL is the fixed validity window of issued bearer tokens. There is
// no refresh flow; callers re-login after expiry.
const TokenTTL = 7 * 24 * time.Hour

var (
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthenticationPolicy decides whether a presented credential is accepted
// for a stored user. The default policy accepts any identity claim; swap
// in PasswordPolicy to require a real credential check without touching
// the login flow.
type AuthenticationPolicy interface {
	VerifyCredential(user *models.User, credential string) error
}

// ClaimIdentityPolicy accepts every identity claim. This mirrors the
// passwordless login the front end was built against.
type ClaimIdentityPolicy struct{}

func (ClaimIdentityPolicy) VerifyCredential(*models.User, string) error { return nil }

// PasswordPolicy verifies a bcrypt credential stored on the user record.
type PasswordPolicy struct{}

func (PasswordPolicy) VerifyCredential(user *models.User, credential string) error {
	if user.PasswordHash == "" {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(credential)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashCredential produces the stored form of a password for accounts
// managed under PasswordPolicy.
func HashCredential(credential string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	policy    AuthenticationPolicy
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		policy:    ClaimIdentityPolicy{},
	}
}

// WithPolicy replaces the authentication policy.
func (s *AuthService) WithPolicy(policy AuthenticationPolicy) *AuthService {
	s.policy = policy
	return s
}

// Register creates a new account with light-theme preferences and returns
// a fresh token.
func (s *AuthService) Register(ctx context.Context, name, username, email string) (*models.User, string, error) {
	var existing models.User
	if err := s.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error; err == nil {
		return nil, "", ErrUsernameTaken
	}

	user := models.User{
		Name:     name,
		Username: username,
		Email:    email,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserPreference{UserID: user.ID, Theme: "light"}).Error
	})
	if err != nil {
		return nil, "", err
	}

	token, err := s.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// Login claims an identity by handle. A missing account is created on the
// fly; an existing one gets its display name refreshed when it changed.
// The credential is checked by the configured policy.
func (s *AuthService) Login(ctx context.Context, name, username, credential string) (*models.User, string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		created, token, regErr := s.Register(ctx, name, username, "")
		if regErr != nil {
			return nil, "", regErr
		}
		return created, token, nil
	case err != nil:
		return nil, "", err
	}

	if err := s.policy.VerifyCredential(&user, credential); err != nil {
		return nil, "", err
	}

	if user.Name != name {
		user.Name = name
		if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
			return nil, "", err
		}
	}

	token, err := s.GenerateToken(&types.TokenClaims{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, "", err
	}

	return &user, token, nil
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GenerateToken issues a signed bearer token for the given claims.
func (s *AuthService) GenerateToken(claims *types.TokenClaims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  claims.UserID.String(),
		"username": claims.Username,
		"exp":      time.Now().Add(TokenTTL).Unix(),
	})
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses and verifies a bearer token. Expired tokens fail
// here; the caller must re-login.
func (s *AuthService) ValidateToken(tokenString string) (*types.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	username, _ := claims["username"].(string)

	return &types.TokenClaims{UserID: userID, Username: username}, nil
}
