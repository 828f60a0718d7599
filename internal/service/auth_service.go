package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"canteen-connect/internal/model"
	"canteen-connect/internal/repository"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("role must be student or admin")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// Identity is the authenticated caller as carried in the access token.
type Identity struct {
	UserID int64
	Role   string
}

type accessClaims struct {
	UserID int64  `json:"userId"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	repo     *repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{repo: repo, secret: []byte(secret), tokenTTL: tokenTTL}
}

// Register creates a user with a bcrypt-hashed password. The plaintext
// password is never stored. An empty role defaults to student.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (model.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return model.User{}, ErrInvalidCredentials
	}

	if role == "" {
		role = model.RoleStudent
	}
	if role != model.RoleStudent && role != model.RoleAdmin {
		return model.User{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, username, string(hash), role)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, err
	}
	return user, nil
}

// Login verifies the password against the stored hash and issues a signed,
// time-bounded access token. Unknown usernames and wrong passwords produce
// the same error so the response does not reveal which usernames exist.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, model.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", model.User{}, ErrInvalidCredentials
		}
		return "", model.User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", model.User{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(user)
	if err != nil {
		return "", model.User{}, err
	}
	return token, user, nil
}

// IssueToken signs an HS256 access token asserting the user's id and role.
func (s *AuthService) IssueToken(user model.User) (string, error) {
	now := time.Now()
	claims := accessClaims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   fmt.Sprintf("%d", user.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a bearer token and returns the identity it asserts.
func (s *AuthService) ParseToken(tokenString string) (Identity, error) {
	var claims accessClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return Identity{}, ErrInvalidToken
	}
	return Identity{UserID: claims.UserID, Role: claims.Role}, nil
}
