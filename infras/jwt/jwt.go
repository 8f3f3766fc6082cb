package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"conference/config"
	"conference/shared/constant"
	"conference/shared/timezone"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrMissingKey   = errors.New("signing key is not configured")
)

const tokenTypeBearer = "Bearer"

// Claims represents the admin session claims
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	TokenID  string `json:"token_id"`
	jwt.RegisteredClaims
}

// Token is a signed session token with its lifetime
type Token struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// JWT issues and validates admin session tokens
type JWT interface {
	GenerateToken(username, role string) (*Token, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Service handles JWT operations
type Service struct {
	config *config.Config
}

// New creates a new JWT service
func New(cfg *config.Config) JWT {
	return &Service{
		config: cfg,
	}
}

// secret prefers the dedicated JWT secret and falls back to the application secret key.
func (s *Service) secret() ([]byte, error) {
	secret := s.config.JWT.AccessSecret
	if secret == "" {
		secret = s.config.App.SecretKey
	}

	if secret == "" {
		return nil, ErrMissingKey
	}

	return []byte(secret), nil
}

// GenerateToken signs a session token for the given admin
func (s *Service) GenerateToken(username, role string) (*Token, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}

	issuedAt := timezone.Now()
	lifetime := time.Duration(s.config.JWT.AccessExpireMin) * time.Minute
	expiresAt := issuedAt.Add(lifetime)
	tokenID := uuid.NewString()

	claims := Claims{
		Username: username,
		Role:     role,
		TokenID:  tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			Issuer:    s.config.App.Name,
			Subject:   username,
			ID:        tokenID,
		},
	}

	signedToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Token{
		AccessToken: signedToken,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(s.config.JWT.AccessExpireMin * constant.MinutesToSeconds),
		ExpiresAt:   expiresAt,
	}, nil
}

// ValidateToken validates and parses a session token
func (s *Service) ValidateToken(tokenString string) (*Claims, error) {
	secret, err := s.secret()
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}

		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}

		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Username == "" || claims.TokenID == "" {
		return nil, ErrInvalidClaim
	}

	return claims, nil
}

// ExtractTokenFromHeader extracts JWT token from Authorization header
func ExtractTokenFromHeader(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is required")
	}

	const prefix = tokenTypeBearer + " "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", errors.New("authorization header must start with 'Bearer '")
	}

	return strings.TrimSpace(authHeader[len(prefix):]), nil
}

// ExtractTokenFromRequest prefers the Authorization header and falls back to the session cookie.
func ExtractTokenFromRequest(r *http.Request, cookieName string) string {
	if token, err := ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization)); err == nil {
		return token
	}

	if cookie, err := r.Cookie(cookieName); err == nil {
		return cookie.Value
	}

	return ""
}
