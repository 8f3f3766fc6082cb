package dto

import (
	"conference/infras/jwt"
	"strings"
	"time"
)

const (
	MessageLoggedIn  = "Login successful!"
	MessageLoggedOut = "You have been logged out."
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (r *LoginRequest) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Password = strings.TrimSpace(r.Password)
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func (l *LoginResponse) FromToken(token *jwt.Token) {
	l.AccessToken = token.AccessToken
	l.TokenType = token.TokenType
	l.ExpiresIn = token.ExpiresIn
	l.ExpiresAt = token.ExpiresAt
}

// Session is an authenticated admin.
type Session struct {
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *Session) FromClaims(claims *jwt.Claims) {
	s.Username = claims.Username
	s.Role = claims.Role
	s.TokenID = claims.TokenID

	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
}
