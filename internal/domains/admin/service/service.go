package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"conference/config"
	"conference/infras/jwt"
	"conference/infras/otel"
	"conference/internal/domains/admin/model/dto"
	"conference/shared"
	"conference/shared/cache"
	"conference/shared/constant"
	"conference/shared/failure"
	"conference/shared/password"
	"conference/shared/timezone"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"math"
	"net/http"

	"github.com/rs/zerolog/log"
)

const cacheRevokedSession = "admin:revoked"

var (
	ErrInvalidCredentials = &failure.Failure{Code: http.StatusUnauthorized, Message: "Invalid username or password."}
	ErrLoginRequired      = &failure.Failure{Code: http.StatusUnauthorized, Message: "Please login to access admin panel."}
	ErrNotAdmin           = &failure.Failure{Code: http.StatusForbidden, Message: "forbidden"}
)

type Admin interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	Authenticate(ctx context.Context, token string) (dto.Session, error)
	Logout(ctx context.Context, token string) error
}

type serviceImpl struct {
	cfg          *config.Config
	jwtService   jwt.JWT
	cache        cache.RedisCache
	otel         otel.Otel
	passwordHash string
}

// New hashes the configured admin password once so logins compare against a bcrypt hash.
func New(cfg *config.Config, jwtService jwt.JWT, cache cache.RedisCache, otel otel.Otel) Admin {
	hash, err := password.Hash(cfg.App.Admin.Password)
	if err != nil {
		log.Error().Err(err).Msg("admin password is not configured, admin login is disabled")
	}

	return &serviceImpl{
		cfg:          cfg,
		jwtService:   jwtService,
		cache:        cache,
		otel:         otel,
		passwordHash: hash,
	}
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Normalize()

	validUser := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.cfg.App.Admin.Username)) == 1

	if err := password.Verify(req.Password, s.passwordHash); err != nil || !validUser {
		log.Warn().Str("username", req.Username).Msg("admin login attempt with invalid credentials")

		return res, ErrInvalidCredentials // nolint:wrapcheck
	}

	token, err := s.jwtService.GenerateToken(req.Username, constant.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate admin session")

		return res, fmt.Errorf("failed to generate admin session: %w", err)
	}

	log.Info().Str("username", req.Username).Msg("admin logged in")

	res.FromToken(token)

	return res, nil
}

// Authenticate accepts unexpired admin tokens that have not been revoked. Revocation lookups that
// fail are logged and the token is accepted.
func (s *serviceImpl) Authenticate(ctx context.Context, token string) (res dto.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Authenticate")
	defer scope.End()
	defer scope.TraceIfError(err)

	if token == constant.Empty {
		return res, ErrLoginRequired // nolint:wrapcheck
	}

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		log.Debug().Err(err).Msg("rejected admin session")

		return res, ErrLoginRequired // nolint:wrapcheck
	}

	if claims.Role != constant.RoleAdmin {
		return res, ErrNotAdmin // nolint:wrapcheck
	}

	revoked, err := s.cache.Exists(ctx, shared.BuildCacheKey(cacheRevokedSession, claims.TokenID))
	if err != nil {
		log.Warn().Err(err).Str("token_id", claims.TokenID).Msg("failed to check session revocation")
	}

	if revoked {
		return res, ErrLoginRequired // nolint:wrapcheck
	}

	res.FromClaims(claims)

	return res, nil
}

// Logout revokes the token until it would have expired on its own. Tokens that are already
// invalid need no revocation.
func (s *serviceImpl) Logout(ctx context.Context, token string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrMissingKey) {
			return fmt.Errorf("failed to read admin session: %w", err)
		}

		return nil
	}

	ttl := 1
	if claims.ExpiresAt != nil {
		ttl = max(int(math.Ceil(claims.ExpiresAt.Sub(timezone.Now()).Seconds())), 1)
	}

	if err = s.cache.Save(ctx, shared.BuildCacheKey(cacheRevokedSession, claims.TokenID), true, ttl); err != nil {
		log.Error().Err(err).Str("token_id", claims.TokenID).Msg("failed to revoke admin session")

		return fmt.Errorf("failed to revoke admin session: %w", err)
	}

	log.Info().Str("username", claims.Username).Msg("admin logged out")

	return nil
}
