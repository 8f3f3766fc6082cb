package middleware

import (
	"conference/config"
	"conference/infras/jwt"
	"conference/shared/constant"
	"conference/shared/failure"
	"conference/transport/http/response"
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"
)

const (
	csrfCookieName = "csrf_token"
	csrfFieldName  = "csrf_token"
	headerProto    = "X-Forwarded-Proto"
)

// CSRFGuard wraps the site routes with CSRF protection.
type CSRFGuard func(http.Handler) http.Handler

// CSRF protects cookie sessions against cross-site form posts. The current token is echoed in
// the X-CSRF-Token response header so that forms and scripts can send it back. Bearer clients
// carry no ambient credentials and are not checked.
func CSRF(cfg *config.Config) CSRFGuard {
	if !cfg.App.CSRF.Enable {
		return func(next http.Handler) http.Handler { return next }
	}

	key := sha256.Sum256([]byte(cfg.App.SecretKey))
	production := cfg.Server.Env == constant.ServerEnvProduction

	protect := csrf.Protect(
		key[:],
		csrf.Secure(production),
		csrf.Path("/"),
		csrf.CookieName(csrfCookieName),
		csrf.FieldName(csrfFieldName),
		csrf.RequestHeader(constant.RequestHeaderCSRFToken),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := csrf.FailureReason(r)
			log.Warn().Err(reason).Str("path", r.URL.Path).Msg("csrf check failed")

			response.WithError(w, failure.Forbidden("The CSRF token is missing or invalid."))
		})),
	)

	return func(next http.Handler) http.Handler {
		exposed := protect(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(constant.RequestHeaderCSRFToken, csrf.Token(r))

			next.ServeHTTP(w, r)
		}))

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && r.Header.Get(headerProto) != "https" {
				r = csrf.PlaintextHTTPRequest(r)
			}

			if bearerRequest(r) {
				r = csrf.UnsafeSkipCheck(r)
			}

			exposed.ServeHTTP(w, r)
		})
	}
}

// bearerRequest reports whether r authenticates with a Bearer token. Any other Authorization
// scheme still lets the session cookie through, so it does not skip the check.
func bearerRequest(r *http.Request) bool {
	token, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))

	return err == nil && token != constant.Empty
}
