package middleware

import (
	"conference/shared/failure"
	"conference/transport/http/response"
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
)

// SchemaEnsurer applies pending migrations on first use.
type SchemaEnsurer interface {
	Ensure(ctx context.Context) error
}

// SchemaGuard wraps the routes that need the database schema.
type SchemaGuard func(http.Handler) http.Handler

// Schema holds every request until the database schema is in place. Requests that arrive while
// the database is unreachable get 503 and trigger another attempt on the next request.
func Schema(schema SchemaEnsurer, skipPaths ...string) SchemaGuard {
	if schema == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	skip := make(map[string]struct{}, len(skipPaths))
	for _, path := range skipPaths {
		skip[path] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)

				return
			}

			if err := schema.Ensure(r.Context()); err != nil {
				log.Error().Err(err).Msg("database schema unavailable")

				response.WithError(w, failure.StorageUnavailable)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
