package middleware_test

import (
	"conference/config"
	otelMocks "conference/infras/otel/mocks"
	adminMocks "conference/internal/domains/admin/mocks"
	adminDto "conference/internal/domains/admin/model/dto"
	adminService "conference/internal/domains/admin/service"
	"conference/permissions"
	"conference/shared/cache"
	cacheMocks "conference/shared/cache/mocks"
	"conference/shared/constant"
	"conference/transport/http/middleware"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func ok(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
	_, _ = w.Write([]byte("ok:" + user))
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name       string
		setup      func(store *cacheMocks.MockRedisCache)
		wantStatus int
		remaining  string
	}{
		{
			name: "first request",
			setup: func(store *cacheMocks.MockRedisCache) {
				store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(cache.Nil)
				store.EXPECT().Save(gomock.Any(), gomock.Any(), 1, 60).Return(nil)
			},
			wantStatus: http.StatusOK,
			remaining:  "1",
		},
		{
			name: "over the limit",
			setup: func(store *cacheMocks.MockRedisCache) {
				store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
					*(value.(*int)) = 2

					return nil
				})
			},
			wantStatus: http.StatusTooManyRequests,
		},
		{
			name: "cache down lets the request through",
			setup: func(store *cacheMocks.MockRedisCache) {
				store.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("dial tcp: connection refused"))
			},
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := cacheMocks.NewMockRedisCache(ctrl)
			tt.setup(store)

			handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, store).RateLimit(http.HandlerFunc(ok))

			request := httptest.NewRequest(http.MethodPost, "/register", nil)
			request.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.remaining, recorder.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := cacheMocks.NewMockRedisCache(ctrl)

	handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, store).RateLimit(http.HandlerFunc(ok))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestTracing(t *testing.T) {
	handler := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, nil).Tracing(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, recorder.Code)
}

func newAdminRouter(t *testing.T, admin *adminMocks.MockAdmin) http.Handler {
	t.Helper()

	auth := middleware.NewAuthRoleMiddleware(admin, otelMocks.NewOtel(), permissions.Get())

	router := chi.NewRouter()
	router.Group(func(r chi.Router) {
		r.Use(auth.Auth, auth.RBAC)
		r.Get("/admin/login", ok)
		r.Get("/admin", ok)
		r.Get("/admin/booking/{id}", ok)
	})

	return router
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		cookie       string
		setup        func(admin *adminMocks.MockAdmin)
		wantStatus   int
		wantBody     string
		wantLocation string
	}{
		{
			name:       "login page is public",
			path:       "/admin/login",
			wantStatus: http.StatusOK,
			wantBody:   "ok:",
		},
		{
			name: "no session",
			path: "/admin",
			setup: func(admin *adminMocks.MockAdmin) {
				admin.EXPECT().Authenticate(gomock.Any(), "").Return(adminDto.Session{}, adminService.ErrLoginRequired)
			},
			wantStatus:   http.StatusUnauthorized,
			wantBody:     "Please login to access admin panel.",
			wantLocation: "/admin/login",
		},
		{
			name:   "valid cookie",
			path:   "/admin/booking/b-1",
			cookie: "signed",
			setup: func(admin *adminMocks.MockAdmin) {
				admin.EXPECT().Authenticate(gomock.Any(), "signed").Return(adminDto.Session{Username: "admin", Role: constant.RoleAdmin}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   "ok:admin",
		},
		{
			name:   "role without access",
			path:   "/admin",
			cookie: "signed",
			setup: func(admin *adminMocks.MockAdmin) {
				admin.EXPECT().Authenticate(gomock.Any(), "signed").Return(adminDto.Session{Username: "viewer", Role: "viewer"}, nil)
			},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			admin := adminMocks.NewMockAdmin(ctrl)

			if tt.setup != nil {
				tt.setup(admin)
			}

			request := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constant.CookieAdminSession, Value: tt.cookie})
			}

			recorder := httptest.NewRecorder()
			newAdminRouter(t, admin).ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Contains(t, recorder.Body.String(), tt.wantBody)
			assert.Equal(t, tt.wantLocation, recorder.Header().Get(constant.RequestHeaderLocation))
		})
	}
}

type ensurer struct {
	err   error
	calls int
}

func (e *ensurer) Ensure(_ context.Context) error {
	e.calls++

	return e.err
}

func TestSchema(t *testing.T) {
	t.Run("unavailable database", func(t *testing.T) {
		schema := &ensurer{err: errors.New("connection refused")}
		handler := middleware.Schema(schema, "/health")(http.HandlerFunc(ok))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
		assert.Equal(t, 1, schema.calls)
	})

	t.Run("skipped path", func(t *testing.T) {
		schema := &ensurer{err: errors.New("connection refused")}
		handler := middleware.Schema(schema, "/health")(http.HandlerFunc(ok))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Zero(t, schema.calls)
	})

	t.Run("disabled", func(t *testing.T) {
		handler := middleware.Schema(nil)(http.HandlerFunc(ok))

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/register", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestCSRF(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.CSRF.Enable = true
	cfg.App.SecretKey = "test-secret"

	handler := middleware.CSRF(cfg)(http.HandlerFunc(ok))

	t.Run("get exposes a token", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.NotEmpty(t, recorder.Header().Get(constant.RequestHeaderCSRFToken))
	})

	t.Run("post without token is rejected", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader("username=admin")))

		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("post with token from the previous response", func(t *testing.T) {
		first := httptest.NewRecorder()
		handler.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/admin/login", nil))

		request := httptest.NewRequest(http.MethodPost, "/admin/login", nil)
		request.Header.Set(constant.RequestHeaderCSRFToken, first.Header().Get(constant.RequestHeaderCSRFToken))

		for _, cookie := range first.Result().Cookies() {
			request.AddCookie(cookie)
		}

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("bearer clients are not checked", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/admin/booking/b-1/delete", nil)
		request.Header.Set(constant.RequestHeaderAuthorization, "Bearer signed")

		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("other authorization schemes are still checked", func(t *testing.T) {
		for _, header := range []string{"Basic eDp5", "Bearer ", "bearer signed"} {
			request := httptest.NewRequest(http.MethodPost, "/admin/booking/b-1/delete", nil)
			request.Header.Set(constant.RequestHeaderAuthorization, header)
			request.AddCookie(&http.Cookie{Name: constant.CookieAdminSession, Value: "signed"})

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, http.StatusForbidden, recorder.Code, header)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		passthrough := middleware.CSRF(&config.Config{})(http.HandlerFunc(ok))

		recorder := httptest.NewRecorder()
		passthrough.ServeHTTP(recorder, httptest.NewRequest(http.MethodPost, "/register", nil))

		require.Equal(t, http.StatusOK, recorder.Code)
	})
}
