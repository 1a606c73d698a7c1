package middleware_test

import (
	"errors"
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	otelMocks "hotel/infras/otel/mocks"
	"hotel/permissions"
	"hotel/shared"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var table = &permissions.PermissionData{
	Endpoints: []permissions.Permission{
		{Path: "/v1/auth/login", Method: http.MethodPost, Skip: true},
		{Path: "/v1/bookings/{id}", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin, constant.RoleStaff, constant.RoleGuest}},
		{Path: "/v1/bookings/export", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin, constant.RoleStaff}},
	},
}

func newAuthRouter(t *testing.T, cfg *config.Config) (http.Handler, *jwtMocks.MockJWT) {
	t.Helper()

	ctrl := gomock.NewController(t)
	tokens := jwtMocks.NewMockJWT(ctrl)

	m := middleware.NewAuthRoleMiddleware(tokens, otelMocks.NewOtel(), table, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		actor := shared.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(actor.UserID + "|" + actor.Role.Name))
	}

	router := chi.NewRouter()
	router.Use(m.APIKey, m.Auth, m.RBAC)
	router.Route("/v1", func(r chi.Router) {
		r.Post("/auth/login", echo)
		r.Get("/bookings/export", echo)
		r.Get("/bookings/{id}", echo)
	})

	return router, tokens
}

func TestAuthRole(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tests := []struct {
		name      string
		method    string
		target    string
		headers   map[string]string
		setupMock func(tokens *jwtMocks.MockJWT)
		wantCode  int
		wantBody  string
	}{
		{
			name:      "public endpoint",
			method:    http.MethodPost,
			target:    "/v1/auth/login",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
			wantBody:  "|",
		},
		{
			name:      "missing token",
			method:    http.MethodGet,
			target:    "/v1/bookings/booking-1",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:      "not a bearer header",
			method:    http.MethodGet,
			target:    "/v1/bookings/booking-1",
			headers:   map[string]string{constant.RequestHeaderAuthorization: "Basic abc"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			target:  "/v1/bookings/booking-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "claims without a role",
			method:  http.MethodGet,
			target:  "/v1/bookings/booking-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("token", jwt.AccessToken).Return(&jwt.Claims{UserID: "guest-1"}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "guest reads a booking",
			method:  http.MethodGet,
			target:  "/v1/bookings/booking-1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "guest-1", Email: "jane@example.com", Role: constant.RoleGuest}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "guest-1|guest",
		},
		{
			name:    "guest cannot export",
			method:  http.MethodGet,
			target:  "/v1/bookings/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "guest-1", Role: constant.RoleGuest}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:    "cleaner alias counts as staff",
			method:  http.MethodGet,
			target:  "/v1/bookings/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(tokens *jwtMocks.MockJWT) {
				tokens.EXPECT().ValidateToken("token", jwt.AccessToken).
					Return(&jwt.Claims{UserID: "staff-1", Role: "cleaner"}, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "staff-1|staff",
		},
		{
			name:      "internal caller acts as system",
			method:    http.MethodGet,
			target:    "/v1/bookings/export",
			headers:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
			wantBody:  "system|system",
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			target:    "/v1/bookings/export",
			headers:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, tokens := newAuthRouter(t, cfg)
			tt.setupMock(tokens)

			req := httptest.NewRequest(tt.method, tt.target, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestAppMiddleware_RateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		count         int64
		err           error
		wantCode      int
		wantRemaining string
	}{
		{name: "first request", count: 1, wantCode: http.StatusOK, wantRemaining: "1"},
		{name: "last allowed", count: 2, wantCode: http.StatusOK, wantRemaining: "0"},
		{name: "over the limit", count: 3, wantCode: http.StatusTooManyRequests, wantRemaining: "0"},
		{name: "redis down fails open", err: errors.New("connection refused"), wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			cache := cacheMocks.NewMockRedisCache(ctrl)

			cache.EXPECT().Increment(gomock.Any(), "limiter:203.0.113.7:test-agent", 60).Return(tt.count, tt.err)

			m := middleware.NewAppMiddleware(otelMocks.NewOtel(), cfg, cache)

			req := httptest.NewRequest(http.MethodGet, "/v1/rooms/availability", nil)
			req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.7, 10.0.0.1")
			req.Header.Set(constant.RequestHeaderUserAgent, "test-agent")

			rec := httptest.NewRecorder()
			m.RateLimit()(ok).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}

	t.Run("disabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		m := middleware.NewAppMiddleware(otelMocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

		rec := httptest.NewRecorder()
		m.RateLimit()(ok).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestAppMiddleware_Tracing(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantErrors int
	}{
		{"client error is not a span error", http.StatusTeapot, 0},
		{"server error is traced", http.StatusServiceUnavailable, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := otelMocks.NewRecorder()
			m := middleware.NewAppMiddleware(recorder, &config.Config{}, nil)

			router := chi.NewRouter()
			router.Use(m.Tracing)
			router.Get("/v1/rooms/{id}", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
			})

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/rooms/r-1", nil))

			assert.Equal(t, tt.status, rec.Code)

			scope := recorder.Scope("GET /v1/rooms/r-1")
			require.NotNil(t, scope)
			assert.True(t, scope.Ended())
			assert.Equal(t, "/v1/rooms/{id}", scope.Attribute("http.route"))
			assert.Equal(t, tt.status, scope.Attribute("http.status_code"))
			assert.Len(t, scope.Errors(), tt.wantErrors)
		})
	}
}
