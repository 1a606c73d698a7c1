package http

import (
	"hotel/config"
	"hotel/infras/jwt"
	jwtMocks "hotel/infras/jwt/mocks"
	otelMocks "hotel/infras/otel/mocks"
	authDto "hotel/internal/domains/auth/model/dto"
	authMocks "hotel/internal/domains/auth/service/mocks"
	bookingDto "hotel/internal/domains/booking/model/dto"
	bookingMocks "hotel/internal/domains/booking/service/mocks"
	roomMocks "hotel/internal/domains/room/service/mocks"
	authHandler "hotel/internal/handlers/auth"
	bookingHandler "hotel/internal/handlers/booking"
	roomHandler "hotel/internal/handlers/room"
	"hotel/permissions"
	cacheMocks "hotel/shared/cache/mocks"
	"hotel/shared/constant"
	"hotel/transport/http/middleware"
	"hotel/transport/http/router"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type server struct {
	*HTTP
	tokens   *jwtMocks.MockJWT
	auth     *authMocks.MockAuth
	bookings *bookingMocks.MockBooking
}

func newServer(t *testing.T) server {
	t.Helper()

	ctrl := gomock.NewController(t)
	ot := otelMocks.NewOtel()

	cfg := &config.Config{}
	cfg.Server.Env = constant.ServerEnvProduction

	perms := permissions.Get()
	require.NotNil(t, perms)

	s := server{
		tokens:   jwtMocks.NewMockJWT(ctrl),
		auth:     authMocks.NewMockAuth(ctrl),
		bookings: bookingMocks.NewMockBooking(ctrl),
	}

	routes := router.New(router.DomainHandlers{
		Auth:    authHandler.New(s.auth, ot),
		Room:    roomHandler.New(roomMocks.NewMockRoom(ctrl), ot),
		Booking: bookingHandler.New(s.bookings, ot),
	})

	s.HTTP = New(cfg, routes,
		middleware.NewAppMiddleware(ot, cfg, cacheMocks.NewMockRedisCache(ctrl)),
		middleware.NewAuthRoleMiddleware(s.tokens, ot, perms, cfg),
	)

	return s
}

func (s server) do(method, target, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	return rec
}

func TestHTTP_Health(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/health", "", "").Code)

	s.setState(ServerStateInGracePeriod)
	assert.Equal(t, http.StatusServiceUnavailable, s.do(http.MethodGet, "/health", "", "").Code)
}

func TestHTTP_CleanupPeriodRejectsRequests(t *testing.T) {
	s := newServer(t)
	s.setup()
	s.setState(ServerStateInCleanupPeriod)

	rec := s.do(http.MethodPost, "/v1/auth/login", `{"email":"jane@example.com","password":"x"}`, "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), constant.ResponseErrorPrepareShutdown)
}

func TestHTTP_Routes(t *testing.T) {
	t.Run("login is public", func(t *testing.T) {
		s := newServer(t)

		s.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(authDto.LoginResponse{AccessToken: "access"}, nil)

		rec := s.do(http.MethodPost, "/v1/auth/login", `{"email":"jane@example.com","password":"s3cret-pass"}`, "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("bookings need a token", func(t *testing.T) {
		s := newServer(t)

		assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/v1/bookings", "", "").Code)
	})

	t.Run("guest lists bookings", func(t *testing.T) {
		s := newServer(t)

		s.tokens.EXPECT().ValidateToken("guest-token", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "guest-1", Role: constant.RoleGuest}, nil)
		s.bookings.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingDto.GetBookingsResponse{}, nil)

		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/bookings", "", "guest-token").Code)
	})

	t.Run("guest cannot export", func(t *testing.T) {
		s := newServer(t)

		s.tokens.EXPECT().ValidateToken("guest-token", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "guest-1", Role: constant.RoleGuest}, nil)

		assert.Equal(t, http.StatusForbidden, s.do(http.MethodGet, "/v1/bookings/export", "", "guest-token").Code)
	})

	t.Run("staff sees active bookings", func(t *testing.T) {
		s := newServer(t)

		s.tokens.EXPECT().ValidateToken("staff-token", jwt.AccessToken).
			Return(&jwt.Claims{UserID: "staff-1", Role: constant.RoleStaff}, nil)
		s.bookings.EXPECT().GetActive(gomock.Any(), gomock.Any(), gomock.Any()).Return(bookingDto.GetBookingsResponse{}, nil)

		assert.Equal(t, http.StatusOK, s.do(http.MethodGet, "/v1/bookings/active", "", "staff-token").Code)
	})

	t.Run("swagger is hidden in production", func(t *testing.T) {
		s := newServer(t)

		assert.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/swagger/index.html", "", "").Code)
	})

	t.Run("unknown paths answer in json", func(t *testing.T) {
		s := newServer(t)

		rec := s.do(http.MethodGet, "/v2/bookings", "", "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())
	})

	t.Run("wrong method", func(t *testing.T) {
		s := newServer(t)

		assert.Equal(t, http.StatusMethodNotAllowed, s.do(http.MethodPut, "/health", "", "").Code)
	})
}
