package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/api/http/handlers"
	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/mocks"
	"github.com/spec-kit/pet-service/internal/observability"
	"github.com/spec-kit/pet-service/internal/repository"
	"github.com/spec-kit/pet-service/internal/service"
)

const (
	testSecret   = "router-test-secret-router-test-secret"
	aliceOwnerID = "6f1c1d9e-3b2a-4c1d-8e2f-000000000001"
	rexPetID     = "7a2b3c4d-5e6f-4a1b-9c2d-000000000001"
)

type testServer struct {
	app     *fiber.App
	users   *mocks.MockUserRepository
	owners  *mocks.MockOwnerRepository
	pets    *mocks.MockPetRepository
	tokens  *auth.TokenService
	metrics *observability.Metrics
}

type errorBody struct {
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

var routerNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)
	s := &testServer{
		users:   mocks.NewMockUserRepository(ctrl),
		owners:  mocks.NewMockOwnerRepository(ctrl),
		pets:    mocks.NewMockPetRepository(ctrl),
		metrics: observability.NewMetrics(),
	}

	stored := map[string]*domain.User{
		"alice": {ID: "u-alice", Username: "alice", Enabled: true, Roles: []domain.Role{domain.RoleUser}},
		"admin": {ID: "u-admin", Username: "admin", Enabled: true, Roles: []domain.Role{domain.RoleAdmin, domain.RoleUser}},
	}
	s.users.EXPECT().GetByUsername(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, username string) (*domain.User, error) {
			if u, ok := stored[username]; ok {
				return u, nil
			}
			return nil, pgx.ErrNoRows
		}).AnyTimes()

	s.tokens = auth.NewTokenService(testSecret, time.Hour, s.users, auth.WithClock(func() time.Time { return routerNow }))
	logger := zap.NewNop()
	dispatcher := events.NewInMemoryDispatcher()
	clock := func() time.Time { return routerNow }

	authService := service.NewAuthService(config.AuthConfig{BcryptCost: 4}, service.AuthDependencies{
		UserRepo: s.users, OwnerRepo: s.owners, Tokens: s.tokens, Dispatcher: dispatcher, Logger: logger,
	})
	userService := service.NewUserService(service.UserDependencies{
		UserRepo: s.users, OwnerRepo: s.owners, Dispatcher: dispatcher, Logger: logger,
	})
	ownerService := service.NewOwnerService(service.OwnerDependencies{
		OwnerRepo: s.owners, PetRepo: s.pets, Dispatcher: dispatcher, Logger: logger,
	})
	petService := service.NewPetService(service.PetDependencies{
		PetRepo: s.pets, OwnerRepo: s.owners, Dispatcher: dispatcher, Logger: logger, Now: clock,
	})
	statsService := service.NewStatisticsService(service.StatisticsDependencies{
		OwnerRepo: s.owners, PetRepo: s.pets, Logger: logger,
	})

	s.app = fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger, s.metrics)})
	RegisterMiddlewares(s.app, logger, s.metrics, time.Second)
	RegisterRoutes(s.app, RouteConfig{
		Health:     handlers.NewHealthHandler("pet-service", "test", nil, nil, s.metrics),
		Users:      handlers.NewUsersHandler(authService, userService),
		Owners:     handlers.NewOwnersHandler(ownerService, clock),
		Pets:       handlers.NewPetsHandler(petService),
		Statistics: handlers.NewStatisticsHandler(statsService),
		Gate:       auth.NewGate(s.tokens, logger),
	})
	return s
}

func (s *testServer) bearer(t *testing.T, subject string) string {
	t.Helper()
	token, _, err := s.tokens.Issue(subject, nil)
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, path, authorization, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeError(t *testing.T, raw []byte) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func aliceOwner() *domain.Owner {
	userID := "u-alice"
	return &domain.Owner{ID: aliceOwnerID, UserID: &userID, FirstName: "Alice", LastName: "Smith", Email: "alice@example.com"}
}

func TestDeleteOwnerRequiresAdmin(t *testing.T) {
	s := newTestServer(t)
	owner := aliceOwner()
	ownerID := owner.ID

	status, raw := s.do(t, fiber.MethodDelete, "/api/owners/"+aliceOwnerID, s.bearer(t, "alice"), "")
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "ACCESS_DENIED", decodeError(t, raw).Error.Code)

	// the owner is still readable after the rejected delete
	s.owners.EXPECT().GetByID(gomock.Any(), aliceOwnerID).Return(owner, nil)
	s.pets.EXPECT().List(gomock.Any(), repository.PetFilter{OwnerID: &ownerID}).Return([]domain.Pet{}, nil)
	status, raw = s.do(t, fiber.MethodGet, "/api/owners/"+aliceOwnerID, "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `"fullName":"Alice Smith"`)

	s.owners.EXPECT().GetByID(gomock.Any(), aliceOwnerID).Return(owner, nil)
	s.owners.EXPECT().Delete(gomock.Any(), aliceOwnerID).Return(nil)
	status, _ = s.do(t, fiber.MethodDelete, "/api/owners/"+aliceOwnerID, s.bearer(t, "admin"), "")
	require.Equal(t, fiber.StatusNoContent, status)

	s.owners.EXPECT().GetByID(gomock.Any(), aliceOwnerID).Return(nil, pgx.ErrNoRows)
	status, raw = s.do(t, fiber.MethodGet, "/api/owners/"+aliceOwnerID, "", "")
	require.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", decodeError(t, raw).Error.Code)
}

func TestUnauthenticatedRequestsOnProtectedRoutes(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		subject string
	}{
		{name: "no header"},
		{name: "basic scheme", header: "Basic YWxpY2U6c2VjcmV0"},
		{name: "lowercase scheme", header: "bearer abc"},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "unknown subject", subject: "ghost"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestServer(t)
			header := tt.header
			if tt.subject != "" {
				header = s.bearer(t, tt.subject)
			}

			status, raw := s.do(t, fiber.MethodDelete, "/api/pets/"+rexPetID, header, "")
			require.Equal(t, fiber.StatusUnauthorized, status)
			assert.Equal(t, "UNAUTHORIZED", decodeError(t, raw).Error.Code)

			status, _ = s.do(t, fiber.MethodGet, "/api/users/me", header, "")
			require.Equal(t, fiber.StatusUnauthorized, status)
		})
	}
}

func TestPublicRoutesIgnoreBadTokens(t *testing.T) {
	s := newTestServer(t)
	s.owners.EXPECT().List(gomock.Any(), "").Return([]domain.Owner{}, nil)

	status, raw := s.do(t, fiber.MethodGet, "/api/owners", "Bearer not.a.jwt", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"data":[]}`, string(raw))
}

func TestAdminRouteGuard(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodPut, "/api/admin/users/alice/roles", s.bearer(t, "alice"), `{"roles":["ADMIN"]}`)
	require.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "ACCESS_DENIED", decodeError(t, raw).Error.Code)

	s.users.EXPECT().SetRoles(gomock.Any(), "u-alice", []domain.Role{domain.RoleAdmin, domain.RoleUser}).Return(nil)
	status, raw = s.do(t, fiber.MethodPut, "/api/admin/users/alice/roles", s.bearer(t, "admin"), `{"roles":["user","ADMIN"]}`)
	require.Equal(t, fiber.StatusOK, status, string(raw))
	assert.Contains(t, string(raw), `"username":"alice"`)
}

func TestListPetsRejectsUnknownType(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodGet, "/api/pets?type=DRAGON", "", "")
	require.Equal(t, fiber.StatusBadRequest, status)
	body := decodeError(t, raw)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "type")
}

func TestStatisticsEndpoint(t *testing.T) {
	s := newTestServer(t)
	s.owners.EXPECT().Count(gomock.Any()).Return(int64(2), nil)
	s.pets.EXPECT().Count(gomock.Any()).Return(int64(5), nil)
	s.pets.EXPECT().CountByType(gomock.Any()).Return(map[domain.PetType]int64{domain.PetTypeDog: 3, domain.PetTypeCat: 2}, nil)

	status, raw := s.do(t, fiber.MethodGet, "/api/statistics", "", "")
	require.Equal(t, fiber.StatusOK, status)

	var body struct {
		Data domain.Statistics `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, int64(2), body.Data.AveragePetsPerOwner)
	assert.Len(t, body.Data.PetsByType, len(domain.PetTypes))
	assert.Equal(t, int64(0), body.Data.PetsByType[domain.PetTypeFish])
}

func TestLoginFailuresShareOneResponse(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodPost, "/api/auth/login", "", `{"username":"ghost","password":"whatever"}`)
	require.Equal(t, fiber.StatusUnauthorized, status)
	body := decodeError(t, raw)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Error.Code)
	assert.Equal(t, "invalid username or password", body.Error.Message)

	status, _ = s.do(t, fiber.MethodPost, "/api/auth/login", "", `{"username":"alice"}`)
	require.Equal(t, fiber.StatusBadRequest, status)
}

func TestRequestIDAndUnknownRoute(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/nowhere", nil)
	req.Header.Set("X-Request-ID", "req-42")
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "req-42", resp.Header.Get("X-Request-ID"))

	status, raw := s.do(t, fiber.MethodGet, "/health/live", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(raw), `"alive"`)
	assert.NotEmpty(t, s.metrics.Snapshot().Errors)
}

func TestReadinessWithoutDependencies(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodGet, "/health/ready", "", "")
	require.Equal(t, fiber.StatusServiceUnavailable, status)
	body := decodeError(t, raw)
	assert.Equal(t, "DEPENDENCY_UNAVAILABLE", body.Error.Code)
	assert.Equal(t, "not configured", body.Error.Details["postgres"])
}

func TestMalformedIDsAreNotFound(t *testing.T) {
	s := newTestServer(t)

	status, raw := s.do(t, fiber.MethodGet, "/api/pets/not-a-uuid", "", "")
	require.Equal(t, fiber.StatusNotFound, status)
	body := decodeError(t, raw)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "pet not found", body.Error.Message)

	status, _ = s.do(t, fiber.MethodGet, "/api/owners/abc/pets", "", "")
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(t, fiber.MethodDelete, "/api/pets/not-a-uuid", s.bearer(t, "admin"), "")
	require.Equal(t, fiber.StatusNotFound, status)

	status, _ = s.do(t, fiber.MethodDelete, "/api/pets/not-a-uuid", "", "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, raw = s.do(t, fiber.MethodGet, "/api/pets?ownerId=nope", "", "")
	require.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, raw).Error.Code)
}
