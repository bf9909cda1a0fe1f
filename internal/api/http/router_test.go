package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bruinrecruit/recruitment-service/internal/api/http/handlers"
	"github.com/bruinrecruit/recruitment-service/internal/auth"
	"github.com/bruinrecruit/recruitment-service/internal/config"
	"github.com/bruinrecruit/recruitment-service/internal/domain"
	"github.com/bruinrecruit/recruitment-service/internal/events"
	"github.com/bruinrecruit/recruitment-service/internal/observability"
	"github.com/bruinrecruit/recruitment-service/internal/persistence"
	"github.com/bruinrecruit/recruitment-service/internal/repository/memory"
	"github.com/bruinrecruit/recruitment-service/internal/service"
)

type testServer struct {
	app     *fiber.App
	users   *memory.UserRepository
	seasons *memory.SeasonRepository
	tokens  *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	users := memory.NewUserRepository()
	seasons := memory.NewSeasonRepository()
	apps := memory.NewApplicationRepository()
	dispatcher := events.NewInMemoryDispatcher(logger)

	authSvc := service.NewAuthService(config.AuthConfig{
		JWTSecret: "test", AccessTokenTTLMinutes: 60, BcryptCost: 4, MinPasswordLength: 10,
	}, users, logger)
	appSvc := service.NewApplicationService(service.ApplicationDependencies{
		AppRepo: apps, SeasonRepo: seasons, Dispatcher: dispatcher, Metrics: metrics, Logger: logger,
	})
	seasonSvc := service.NewSeasonService(seasons, dispatcher, logger)

	app := fiber.New()
	RegisterMiddlewares(app, logger, metrics, MiddlewareConfig{Timeout: 5 * time.Second, CORSAllowOrigins: "*"})
	RegisterRoutes(app, RouteConfig{
		Health:         handlers.NewHealthHandler("recruitment-service", "test", &persistence.Postgres{}, &persistence.Redis{}),
		Users:          handlers.NewUsersHandler(authSvc),
		Applications:   handlers.NewApplicationsHandler(appSvc),
		Seasons:        handlers.NewSeasonsHandler(seasonSvc),
		AuthMiddleware: auth.NewAuthMiddleware(authSvc.TokenManager(), users),
		AuthLimiter:    NewAuthLimiter(config.RateLimitConfig{AuthMax: 100, AuthWindowSeconds: 60}, nil),
		Metrics:        metrics.Handler(),
	})
	return &testServer{app: app, users: users, seasons: seasons, tokens: authSvc.TokenManager()}
}

func (s *testServer) token(t *testing.T, email string, access domain.AccessType) string {
	t.Helper()
	user := &domain.User{Email: email, PasswordHash: "x", AccessType: access, State: domain.UserStateActive}
	require.NoError(t, s.users.Create(context.Background(), user))
	token, _, err := s.tokens.GenerateToken(user)
	require.NoError(t, err)
	return token
}

func (s *testServer) openSeason(t *testing.T) *domain.Season {
	t.Helper()
	now := time.Now()
	season := &domain.Season{Name: "Test Season", StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 30)}
	require.NoError(t, s.seasons.Create(context.Background(), season))
	return season
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]any{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out
}

func field(body map[string]any, key string) map[string]any {
	v, _ := body[key].(map[string]any)
	return v
}

func TestApplicationLifecycleOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.openSeason(t)
	user := s.token(t, "normal@ucla.edu", domain.AccessTypeStandard)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	status, body := s.do(t, nethttp.MethodPost, "/applications", user, nil)
	require.Equal(t, nethttp.StatusCreated, status, body)
	app := field(body, "application")
	id := app["id"].(string)
	assert.Equal(t, "IN_PROGRESS", app["status"])
	assert.Equal(t, map[string]any{}, app["profile"])

	status, body = s.do(t, nethttp.MethodPut, "/applications/"+id, user, map[string]any{
		"profile": map[string]any{"firstName": "Joe", "year": 2},
	})
	require.Equal(t, nethttp.StatusOK, status, body)
	assert.Equal(t, "Joe", field(field(body, "application"), "profile")["firstName"])

	status, body = s.do(t, nethttp.MethodPost, "/applications/"+id+"/submit", user, nil)
	require.Equal(t, nethttp.StatusOK, status, body)
	assert.Equal(t, "SUBMITTED", field(body, "application")["status"])
	assert.NotNil(t, field(body, "application")["dateSubmitted"])

	status, body = s.do(t, nethttp.MethodPost, "/applications/"+id+"/submit", user, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.NotEmpty(t, body["message"])

	status, body = s.do(t, nethttp.MethodPost, "/applications/"+id+"/review", admin, map[string]any{
		"application": map[string]any{"status": "SCHEDULE_INTERVIEW", "notes": "strong candidate", "rating": 4},
	})
	require.Equal(t, nethttp.StatusOK, status, body)
	reviewed := field(body, "application")
	assert.Equal(t, "SCHEDULE_INTERVIEW", reviewed["status"])
	assert.Equal(t, "strong candidate", reviewed["notes"])
	assert.EqualValues(t, 4, reviewed["rating"])

	status, body = s.do(t, nethttp.MethodGet, "/applications/"+id, user, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.NotContains(t, field(body, "application"), "notes")
	assert.NotContains(t, field(body, "application"), "rating")

	status, _ = s.do(t, nethttp.MethodPut, "/applications/"+id+"/availability", user, map[string]any{"availability": []string{}})
	assert.Equal(t, nethttp.StatusBadRequest, status)

	slots := []string{"2030-01-02T15:00:00Z", "2030-01-03T15:00:00Z"}
	status, body = s.do(t, nethttp.MethodPut, "/applications/"+id+"/availability", user, map[string]any{"availability": slots})
	require.Equal(t, nethttp.StatusOK, status, body)
	pending := field(body, "application")
	assert.Equal(t, "PENDING_INTERVIEW", pending["status"])
	assert.Len(t, pending["availability"], 2)

	status, body = s.do(t, nethttp.MethodPost, "/applications/"+id+"/review", admin, map[string]any{
		"application": map[string]any{"status": "REJECTED"},
	})
	require.Equal(t, nethttp.StatusOK, status, body)

	status, body = s.do(t, nethttp.MethodGet, "/applications/"+id, user, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "strong candidate", field(body, "application")["notes"])
	assert.NotContains(t, field(body, "application"), "rating")
}

func TestInvalidTransitionLeavesRecordUntouched(t *testing.T) {
	s := newTestServer(t)
	s.openSeason(t)
	user := s.token(t, "normal@ucla.edu", domain.AccessTypeStandard)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	_, body := s.do(t, nethttp.MethodPost, "/applications", user, nil)
	id := field(body, "application")["id"].(string)

	status, body := s.do(t, nethttp.MethodPost, "/applications/"+id+"/review", admin, map[string]any{
		"application": map[string]any{"status": "ACCEPTED"},
	})
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "BAD_REQUEST", field(body, "error")["code"])

	_, body = s.do(t, nethttp.MethodGet, "/applications/"+id, admin, nil)
	assert.Equal(t, "IN_PROGRESS", field(body, "application")["status"])
}

func TestGraderNotesOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.openSeason(t)
	user := s.token(t, "normal@ucla.edu", domain.AccessTypeStandard)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	_, body := s.do(t, nethttp.MethodPost, "/applications", user, nil)
	id := field(body, "application")["id"].(string)
	s.do(t, nethttp.MethodPost, "/applications/"+id+"/submit", user, nil)

	for _, grader := range []string{"ana", "ben"} {
		status, body := s.do(t, nethttp.MethodPost, "/applications/"+id+"/review", admin, map[string]any{
			"application": map[string]any{
				"graderReview": map[string]any{
					"grader":   grader,
					"notes":    "looks good",
					"criteria": []map[string]any{{"criterion": "technical", "score": 4}},
				},
			},
		})
		require.Equal(t, nethttp.StatusOK, status, body)
	}

	_, body = s.do(t, nethttp.MethodGet, "/applications/"+id, admin, nil)
	app := field(body, "application")
	assert.Equal(t, "SUBMITTED", app["status"])
	reviews := app["graderReviews"].([]any)
	require.Len(t, reviews, 2)
	assert.Equal(t, "ana", reviews[0].(map[string]any)["grader"])
	assert.Equal(t, "ben", reviews[1].(map[string]any)["grader"])
}

func TestRoleAndOwnershipOverHTTP(t *testing.T) {
	s := newTestServer(t)
	s.openSeason(t)
	owner := s.token(t, "owner@ucla.edu", domain.AccessTypeStandard)
	other := s.token(t, "other@ucla.edu", domain.AccessTypeStandard)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	_, body := s.do(t, nethttp.MethodPost, "/applications", owner, nil)
	id := field(body, "application")["id"].(string)

	checks := []struct {
		method string
		path   string
		token  string
		body   any
		status int
	}{
		{nethttp.MethodGet, "/applications/" + id, other, nil, nethttp.StatusForbidden},
		{nethttp.MethodPut, "/applications/" + id, other, map[string]any{"profile": map[string]any{}}, nethttp.StatusForbidden},
		{nethttp.MethodPost, "/applications/" + id + "/submit", other, nil, nethttp.StatusForbidden},
		{nethttp.MethodPost, "/applications/" + id + "/review", owner, map[string]any{"application": map[string]any{"status": "SUBMITTED"}}, nethttp.StatusForbidden},
		{nethttp.MethodPut, "/applications/" + id, admin, map[string]any{"profile": map[string]any{}}, nethttp.StatusMethodNotAllowed},
		{nethttp.MethodPut, "/applications/" + id, admin, nil, nethttp.StatusMethodNotAllowed},
		{nethttp.MethodPut, "/applications", admin, nil, nethttp.StatusMethodNotAllowed},
		{nethttp.MethodPut, "/applications/" + id + "/availability", admin, nil, nethttp.StatusMethodNotAllowed},
		{nethttp.MethodDelete, "/applications/" + id, owner, nil, nethttp.StatusMethodNotAllowed},
		{nethttp.MethodDelete, "/applications", admin, nil, nethttp.StatusBadRequest},
		{nethttp.MethodGet, "/applications/missing", admin, nil, nethttp.StatusNotFound},
		{nethttp.MethodGet, "/applications", "", nil, nethttp.StatusUnauthorized},
		{nethttp.MethodGet, "/applications", "garbage", nil, nethttp.StatusUnauthorized},
		{nethttp.MethodGet, "/seasons", owner, nil, nethttp.StatusForbidden},
	}
	for _, c := range checks {
		status, body := s.do(t, c.method, c.path, c.token, c.body)
		assert.Equal(t, c.status, status, "%s %s: %v", c.method, c.path, body)
		assert.NotEmpty(t, body["message"], "%s %s", c.method, c.path)
	}

	bare := httptest.NewRequest(nethttp.MethodPut, "/applications/"+id, nil)
	bare.Header.Set("Authorization", "Bearer "+admin)
	resp, err := s.app.Test(bare, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, nethttp.StatusMethodNotAllowed, resp.StatusCode)

	status, body := s.do(t, nethttp.MethodGet, "/applications", other, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Empty(t, body["applications"])

	status, body = s.do(t, nethttp.MethodDelete, "/applications/"+id, admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.EqualValues(t, 1, body["numDeleted"])
}

func TestAdminListingProjections(t *testing.T) {
	s := newTestServer(t)
	season := s.openSeason(t)
	user := s.token(t, "normal@ucla.edu", domain.AccessTypeStandard)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	_, body := s.do(t, nethttp.MethodPost, "/applications", user, nil)
	id := field(body, "application")["id"].(string)
	s.do(t, nethttp.MethodPut, "/applications/"+id, user, map[string]any{
		"profile": map[string]any{"firstName": "Joe", "phone": "555-0100"},
	})

	status, body := s.do(t, nethttp.MethodGet, "/applications?season="+season.ID, admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	list := body["applications"].([]any)
	require.Len(t, list, 1)
	assert.Equal(t, map[string]any{"firstName": "Joe"}, list[0].(map[string]any)["profile"])
	assert.NotContains(t, list[0].(map[string]any), "availability")

	status, body = s.do(t, nethttp.MethodGet, "/applications", user, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.NotContains(t, body["applications"].([]any)[0].(map[string]any), "profile")

	status, body = s.do(t, nethttp.MethodGet, "/applications?season=other", admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Empty(t, body["applications"])

	status, body = s.do(t, nethttp.MethodGet, "/applications?extended=true", user, nil)
	require.Equal(t, nethttp.StatusOK, status)
	list = body["applications"].([]any)
	require.Len(t, list, 1)
	assert.Contains(t, list[0].(map[string]any), "availability")
}

func TestSeasonEndpoints(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, "admin@ucla.edu", domain.AccessTypeAdmin)

	status, body := s.do(t, nethttp.MethodPost, "/seasons", admin, map[string]any{
		"season": map[string]any{"name": "Fall", "startDate": "2030-09-01T00:00:00Z", "endDate": "2030-12-01T00:00:00Z"},
	})
	require.Equal(t, nethttp.StatusCreated, status, body)
	id := field(body, "season")["id"].(string)

	status, _ = s.do(t, nethttp.MethodPost, "/seasons", admin, map[string]any{
		"season": map[string]any{"name": "Clash", "startDate": "2030-11-01T00:00:00Z", "endDate": "2031-01-01T00:00:00Z"},
	})
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, body = s.do(t, nethttp.MethodPost, "/seasons", admin, map[string]any{
		"season": map[string]any{"startDate": "2031-09-01T00:00:00Z", "endDate": "2031-12-01T00:00:00Z"},
	})
	assert.Equal(t, nethttp.StatusUnprocessableEntity, status)
	assert.Contains(t, body["message"], "name")

	status, body = s.do(t, nethttp.MethodGet, "/seasons", admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.Len(t, body["seasons"], 1)

	status, _ = s.do(t, nethttp.MethodDelete, "/seasons", admin, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)

	status, body = s.do(t, nethttp.MethodDelete, "/seasons/"+id, admin, nil)
	require.Equal(t, nethttp.StatusOK, status)
	assert.EqualValues(t, 1, body["numDeleted"])

	status, _ = s.do(t, nethttp.MethodGet, "/seasons/"+id, admin, nil)
	assert.Equal(t, nethttp.StatusNotFound, status)
}

func TestRegisterAndLoginOverHTTP(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodPost, "/auth/register", "", map[string]any{
		"user": map[string]any{"email": "New@ucla.edu", "password": "longenough1", "confPassword": "longenough1"},
	})
	require.Equal(t, nethttp.StatusCreated, status, body)
	assert.Equal(t, "new@ucla.edu", field(body, "user")["email"])
	assert.NotContains(t, field(body, "user"), "passwordHash")

	status, body = s.do(t, nethttp.MethodPost, "/auth/login", "", map[string]any{"email": "new@ucla.edu", "password": "longenough1"})
	require.Equal(t, nethttp.StatusOK, status, body)
	token := body["token"].(string)

	status, _ = s.do(t, nethttp.MethodGet, "/applications", token, nil)
	assert.Equal(t, nethttp.StatusOK, status)

	status, _ = s.do(t, nethttp.MethodPost, "/auth/login", "", map[string]any{"email": "new@ucla.edu", "password": "nope-nope-nope"})
	assert.Equal(t, nethttp.StatusUnauthorized, status)

	status, _ = s.do(t, nethttp.MethodPost, "/auth/register", "", map[string]any{})
	assert.Equal(t, nethttp.StatusBadRequest, status)
}

func TestCreateWithoutOpenSeason(t *testing.T) {
	s := newTestServer(t)
	user := s.token(t, "normal@ucla.edu", domain.AccessTypeStandard)

	status, body := s.do(t, nethttp.MethodPost, "/applications", user, nil)
	assert.Equal(t, nethttp.StatusBadRequest, status)
	assert.Equal(t, "No recruiting seasons open right now", body["message"])
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(t, nethttp.MethodGet, "/health/ready", "", nil)
	assert.Equal(t, nethttp.StatusOK, status)
	assert.Equal(t, "ready", body["status"])

	req := httptest.NewRequest(nethttp.MethodGet, "/metrics", nil)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "recruitment_http_requests_total")
}
