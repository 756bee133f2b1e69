package app

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"

	"nautikos_backend/internal/config"
	"nautikos_backend/internal/email"
	"nautikos_backend/internal/models"
	"nautikos_backend/internal/repositories"
	"nautikos_backend/internal/services"
	"nautikos_backend/internal/services/dto"
	"nautikos_backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Defaults()
	cfg.Server.Env = "test"
	cfg.JWT.Secret = "router-test-secret"
	cfg.Storage.BasePath = t.TempDir()
	cfg.Billing.WebhookSecret = "whsec_router"
	return cfg
}

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	deps   services.Dependencies
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig(t)
	deps, err := NewDependencies(cfg)
	require.NoError(t, err)

	db := testutil.NewDB(t)
	return &testServer{router: SetupRouter(cfg, db, deps), db: db, deps: deps}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		token, _, err := s.deps.Tokens.GenerateToken(user.ID, user.Role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateJobSeekerUser(t, s.db)

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: user.Email, Password: testutil.Password}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, user.ID, resp.User.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+resp.AccessToken)
	me := httptest.NewRecorder()
	s.router.ServeHTTP(me, req)
	assert.Equal(t, http.StatusOK, me.Code)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: user.Email, Password: "wrong-password"}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOnboardingStatusRoute(t *testing.T) {
	s := newTestServer(t)

	t.Run("no token", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/v1/onboarding/status", nil, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/status", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong role", func(t *testing.T) {
		moderator := testutil.CreateModerator(t, s.db)
		w := s.do(t, http.MethodGet, "/api/v1/onboarding/status", nil, moderator)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("job seeker", func(t *testing.T) {
		user := testutil.CreateJobSeekerUser(t, s.db)
		w := s.do(t, http.MethodGet, "/api/v1/onboarding/status", nil, user)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var status dto.OnboardingStatus
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
		assert.Empty(t, status.RedirectTo)
		assert.False(t, status.HasAccess)
		assert.False(t, status.CanComplete)
		assert.NotEmpty(t, status.Stages)
	})
}

func TestSeedFirstAdmin(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testConfig(t)
	cfg.FirstAdminEmail = "  Ops@Nautikos.ae "
	cfg.FirstAdminPassword = testutil.Password

	require.NoError(t, seedFirstAdmin(db, cfg))
	require.NoError(t, seedFirstAdmin(db, cfg))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("role = ?", models.UserRoleAdmin).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	admin, err := repositories.NewUserRepository().FindByEmail(db, "ops@nautikos.ae")
	require.NoError(t, err)
	assert.True(t, admin.IsVerified)
	assert.True(t, admin.IsOnboarded)
}

func TestSeedFirstAdmin_SkipsWithoutCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	require.NoError(t, seedFirstAdmin(db, testConfig(t)))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Domain  string            `json:"domain"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestScreeningRoute_RejectsTwoSlots(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateJobSeekerUser(t, s.db)

	w := s.do(t, http.MethodPut, "/api/v1/onboarding/screening", dto.ScreeningRequest{
		AvailabilitySlots: []dto.AvailabilitySlotInput{
			{Day: models.Days[0], StartTime: "09:00", EndTime: "11:00"},
			{Day: models.Days[1], StartTime: "09:00", EndTime: "11:00"},
		},
	}, user)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	body := decodeError(t, w)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.Contains(t, body.Error.Details, "availabilitySlots")

	_, err := repositories.NewJobSeekerRepository().FindByUserID(s.db, user.ID)
	assert.ErrorIs(t, err, repositories.ErrJobSeekerNotFound)
}

func TestEvaluationRoute_ForbiddenForJobSeeker(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateJobSeekerUser(t, s.db)

	w := s.do(t, http.MethodPut, "/api/v1/moderation/candidates/"+models.NewID()+"/evaluation", dto.EvaluationRequest{}, user)
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
}

func TestCompanySearchRoute_Limit(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateJobSeekerUser(t, s.db)
	testutil.CreateCompany(t, s.db, "Gulf Navigation")
	testutil.CreateCompany(t, s.db, "DP World")

	w := s.do(t, http.MethodGet, "/api/v1/reference/companies?limit=1", nil, user)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		Companies []map[string]interface{} `json:"companies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Companies, 1)

	w = s.do(t, http.MethodGet, "/api/v1/reference/companies?limit=abc", nil, user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, http.MethodGet, "/api/v1/reference/companies?limit=500", nil, user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

var codePattern = regexp.MustCompile(`<strong>(\d{6})</strong>`)

func lastCode(t *testing.T, s *testServer) string {
	t.Helper()
	sent := s.deps.EmailProvider.(*email.LogProvider).Sent()
	require.NotEmpty(t, sent)
	m := codePattern.FindStringSubmatch(sent[len(sent)-1].HTMLBody)
	require.Len(t, m, 2)
	return m[1]
}

func TestSignUpRoutes(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{Email: "Sailor@Example.com", Password: testutil.Password}, nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	// Registering again before verifying re-sends a code.
	w = s.do(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{Email: "sailor@example.com", Password: testutil.Password}, nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	code := lastCode(t, s)

	w = s.do(t, http.MethodPost, "/api/v1/auth/verify", dto.VerifyEmailRequest{Email: "sailor@example.com", Code: code}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var auth dto.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &auth))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding/status", nil)
	req.Header.Set("Authorization", "Bearer "+auth.AccessToken)
	status := httptest.NewRecorder()
	s.router.ServeHTTP(status, req)
	assert.Equal(t, http.StatusOK, status.Code, status.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/register", dto.RegisterRequest{Email: "SAILOR@example.com", Password: testutil.Password}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ALREADY_EXISTS", decodeError(t, w).Error.Code)
}

func TestPasswordResetRoutes(t *testing.T) {
	s := newTestServer(t)
	user := testutil.CreateJobSeekerUser(t, s.db)

	w := s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", dto.PasswordResetRequest{Email: "nobody@example.com"}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	unknown := w.Body.String()

	w = s.do(t, http.MethodPost, "/api/v1/auth/forgot-password", dto.PasswordResetRequest{Email: user.Email}, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, unknown, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/reset-password", dto.ResetPasswordRequest{Email: user.Email, Code: lastCode(t, s), Password: "new-Passw0rd!"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", dto.LoginRequest{Email: user.Email, Password: "new-Passw0rd!"}, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
