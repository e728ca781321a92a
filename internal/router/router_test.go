package router

import (
	"database/sql/driver"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/repository"
	"github.com/klasstra/klasstra-api/internal/service"
	"github.com/klasstra/klasstra-api/pkg/config"
	"github.com/klasstra/klasstra-api/pkg/ratelimit"
	"github.com/klasstra/klasstra-api/pkg/storage"
)

var userRowColumns = []string{"id", "username", "email", "password_hash", "role", "first_name", "last_name", "created_at", "updated_at"}

// captureArg matches any value and keeps it.
type captureArg struct {
	value *string
}

func (a captureArg) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*a.value = s
	}
	return ok
}

type testServer struct {
	engine *gin.Engine
	mock   sqlmock.Sqlmock
	auth   *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	db := sqlx.NewDb(raw, "sqlmock")

	cfg := &config.Config{Env: config.EnvDevelopment}
	cfg.Upload.Dir = t.TempDir()
	cfg.Upload.PublicBaseURL = "http://127.0.0.1:8000"

	users := repository.NewUserRepository(db)
	classes := repository.NewClassRepository(db)
	children := repository.NewChildRepository(db)
	teacherClasses := repository.NewTeacherClassRepository(db)
	announcements := repository.NewAnnouncementRepository(db)
	audits := repository.NewAuditRepository(db)

	store, err := storage.NewLocalStorage(cfg.Upload.Dir)
	require.NoError(t, err)

	validate := service.NewValidator()
	metrics := service.NewMetricsService()
	auth := service.NewAuthService(users, validate, nil, service.AuthConfig{Secret: "router-secret", Expiration: time.Hour})

	engine := New(Dependencies{
		Config:        cfg,
		DB:            db,
		Metrics:       metrics,
		Limiter:       ratelimit.New(ratelimit.NewMemoryStore(), 5, time.Minute),
		Auth:          auth,
		Users:         service.NewUserService(users, validate, nil),
		Classes:       service.NewClassService(classes, nil, validate, nil),
		Children:      service.NewChildService(children, classes, validate, nil),
		Announcements: service.NewAnnouncementService(announcements, users, classes, children, teacherClasses, validate, nil),
		Admin:         service.NewAdminService(users, classes, teacherClasses, validate, nil),
		Audit:         service.NewAuditService(audits, nil),
		Parents:       service.NewParentService(users, nil),
		Uploads:       service.NewUploadService(store, cfg.Upload.PublicBaseURL, nil),
		AI:            service.NewAIService(nil, metrics, validate, nil),
	})
	return &testServer{engine: engine, mock: mock, auth: auth}
}

func (s *testServer) do(req *http.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) token(t *testing.T, id int64, username string, role models.UserRole) string {
	t.Helper()
	token, _, err := s.auth.IssueToken(&models.User{ID: id, Username: username, Role: role})
	require.NoError(t, err)
	return token
}

func TestRegisterLoginAndMe(t *testing.T) {
	s := newTestServer(t)
	created := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)

	var hash string
	s.mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE username = $1 OR email = $2)")).
		WithArgs("mum", "mum@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	s.mock.ExpectQuery("INSERT INTO users").
		WithArgs("mum", "mum@example.com", captureArg{value: &hash}, models.RoleParent, "Anna", "Berg", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	body := `{"username":"mum","first_name":"Anna","last_name":"Berg","email":"mum@example.com","password":"correct horse","role":"parent"}`
	req := httptest.NewRequest(http.MethodPost, "/users/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "password")
	require.NotEmpty(t, hash)

	s.mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 OR email = $1")).
		WithArgs("mum@example.com").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "mum", "mum@example.com", hash, "parent", "Anna", "Berg", created, nil))

	form := url.Values{"username": {"mum@example.com"}, "password": {"correct horse"}}
	req = httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = s.do(req, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, "bearer", login.TokenType)
	assert.Equal(t, int64(3600), login.ExpiresIn)

	s.mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE username = $1 LIMIT 1")).
		WithArgs("mum").
		WillReturnRows(sqlmock.NewRows(userRowColumns).AddRow(1, "mum", "mum@example.com", hash, "parent", "Anna", "Berg", created, nil))

	w = s.do(httptest.NewRequest(http.MethodGet, "/users/me", nil), login.AccessToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"username":"mum"`)

	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestLoginRejectsBadPassword(t *testing.T) {
	s := newTestServer(t)
	s.mock.ExpectQuery(regexp.QuoteMeta("WHERE username = $1 OR email = $1")).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows(userRowColumns))

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"ghost","password":"whatever1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	assert.JSONEq(t, `{"detail":"incorrect username or password","code":"INVALID_CREDENTIALS"}`, w.Body.String())
}

func TestRouteGates(t *testing.T) {
	s := newTestServer(t)
	parent := s.token(t, 2, "mum", models.RoleParent)
	teacher := s.token(t, 3, "mr_t", models.RoleTeacher)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"me without token", http.MethodGet, "/users/me", "", http.StatusUnauthorized},
		{"parent creating class", http.MethodPost, "/classes/", parent, http.StatusForbidden},
		{"parent posting announcement", http.MethodPost, "/announcements/", parent, http.StatusForbidden},
		{"teacher listing children", http.MethodGet, "/children/my", teacher, http.StatusForbidden},
		{"parent in teacher area", http.MethodGet, "/teacher/my-classes", parent, http.StatusForbidden},
		{"teacher in admin area", http.MethodGet, "/admin/audit-logs", teacher, http.StatusForbidden},
		{"parent roster as teacher", http.MethodGet, "/parents/", teacher, http.StatusForbidden},
		{"ai as parent", http.MethodPost, "/ai/generate", parent, http.StatusForbidden},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(httptest.NewRequest(tc.method, tc.path, nil), tc.token)
			assert.Equal(t, tc.want, w.Code)
		})
	}
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestPublicClassListAndHealth(t *testing.T) {
	s := newTestServer(t)
	now := time.Now()
	s.mock.ExpectQuery(regexp.QuoteMeta("FROM classes ORDER BY name")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).AddRow(1, "5B", now, now))

	w := s.do(httptest.NewRequest(http.MethodGet, "/classes/", nil), "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"5B"`)

	w = s.do(httptest.NewRequest(http.MethodGet, "/health", nil), "")
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = s.do(httptest.NewRequest(http.MethodGet, "/metrics", nil), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
}

func TestAIWithoutKeyReturns500(t *testing.T) {
	s := newTestServer(t)
	teacher := s.token(t, 3, "mr_t", models.RoleTeacher)
	req := httptest.NewRequest(http.MethodPost, "/ai/generate", strings.NewReader(`{"input_text":"trip"}`))
	req.Header.Set("Content-Type", "application/json")
	w := s.do(req, teacher)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "OpenAI API key not configured")
}
