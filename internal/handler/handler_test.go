package handler

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/klasstra/klasstra-api/internal/middleware"
	"github.com/klasstra/klasstra-api/internal/models"
	"github.com/klasstra/klasstra-api/internal/service"
	appErrors "github.com/klasstra/klasstra-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newContext(method, target string, body io.Reader) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, body)
	return c, w
}

type adminServiceMock struct {
	lastAssign models.AssignTeacherClassRequest
	assignResp *service.AssignResult
	assignErr  error
	promoteErr error
}

func (m *adminServiceMock) PromoteClassRep(context.Context, int64) error {
	return m.promoteErr
}

func (m *adminServiceMock) AssignTeacher(_ context.Context, req models.AssignTeacherClassRequest) (*service.AssignResult, error) {
	m.lastAssign = req
	return m.assignResp, m.assignErr
}

type auditListerMock struct {
	lastFilter models.AuditFilter
}

func (m *auditListerMock) List(_ context.Context, filter models.AuditFilter) ([]models.AuditLog, error) {
	m.lastFilter = filter
	return []models.AuditLog{}, nil
}

func TestAssignTeacherAcceptsQueryParameters(t *testing.T) {
	mock := &adminServiceMock{assignResp: &service.AssignResult{Created: true, Message: "Assigned teacher_id=3 to class_id=4."}}
	h := NewAdminHandler(mock, &auditListerMock{})

	c, w := newContext(http.MethodPost, "/admin/assign-teacher-class?teacher_id=3&class_id=4", nil)
	h.AssignTeacher(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AssignTeacherClassRequest{TeacherID: 3, ClassID: 4}, mock.lastAssign)
	assert.JSONEq(t, `{"detail":"Assigned teacher_id=3 to class_id=4."}`, w.Body.String())
}

func TestAssignTeacherAcceptsJSONBody(t *testing.T) {
	mock := &adminServiceMock{assignResp: &service.AssignResult{Message: "Teacher is already assigned to this class."}}
	h := NewAdminHandler(mock, &auditListerMock{})

	c, w := newContext(http.MethodPost, "/admin/assign-teacher-class", strings.NewReader(`{"teacher_id":5,"class_id":6}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.AssignTeacher(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(5), mock.lastAssign.TeacherID)
	assert.Contains(t, w.Body.String(), "already assigned")
}

func TestAssignTeacherAcceptsChunkedJSONBody(t *testing.T) {
	mock := &adminServiceMock{assignResp: &service.AssignResult{Created: true, Message: "Assigned teacher_id=5 to class_id=6."}}
	h := NewAdminHandler(mock, &auditListerMock{})

	c, w := newContext(http.MethodPost, "/admin/assign-teacher-class", strings.NewReader(`{"teacher_id":5,"class_id":6}`))
	c.Request.Header.Set("Content-Type", "application/json; charset=utf-8")
	c.Request.ContentLength = -1
	h.AssignTeacher(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AssignTeacherClassRequest{TeacherID: 5, ClassID: 6}, mock.lastAssign)
}

func TestPromoteClassRepNotFound(t *testing.T) {
	h := NewAdminHandler(&adminServiceMock{promoteErr: appErrors.Clone(appErrors.ErrNotFound, "User not found")}, &auditListerMock{})

	c, w := newContext(http.MethodPut, "/admin/user/9/class_rep", nil)
	c.Params = gin.Params{{Key: "id", Value: "9"}}
	h.PromoteClassRep(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail":"User not found","code":"NOT_FOUND"}`, w.Body.String())
}

func TestPromoteClassRepRejectsBadID(t *testing.T) {
	h := NewAdminHandler(&adminServiceMock{}, &auditListerMock{})
	c, w := newContext(http.MethodPut, "/admin/user/abc/class_rep", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	h.PromoteClassRep(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuditLogsParsesFilter(t *testing.T) {
	lister := &auditListerMock{}
	h := NewAdminHandler(&adminServiceMock{}, lister)

	c, w := newContext(http.MethodGet, "/admin/audit-logs?entity_type=class&limit=10", nil)
	h.AuditLogs(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AuditFilter{EntityType: "class", Limit: 10}, lister.lastFilter)

	c, w = newContext(http.MethodGet, "/admin/audit-logs?limit=ten", nil)
	h.AuditLogs(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type parentServiceMock struct {
	format string
}

func (m *parentServiceMock) List(context.Context) ([]models.User, error) {
	return []models.User{{ID: 1, Username: "mum", Role: models.RoleParent}}, nil
}

func (m *parentServiceMock) Export(_ context.Context, format string) (*service.ExportFile, error) {
	m.format = format
	return &service.ExportFile{Filename: "parents-20240902.csv", ContentType: "text/csv", Data: []byte("id\n1\n")}, nil
}

func TestParentExportSetsAttachmentHeaders(t *testing.T) {
	mock := &parentServiceMock{}
	h := NewParentHandler(mock)

	c, w := newContext(http.MethodGet, "/parents/export", nil)
	h.Export(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mock.format)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="parents-20240902.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "id\n1\n", w.Body.String())
}

type uploadServiceMock struct {
	name    string
	content string
}

func (m *uploadServiceMock) Upload(_ context.Context, originalName string, r io.Reader) (*models.UploadResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	m.name = originalName
	m.content = string(data)
	return &models.UploadResponse{URL: "http://127.0.0.1:8000/uploads/x.pdf"}, nil
}

func TestUploadReadsMultipartFile(t *testing.T) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "letter.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	mock := &uploadServiceMock{}
	h := NewUploadHandler(mock)
	c, w := newContext(http.MethodPost, "/upload/", body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())
	h.Upload(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "letter.pdf", mock.name)
	assert.Equal(t, "%PDF-1.4", mock.content)
	assert.JSONEq(t, `{"url":"http://127.0.0.1:8000/uploads/x.pdf"}`, w.Body.String())
}

func TestUploadWithoutFile(t *testing.T) {
	h := NewUploadHandler(&uploadServiceMock{})
	c, w := newContext(http.MethodPost, "/upload/", nil)
	h.Upload(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

type announcementServiceMock struct {
	announcementService
	deleted int64
	err     error
}

func (m *announcementServiceMock) Delete(_ context.Context, _ *models.JWTClaims, id int64) error {
	m.deleted = id
	return m.err
}

func TestDeleteAnnouncement(t *testing.T) {
	mock := &announcementServiceMock{}
	h := NewTeacherHandler(nil, mock)

	c, w := newContext(http.MethodDelete, "/teacher/announcements/12", nil)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 3, Role: models.RoleTeacher})
	h.DeleteAnnouncement(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(12), mock.deleted)
	assert.JSONEq(t, `{"detail":"Announcement deleted"}`, w.Body.String())

	mock.err = appErrors.Clone(appErrors.ErrForbidden, "You can only delete your own announcement")
	c, w = newContext(http.MethodDelete, "/teacher/announcements/12", nil)
	c.Params = gin.Params{{Key: "id", Value: "12"}}
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: 4, Role: models.RoleTeacher})
	h.DeleteAnnouncement(c)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

type authServiceMock struct {
	req models.LoginRequest
	err error
}

func (m *authServiceMock) Login(_ context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.LoginResponse{AccessToken: "tok", TokenType: models.TokenTypeBearer, ExpiresIn: 3600}, nil
}

func TestLoginAcceptsJSON(t *testing.T) {
	mock := &authServiceMock{}
	h := NewAuthHandler(mock)

	c, w := newContext(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"admin","password":"secret"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin", mock.req.Username)
	assert.JSONEq(t, `{"access_token":"tok","token_type":"bearer","expires_in":3600}`, w.Body.String())
}

func TestLoginFailureAdvertisesBearer(t *testing.T) {
	h := NewAuthHandler(&authServiceMock{err: appErrors.ErrInvalidCredentials})
	c, w := newContext(http.MethodPost, "/auth/login", strings.NewReader(`{"username":"x","password":"y"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
}
