package routes_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"office-records-backend/config"
	"office-records-backend/internal/middleware"
	"office-records-backend/internal/model"
	"office-records-backend/internal/notify"
	"office-records-backend/internal/routes"
	"office-records-backend/internal/testutil"
	"office-records-backend/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type server struct {
	app       *fiber.App
	db        *gorm.DB
	uploadDir string
}

func newServer(t *testing.T) *server {
	t.Helper()
	db := testutil.NewDB(t)
	uploadDir := t.TempDir()

	app := fiber.New()
	routes.Setup(app, routes.Deps{
		DB:       db,
		Config:   &config.Config{UploadDir: uploadDir, TokenTTL: time.Hour},
		Tokens:   usecase.NewTokenManager("test-secret", time.Hour),
		Notifier: notify.NewNotifier(&testutil.Mailbox{}, zap.NewNop()),
		Log:      zap.NewNop(),
	})
	return &server{app: app, db: db, uploadDir: uploadDir}
}

type envelope struct {
	Success  bool            `json:"success"`
	Message  string          `json:"message"`
	Error    string          `json:"error"`
	Redirect string          `json:"redirect"`
	Token    string          `json:"token"`
	Data     json.RawMessage `json:"data"`
}

func (s *server) do(t *testing.T, req *http.Request) (*http.Response, envelope) {
	t.Helper()
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &env), string(body))
	}
	return resp, env
}

func jsonRequest(method, path, token string, body interface{}) *http.Request {
	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func (s *server) login(t *testing.T, username string) string {
	t.Helper()
	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": username,
		"password": testutil.Password,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)
	return env.Token
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == middleware.CookieName {
			return c
		}
	}
	return nil
}

func TestLogin_SetsCookieAndRedirect(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "hr", model.RoleHumanResource)

	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "hr",
		"password": testutil.Password,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "/hr", env.Redirect)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, env.Token, cookie.Value)

	var profile model.Admin
	require.NoError(t, json.Unmarshal(env.Data, &profile))
	assert.Equal(t, "hr", profile.Username)
	assert.Empty(t, profile.Password)
}

func TestLogin_AlternatePath(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "boss", model.RoleBoss)

	resp, env := s.do(t, jsonRequest(http.MethodPost, "/apis/logins", "", map[string]string{
		"username": "boss",
		"password": testutil.Password,
	}))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/boss", env.Redirect)
}

func TestLogin_Failures(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "registry", model.RoleRegistry)

	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "registry",
		"password": "wrong",
	}))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Nil(t, sessionCookie(resp))

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/auth/login", "", map[string]string{"username": "registry"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Nil(t, sessionCookie(resp))
}

func TestAuthCheck(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "registry", model.RoleRegistry)

	resp, _ := s.do(t, httptest.NewRequest(http.MethodGet, "/api/auth/check", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/auth/check", "garbage", nil))
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	token := s.login(t, "registry")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	req.AddCookie(&http.Cookie{Name: middleware.CookieName, Value: token})
	resp, env := s.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/registry", env.Redirect)

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/auth/check", token, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthCheck_DeletedAdmin(t *testing.T) {
	s := newServer(t)
	admin := testutil.CreateAdmin(t, s.db, "temp", model.RoleEmployee)
	token := s.login(t, "temp")

	require.NoError(t, s.db.Unscoped().Delete(&model.Admin{}, admin.ID).Error)

	resp, _ := s.do(t, jsonRequest(http.MethodGet, "/api/auth/check", token, nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLogout_ClearsCookie(t *testing.T) {
	s := newServer(t)
	resp, _ := s.do(t, httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestPermissions(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "emp", model.RoleEmployee)
	testutil.CreateAdmin(t, s.db, "root", model.RoleSuperAdmin)
	empToken := s.login(t, "emp")
	rootToken := s.login(t, "root")

	resp, _ := s.do(t, jsonRequest(http.MethodGet, "/api/admins", empToken, nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/files", empToken, map[string]string{
		"file_number": "X/1", "name": "x", "type": "open",
	}))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/admins", rootToken, nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAdminCreate_Conflict(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "root", model.RoleSuperAdmin)
	token := s.login(t, "root")

	body := map[string]string{
		"name": "Jane", "email": "jane@office.test", "username": "jane", "password": "password1", "role": "Registry",
	}
	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/admins", token, body))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/admins", token, body))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	body["username"] = "jane2"
	body["email"] = "not-an-email"
	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/admins", token, body))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRecordWorkflowOverHTTP(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "registry", model.RoleRegistry)
	boss := testutil.CreateAdmin(t, s.db, "boss", model.RoleBoss)
	regToken := s.login(t, "registry")
	bossToken := s.login(t, "boss")

	// 1. File
	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/files", regToken, map[string]string{
		"file_number": "REG/100", "name": "Tenders", "type": "Incoming",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var file model.File
	require.NoError(t, json.Unmarshal(env.Data, &file))

	// 2. Record via multipart upload
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("file_id", jsonNumber(file.ID)))
	require.NoError(t, form.WriteField("subject", "Bid from ACME"))
	part, err := form.CreateFormFile("attachment", "bid.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 bid"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/apis/records", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+regToken)
	resp, env = s.do(t, req)
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var record model.Record
	require.NoError(t, json.Unmarshal(env.Data, &record))
	assert.Equal(t, model.RecordPending, record.Status)
	require.True(t, strings.HasPrefix(record.Attachment, "/uploads/records/"))
	_, err = os.Stat(filepath.Join(s.uploadDir, "records", filepath.Base(record.Attachment)))
	assert.NoError(t, err)

	// 3. Forward to the boss
	resp, env = s.do(t, jsonRequest(http.MethodPost, "/api/records/"+jsonNumber(record.ID)+"/forward", regToken, map[string]interface{}{
		"recipient_id": boss.ID, "notes": "for approval",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var fw model.ForwardedRecord
	require.NoError(t, json.Unmarshal(env.Data, &fw))

	resp, env = s.do(t, jsonRequest(http.MethodGet, "/api/forwarded?status=pending", bossToken, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var inbox []model.ForwardedRecord
	require.NoError(t, json.Unmarshal(env.Data, &inbox))
	require.Len(t, inbox, 1)

	// 4. Review twice
	reviewPath := "/api/forwarded/" + jsonNumber(fw.ID) + "/review"
	resp, env = s.do(t, jsonRequest(http.MethodPost, reviewPath, bossToken, map[string]string{"decision": "accept"}))
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	resp, _ = s.do(t, jsonRequest(http.MethodPost, reviewPath, bossToken, map[string]string{"decision": "reject"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// 5. Tracking lookup reflects the accepted state
	resp, env = s.do(t, jsonRequest(http.MethodGet, "/api/records/track/"+record.TrackingNumber, bossToken, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tracked model.Record
	require.NoError(t, json.Unmarshal(env.Data, &tracked))
	assert.Equal(t, model.RecordAccepted, tracked.Status)

	// 6. Forwarding a terminal record conflicts
	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/records/"+jsonNumber(record.ID)+"/forward", regToken, map[string]interface{}{
		"recipient_id": boss.ID,
	}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func uploadRequest(t *testing.T, token string, fileID uint, subject string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)
	require.NoError(t, form.WriteField("file_id", jsonNumber(fileID)))
	require.NoError(t, form.WriteField("subject", subject))
	part, err := form.CreateFormFile("attachment", "letter.pdf")
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4 letter"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/apis/records", &buf)
	req.Header.Set("Content-Type", form.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestUpload_FailureRemovesAttachment(t *testing.T) {
	s := newServer(t)
	registry := testutil.CreateAdmin(t, s.db, "registry", model.RoleRegistry)
	file := testutil.CreateFile(t, s.db, "REG/200", registry)
	token := s.login(t, "registry")

	resp, env := s.do(t, uploadRequest(t, token, 999, "Unknown file"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, env.Error)

	resp, env = s.do(t, uploadRequest(t, token, file.ID, ""))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, env.Error)

	entries, err := os.ReadDir(filepath.Join(s.uploadDir, "records"))
	if !os.IsNotExist(err) {
		require.NoError(t, err)
	}
	assert.Empty(t, entries)

	var count int64
	require.NoError(t, s.db.Model(&model.Record{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAttachment_RequiresSession(t *testing.T) {
	s := newServer(t)
	registry := testutil.CreateAdmin(t, s.db, "registry", model.RoleRegistry)
	file := testutil.CreateFile(t, s.db, "REG/300", registry)
	token := s.login(t, "registry")

	resp, env := s.do(t, uploadRequest(t, token, file.ID, "Minutes"))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var record model.Record
	require.NoError(t, json.Unmarshal(env.Data, &record))

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, record.Attachment, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, record.Attachment, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err = s.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 letter", string(body))

	req = httptest.NewRequest(http.MethodGet, "/uploads/records/missing.pdf", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, _ = s.do(t, req)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLeaveOverHTTP(t *testing.T) {
	s := newServer(t)
	testutil.CreateAdmin(t, s.db, "emp", model.RoleEmployee)
	testutil.CreateAdmin(t, s.db, "hr", model.RoleHumanResource)
	empToken := s.login(t, "emp")
	hrToken := s.login(t, "hr")

	evidence := "data:application/pdf;base64," + base64.StdEncoding.EncodeToString([]byte("note from doctor"))
	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/leaves", empToken, map[string]string{
		"leave_type": "Sick",
		"start_date": "2024-01-01",
		"end_date":   "2024-01-03",
		"reason":     "flu",
		"evidence":   evidence,
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)

	var leave usecase.LeaveView
	require.NoError(t, json.Unmarshal(env.Data, &leave))
	assert.Equal(t, 3, leave.Days)
	assert.Equal(t, model.LeavePending, leave.Status)
	assert.Equal(t, "application/pdf", leave.EvidenceMime)

	resp, _ = s.do(t, jsonRequest(http.MethodGet, "/api/leaves", empToken, nil))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, env = s.do(t, jsonRequest(http.MethodPost, "/api/leaves/"+jsonNumber(leave.ID)+"/decision", hrToken, map[string]string{"status": "approved"}))
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/leaves/"+jsonNumber(leave.ID)+"/decision", hrToken, map[string]string{"status": "rejected"}))
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, env = s.do(t, jsonRequest(http.MethodGet, "/api/leaves/mine", empToken, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mine []usecase.LeaveView
	require.NoError(t, json.Unmarshal(env.Data, &mine))
	require.Len(t, mine, 1)
	decoded, err := base64.StdEncoding.DecodeString(mine[0].Evidence)
	require.NoError(t, err)
	assert.Equal(t, "note from doctor", string(decoded))

	resp, _ = s.do(t, jsonRequest(http.MethodPost, "/api/leaves", empToken, map[string]string{
		"leave_type": "sick", "start_date": "2024-01-05", "end_date": "2024-01-01",
	}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTaskCompletionOverHTTP(t *testing.T) {
	s := newServer(t)
	emp := testutil.CreateAdmin(t, s.db, "emp", model.RoleEmployee)
	testutil.CreateAdmin(t, s.db, "hod", model.RoleHOD)
	empToken := s.login(t, "emp")
	hodToken := s.login(t, "hod")

	resp, env := s.do(t, jsonRequest(http.MethodPost, "/api/tasks", hodToken, map[string]interface{}{
		"employee_id": emp.ID, "title": "File returns", "priority": "high",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode, env.Error)
	var task model.Task
	require.NoError(t, json.Unmarshal(env.Data, &task))

	statusPath := "/api/tasks/" + jsonNumber(task.ID) + "/status"
	resp, env = s.do(t, jsonRequest(http.MethodPut, statusPath, empToken, map[string]string{"status": "completed", "note": "done"}))
	require.Equal(t, http.StatusOK, resp.StatusCode, env.Error)

	resp, _ = s.do(t, jsonRequest(http.MethodPut, statusPath, empToken, map[string]string{"status": "completed"}))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, env = s.do(t, jsonRequest(http.MethodGet, "/api/tasks/finished/mine", empToken, nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var finished []model.FinishedTask
	require.NoError(t, json.Unmarshal(env.Data, &finished))
	require.Len(t, finished, 1)
	assert.True(t, finished[0].OnTime)
}

func jsonNumber(id uint) string {
	raw, _ := json.Marshal(id)
	return string(raw)
}
