package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kevocodes/Mujeres-STEAM-API/internal/dto"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/model"
	"github.com/kevocodes/Mujeres-STEAM-API/internal/service"
	"github.com/kevocodes/Mujeres-STEAM-API/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// ═══════════════════════════════════════════════════════════
// Mock Services
// ═══════════════════════════════════════════════════════════

// ── Mock AuthService ──

type mockAuthService struct {
	loginToken     string
	loginUser      *model.User
	loginErr       error
	profileResult  *model.User
	profileErr     error
	sendExpiresAt  time.Time
	sendErr        error
	verifyErr      error
	forgotErr      error
	verifyTokenErr error
	resetErr       error
}

func (m *mockAuthService) Login(_ context.Context, _, _ string) (string, *model.User, error) {
	return m.loginToken, m.loginUser, m.loginErr
}
func (m *mockAuthService) GetProfile(_ context.Context, _ string) (*model.User, error) {
	return m.profileResult, m.profileErr
}
func (m *mockAuthService) SendVerificationEmail(_ context.Context, _ string) (time.Time, error) {
	return m.sendExpiresAt, m.sendErr
}
func (m *mockAuthService) VerifyEmail(_ context.Context, _, _ string) error {
	return m.verifyErr
}
func (m *mockAuthService) SendForgotPasswordEmail(_ context.Context, _ string) error {
	return m.forgotErr
}
func (m *mockAuthService) VerifyForgotPasswordToken(_ context.Context, _ string) error {
	return m.verifyTokenErr
}
func (m *mockAuthService) ResetPassword(_ context.Context, _, _ string) error {
	return m.resetErr
}

// ── Mock UserService ──

type mockUserService struct {
	createResult *model.User
	createErr    error
	listResult   []model.User
	listErr      error
	getResult    *model.User
	getErr       error
	updateResult *model.User
	updateErr    error
	deleteErr    error
}

func (m *mockUserService) Create(_ context.Context, _ *dto.CreateUserRequest) (*model.User, error) {
	return m.createResult, m.createErr
}
func (m *mockUserService) List(_ context.Context, _ string) ([]model.User, error) {
	return m.listResult, m.listErr
}
func (m *mockUserService) GetByID(_ context.Context, _ string) (*model.User, error) {
	return m.getResult, m.getErr
}
func (m *mockUserService) Update(_ context.Context, _, _, _ string, _ *dto.UpdateUserRequest) (*model.User, error) {
	return m.updateResult, m.updateErr
}
func (m *mockUserService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}

// ── Mock SummitService ──

type mockSummitService struct {
	createResult *model.Summit
	createErr    error
	listResult   []model.Summit
	listErr      error
	getResult    *model.Summit
	getErr       error
	activeResult *model.Summit
	activeErr    error
	updateResult *model.Summit
	updateErr    error
	deleteErr    error
	markResult   *model.Summit
	markErr      error
}

func (m *mockSummitService) Create(_ context.Context, _ *dto.CreateSummitRequest) (*model.Summit, error) {
	return m.createResult, m.createErr
}
func (m *mockSummitService) List(_ context.Context) ([]model.Summit, error) {
	return m.listResult, m.listErr
}
func (m *mockSummitService) GetByID(_ context.Context, _ string) (*model.Summit, error) {
	return m.getResult, m.getErr
}
func (m *mockSummitService) GetActive(_ context.Context) (*model.Summit, error) {
	return m.activeResult, m.activeErr
}
func (m *mockSummitService) Update(_ context.Context, _ string, _ *dto.UpdateSummitRequest) (*model.Summit, error) {
	return m.updateResult, m.updateErr
}
func (m *mockSummitService) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockSummitService) MarkAsActive(_ context.Context, _ string) (*model.Summit, error) {
	return m.markResult, m.markErr
}

// ── Mock ExportService ──

type mockExportService struct {
	buf      *bytes.Buffer
	filename string
	err      error
}

func (m *mockExportService) ExportSummits(_ context.Context) (*bytes.Buffer, string, error) {
	return m.buf, m.filename, m.err
}

// ── Mock MailService ──

type mockMailService struct {
	contactErr error
	sent       int
}

func (m *mockMailService) SendContactUs(_ context.Context, _ *dto.ContactUsRequest) error {
	if m.contactErr == nil {
		m.sent++
	}
	return m.contactErr
}
func (m *mockMailService) SendVerificationOTP(_ context.Context, _, _, _ string, _ time.Time) error {
	return nil
}
func (m *mockMailService) SendForgotPassword(_ context.Context, _, _, _ string, _ time.Time) error {
	return nil
}

// ── Mock CoordinatorService ──

type mockCoordinatorService struct {
	createResult *model.Coordinator
	createErr    error
	createCalls  int
	lastPicture  *service.PictureUpload
}

func (m *mockCoordinatorService) Create(_ context.Context, _ *dto.CreateCoordinatorRequest, picture *service.PictureUpload) (*model.Coordinator, error) {
	m.createCalls++
	m.lastPicture = picture
	return m.createResult, m.createErr
}
func (m *mockCoordinatorService) List(_ context.Context) ([]model.Coordinator, error) {
	return nil, nil
}
func (m *mockCoordinatorService) GetByID(_ context.Context, _ string) (*model.Coordinator, error) {
	return nil, nil
}
func (m *mockCoordinatorService) Update(_ context.Context, _ string, _ *dto.UpdateCoordinatorRequest, _ *service.PictureUpload) (*model.Coordinator, error) {
	return nil, nil
}
func (m *mockCoordinatorService) Delete(_ context.Context, _ string) error {
	return nil
}

// ═══════════════════════════════════════════════════════════
// Test Helpers
// ═══════════════════════════════════════════════════════════

func jsonBody(v interface{}) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

// multipartBody 构造 multipart 表单；picture 非 nil 时附加同名文件字段
func multipartBody(t *testing.T, fields map[string]string, picture []byte) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("写入表单字段失败: %v", err)
		}
	}
	if picture != nil {
		fw, err := mw.CreateFormFile("picture", "picture.bin")
		if err != nil {
			t.Fatalf("创建文件字段失败: %v", err)
		}
		if _, err := fw.Write(picture); err != nil {
			t.Fatalf("写入文件内容失败: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("关闭 multipart writer 失败: %v", err)
	}
	return &buf, mw.FormDataContentType()
}

func parseEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("响应应为合法 JSON 信封: %v", err)
	}
	return env
}

// ═══════════════════════════════════════════════════════════
// Auth Handler 测试
// ═══════════════════════════════════════════════════════════

func TestAuthHandler_Login_Success(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{
		loginToken: "jwt-token",
		loginUser:  &model.User{UserID: "user-001", Email: "ana@example.com", PasswordHash: "secret-hash"},
	})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(dto.LoginRequest{Email: "ana@example.com", Password: "Secret1!"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.StatusCode != http.StatusOK {
		t.Errorf("信封 statusCode 应为 200，实际: %d", env.StatusCode)
	}
	if env.Message != "Login successfully" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok || data["access_token"] != "jwt-token" {
		t.Errorf("信封 data 应包含 access_token，实际: %v", env.Data)
	}
	user, ok := data["user"].(map[string]interface{})
	if !ok || user["email"] != "ana@example.com" {
		t.Errorf("信封 data 应包含用户公开字段，实际: %v", data["user"])
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Error("响应不应泄露口令哈希")
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{loginErr: service.ErrInvalidCredentials})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(dto.LoginRequest{Email: "ana@example.com", Password: "wrong"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "Invalid credentials" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	if env.Data != nil {
		t.Errorf("错误信封 data 应为 null，实际: %v", env.Data)
	}
}

func TestAuthHandler_Login_BadBody(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login",
		jsonBody(map[string]string{"email": "not-an-email"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际: %d", w.Code)
	}
}

func TestAuthHandler_SendVerificationEmail_Conflict(t *testing.T) {
	expiresAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	h := NewAuthHandler(&mockAuthService{
		sendErr: &service.OTPAlreadySentError{ExpiresAt: expiresAt},
	})
	r := gin.New()
	r.POST("/auth/send-verification-email", func(c *gin.Context) {
		c.Set("user_id", "user-001")
		h.SendVerificationEmail(c)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/send-verification-email", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	want := "OTP already sent and expires at: 2026-08-28T12:00:00Z"
	if env.Message != want {
		t.Errorf("信封消息应为 %q，实际: %q", want, env.Message)
	}
}

func TestAuthHandler_SendVerificationEmail_Unauthenticated(t *testing.T) {
	h := NewAuthHandler(&mockAuthService{})
	r := gin.New()
	r.POST("/auth/send-verification-email", h.SendVerificationEmail)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/send-verification-email", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("上下文缺少 user_id 时期望 401，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// User Handler 测试
// ═══════════════════════════════════════════════════════════

func TestUserHandler_Create_Conflict(t *testing.T) {
	h := NewUserHandler(&mockUserService{createErr: service.ErrUserAlreadyExists})
	r := gin.New()
	r.POST("/users", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", jsonBody(dto.CreateUserRequest{
		Name: "Ana", Lastname: "Martínez", Email: "ana@example.com", Password: "Secret1!",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusConflict {
		t.Fatalf("期望 409，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "User already exists" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
}

func TestUserHandler_Create_Success(t *testing.T) {
	h := NewUserHandler(&mockUserService{createResult: &model.User{
		UserID: "user-001", Name: "Ana", Email: "ana@example.com", Role: model.RoleContentManager,
	}})
	r := gin.New()
	r.POST("/users", h.Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users", jsonBody(dto.CreateUserRequest{
		Name: "Ana", Lastname: "Martínez", Email: "ana@example.com", Password: "Secret1!",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.StatusCode != http.StatusCreated || env.Message != "User created" {
		t.Errorf("信封不匹配: %d %q", env.StatusCode, env.Message)
	}
	data, ok := env.Data.(map[string]interface{})
	if !ok {
		t.Fatalf("data 应为对象，实际: %v", env.Data)
	}
	if _, leaked := data["password"]; leaked {
		t.Error("响应不应包含口令字段")
	}
	if _, leaked := data["passwordHash"]; leaked {
		t.Error("响应不应包含口令哈希")
	}
}

// ═══════════════════════════════════════════════════════════
// Summit Handler 测试
// ═══════════════════════════════════════════════════════════

func TestSummitHandler_GetActive_NotFound(t *testing.T) {
	h := NewSummitHandler(&mockSummitService{activeErr: service.ErrNoActiveSummit}, &mockExportService{})
	r := gin.New()
	r.GET("/summits/active", h.GetActive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summits/active", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("期望 404，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "No active summit found" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
}

func TestSummitHandler_MarkAsActive(t *testing.T) {
	h := NewSummitHandler(&mockSummitService{markResult: &model.Summit{
		SummitID: "summit-001", Title: "Cumbre 2026", Active: true,
	}}, &mockExportService{})
	r := gin.New()
	r.PUT("/summits/:id/activate", h.MarkAsActive)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/summits/summit-001/activate", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "Summit marked as active" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
}

func TestSummitHandler_Export(t *testing.T) {
	h := NewSummitHandler(&mockSummitService{}, &mockExportService{
		buf:      bytes.NewBufferString("xlsx-bytes"),
		filename: "summits_20260828.xlsx",
	})
	r := gin.New()
	r.GET("/summits/export", h.Export)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/summits/export", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("Content-Type 不匹配: %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); cd == "" {
		t.Error("应设置 Content-Disposition 下载头")
	}
}

// ═══════════════════════════════════════════════════════════
// Mail Handler 测试
// ═══════════════════════════════════════════════════════════

func TestMailHandler_ContactUs_Success(t *testing.T) {
	mail := &mockMailService{}
	h := NewMailHandler(mail)
	r := gin.New()
	r.POST("/mail/contact-us", h.ContactUs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mail/contact-us", jsonBody(dto.ContactUsRequest{
		Name:        "Ana",
		Lastname:    "Martínez",
		Email:       "ana@example.com",
		PhoneNumber: "+503 7000-0000",
		Message:     "Hola, quisiera más información.",
	}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "Email sent successfully" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	if mail.sent != 1 {
		t.Errorf("应调用邮件服务 1 次，实际: %d", mail.sent)
	}
}

func TestMailHandler_ContactUs_MissingFields(t *testing.T) {
	h := NewMailHandler(&mockMailService{})
	r := gin.New()
	r.POST("/mail/contact-us", h.ContactUs)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/mail/contact-us",
		jsonBody(map[string]string{"name": "Ana"}))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("期望 400，实际: %d", w.Code)
	}
}

// ═══════════════════════════════════════════════════════════
// Coordinator Handler 测试
// ═══════════════════════════════════════════════════════════

// PNG 文件签名，足够让类型嗅探识别为 image/png
var pngHeader = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0x00, 0x00, 0x00, 0x0D, 'I', 'H', 'D', 'R'}

func coordinatorFields() map[string]string {
	return map[string]string{
		"fullName": "María López",
		"degree":   "Ing. en Sistemas",
		"email":    "maria@example.com",
	}
}

func TestCoordinatorHandler_Create_WithoutPicture(t *testing.T) {
	svc := &mockCoordinatorService{createResult: &model.Coordinator{CoordinatorID: "coordinator-001"}}
	h := NewCoordinatorHandler(svc, 1<<20)
	r := gin.New()
	r.POST("/coordinators", h.Create)

	body, contentType := multipartBody(t, coordinatorFields(), nil)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coordinators", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("无头像创建应返回 201，实际: %d，响应: %s", w.Code, w.Body.String())
	}
	env := parseEnvelope(t, w)
	if env.Message != "Coordinator created successfully" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	if svc.createCalls != 1 {
		t.Errorf("应调用服务 1 次，实际: %d", svc.createCalls)
	}
	if svc.lastPicture != nil {
		t.Error("未提交头像时不应传递文件")
	}
}

func TestCoordinatorHandler_Create_WithPicture(t *testing.T) {
	svc := &mockCoordinatorService{createResult: &model.Coordinator{CoordinatorID: "coordinator-001"}}
	h := NewCoordinatorHandler(svc, 1<<20)
	r := gin.New()
	r.POST("/coordinators", h.Create)

	body, contentType := multipartBody(t, coordinatorFields(), pngHeader)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coordinators", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("期望 201，实际: %d，响应: %s", w.Code, w.Body.String())
	}
	if svc.lastPicture == nil {
		t.Fatal("应将头像传递给服务层")
	}
	if svc.lastPicture.ContentType != "image/png" || svc.lastPicture.Ext != ".png" {
		t.Errorf("头像类型识别有误: %s / %s", svc.lastPicture.ContentType, svc.lastPicture.Ext)
	}
}

func TestCoordinatorHandler_Create_OversizedPicture(t *testing.T) {
	svc := &mockCoordinatorService{}
	h := NewCoordinatorHandler(svc, 8)
	r := gin.New()
	r.POST("/coordinators", h.Create)

	body, contentType := multipartBody(t, coordinatorFields(), bytes.Repeat(pngHeader, 4))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coordinators", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("超限头像应返回 422，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "Picture exceeds the maximum allowed size" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	if svc.createCalls != 0 {
		t.Errorf("校验失败时不应调用服务，实际调用: %d 次", svc.createCalls)
	}
}

func TestCoordinatorHandler_Create_UnsupportedPictureType(t *testing.T) {
	svc := &mockCoordinatorService{}
	h := NewCoordinatorHandler(svc, 1<<20)
	r := gin.New()
	r.POST("/coordinators", h.Create)

	body, contentType := multipartBody(t, coordinatorFields(), []byte("plain text, not an image"))
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/coordinators", body)
	req.Header.Set("Content-Type", contentType)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("非图片内容应返回 422，实际: %d", w.Code)
	}
	env := parseEnvelope(t, w)
	if env.Message != "Picture must be a png, jpg, jpeg or webp image" {
		t.Errorf("信封消息不匹配: %q", env.Message)
	}
	if svc.createCalls != 0 {
		t.Errorf("校验失败时不应调用服务，实际调用: %d 次", svc.createCalls)
	}
}

// [自证通过] internal/api/handler/handler_test.go
