package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/fintrack/finance-system/internal/core/domain"
	"github.com/fintrack/finance-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn      func(ctx context.Context, username, email, password string) (string, *domain.User, error)
	loginFn         func(ctx context.Context, email, password string) (string, *domain.User, error)
	currentUserFn   func(ctx context.Context, userID string) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error)
	verifyFn        func(ctx context.Context, token string) error
	resendFn        func(ctx context.Context, email string) error
	forgotFn        func(ctx context.Context, email string) error
	resetFn         func(ctx context.Context, token, newPassword string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	return s.registerFn(ctx, username, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.currentUserFn(ctx, userID)
}

func (s *stubAuthService) UpdateProfile(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
	return s.updateProfileFn(ctx, userID, in)
}

func (s *stubAuthService) VerifyEmail(ctx context.Context, token string) error {
	return s.verifyFn(ctx, token)
}

func (s *stubAuthService) ResendVerification(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

func (s *stubAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.forgotFn(ctx, email)
}

func (s *stubAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	return s.resetFn(ctx, token, newPassword)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			if username != "alice" || email != "alice@example.com" {
				t.Fatalf("unexpected args: %s %s", username, email)
			}
			return "token123", &domain.User{ID: "u-1", Username: username, Email: email, Role: domain.RoleUser}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("expected access_token, got %v", resp["access_token"])
	}
	if resp["token_type"] != "bearer" {
		t.Fatalf("expected bearer token type, got %v", resp["token_type"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatalf("password hash must never be serialized")
	}
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrEmailTaken
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"secret1"}`)

	if err := h.Register(c); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"bob","email":"bob@example.com","password":"short"}`)

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, email, password string) (string, *domain.User, error) {
			t.Fatalf("should not be called")
			return "", nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", "not-json")

	err := h.Register(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			if email != "alice@example.com" || password != "secret1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return "token123", &domain.User{ID: "u-1", Username: "alice", Role: domain.RoleAdmin}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["access_token"] != "token123" {
		t.Fatalf("expected access_token, got %v", resp["access_token"])
	}
}

func TestAuthHandler_Login_Unverified(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (string, *domain.User, error) {
			return "", nil, domain.ErrUnverified
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret1"}`)

	if err := h.Login(c); !errors.Is(err, domain.ErrUnverified) {
		t.Fatalf("expected ErrUnverified, got %v", err)
	}
}

func TestAuthHandler_VerifyEmail(t *testing.T) {
	var got string
	stub := &stubAuthService{
		verifyFn: func(ctx context.Context, token string) error {
			got = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/auth/verify-email/abc123", "")
	c.SetParamNames("token")
	c.SetParamValues("abc123")

	if err := h.VerifyEmail(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("expected path token to be consumed, got %q", got)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_AntiEnumeration_SameBody(t *testing.T) {
	// Known and unknown emails must produce byte-identical responses.
	stub := &stubAuthService{
		forgotFn: func(ctx context.Context, email string) error { return nil },
		resendFn: func(ctx context.Context, email string) error { return nil },
	}
	h := NewAuthHandler(stub)

	c1, rec1 := newTestContext(t, http.MethodPost, "/auth/forgot-password", `{"email":"known@example.com"}`)
	if err := h.ForgotPassword(c1); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	c2, rec2 := newTestContext(t, http.MethodPost, "/auth/forgot-password", `{"email":"ghost@example.com"}`)
	if err := h.ForgotPassword(c2); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec1.Body.String() != rec2.Body.String() {
		t.Fatalf("forgot-password responses differ: %q vs %q", rec1.Body.String(), rec2.Body.String())
	}

	c3, rec3 := newTestContext(t, http.MethodPost, "/auth/resend-verification", `{"email":"ghost@example.com"}`)
	if err := h.ResendVerification(c3); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec3.Code != http.StatusOK {
		t.Fatalf("expected 200 for unknown email, got %d", rec3.Code)
	}
}

func TestAuthHandler_ResendVerification_AlreadyVerified(t *testing.T) {
	stub := &stubAuthService{
		resendFn: func(ctx context.Context, email string) error { return domain.ErrAlreadyVerified },
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/resend-verification", `{"email":"done@example.com"}`)

	if err := h.ResendVerification(c); !errors.Is(err, domain.ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestAuthHandler_ResetPassword_ShortPassword(t *testing.T) {
	stub := &stubAuthService{
		resetFn: func(ctx context.Context, token, newPassword string) error {
			t.Fatalf("should not be called")
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/auth/reset-password",
		`{"token":"abc","new_password":"short"}`)

	err := h.ResetPassword(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_Me_MissingClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newTestContext(t, http.MethodGet, "/auth/me", "")

	err := h.Me(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for missing claims, got %v", err)
	}
}

func TestAuthHandler_UpdateProfile(t *testing.T) {
	stub := &stubAuthService{
		updateProfileFn: func(ctx context.Context, userID string, in ports.ProfileUpdateInput) (*domain.User, error) {
			if userID != "u-1" {
				t.Fatalf("unexpected user id: %s", userID)
			}
			if in.Username == nil || *in.Username != "newname" {
				t.Fatalf("expected username in input, got %+v", in)
			}
			return &domain.User{ID: userID, Username: *in.Username}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/profile", `{"username":"newname"}`)
	c.Set("user_id", "u-1")
	c.Set("role", domain.RoleUser)

	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
