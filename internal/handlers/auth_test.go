package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/types"
)

type fakeAuthService struct {
	verifyEmail   string
	verifyCode    string
	verifyPurpose types.OTPPurpose
	verifyErr     error
	resetEmails   []string
	confirmCalls  int
	confirmErr    error
}

func (f *fakeAuthService) RegisterUser(ctx context.Context, user *types.User) error { return nil }

func (f *fakeAuthService) LoginUser(ctx context.Context, email, password string) (string, string, error) {
	return "", "", nil
}

func (f *fakeAuthService) VerifyOTP(ctx context.Context, email, code string, purpose types.OTPPurpose) (string, string, error) {
	f.verifyEmail, f.verifyCode, f.verifyPurpose = email, code, purpose
	if f.verifyErr != nil {
		return "", "", f.verifyErr
	}
	return "access-token", "refresh-token", nil
}

func (f *fakeAuthService) ResetPassword(ctx context.Context, email string) error {
	f.resetEmails = append(f.resetEmails, email)
	return nil
}

func (f *fakeAuthService) ConfirmPasswordReset(ctx context.Context, email, code, newPassword string) error {
	f.confirmCalls++
	return f.confirmErr
}

func (f *fakeAuthService) OAuthLogin(ctx context.Context, email, name string) (string, string, error) {
	return "access-token", "refresh-token", nil
}

func (f *fakeAuthService) RefreshUser(ctx context.Context) (string, string, error) {
	return "", "", nil
}

func (f *fakeAuthService) LogoutUser(ctx context.Context) error { return nil }

func (f *fakeAuthService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	return ctx, nil
}

func (f *fakeAuthService) GetAccessTTL() time.Duration { return time.Hour }

func newAuthTestRouter(f *fakeAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(f)
	router.POST("/verify-otp", handler.VerifyOTP)
	router.POST("/reset-password", handler.ResetPassword)
	router.POST("/reset-password/confirm", handler.ConfirmPasswordReset)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestVerifyOTPIssuesSession(t *testing.T) {
	fake := &fakeAuthService{}
	router := newAuthTestRouter(fake)

	w := postJSON(t, router, "/verify-otp", `{"email":"a@b.test","code":"123456","purpose":"recovery"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	var resp struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.AccessToken != "access-token" || resp.RefreshToken != "refresh-token" {
		t.Fatalf("tokens = %q / %q", resp.AccessToken, resp.RefreshToken)
	}
	if resp.ExpiresIn != 3600 {
		t.Fatalf("expires_in = %d", resp.ExpiresIn)
	}
	if fake.verifyEmail != "a@b.test" || fake.verifyCode != "123456" || fake.verifyPurpose != types.OTPPurposeRecovery {
		t.Fatalf("service got %q %q %q", fake.verifyEmail, fake.verifyCode, fake.verifyPurpose)
	}
}

func TestVerifyOTPDefaultsToSignupPurpose(t *testing.T) {
	fake := &fakeAuthService{}
	router := newAuthTestRouter(fake)

	w := postJSON(t, router, "/verify-otp", `{"email":"a@b.test","code":"123456"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if fake.verifyPurpose != types.OTPPurposeSignup {
		t.Fatalf("purpose = %q, want signup", fake.verifyPurpose)
	}
}

func TestVerifyOTPInvalidCode(t *testing.T) {
	fake := &fakeAuthService{verifyErr: apierr.Unauthorized(fmt.Errorf("invalid or expired code"))}
	router := newAuthTestRouter(fake)

	w := postJSON(t, router, "/verify-otp", `{"email":"a@b.test","code":"000000"}`)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	var envelope ErrorEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if envelope.Error.Code != apierr.CodeUnauthorized {
		t.Fatalf("code = %q", envelope.Error.Code)
	}
}

func TestResetPasswordAlwaysReportsSuccess(t *testing.T) {
	fake := &fakeAuthService{}
	router := newAuthTestRouter(fake)

	w := postJSON(t, router, "/reset-password", `{"email":"nobody@b.test"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if len(fake.resetEmails) != 1 || fake.resetEmails[0] != "nobody@b.test" {
		t.Fatalf("service got emails %v", fake.resetEmails)
	}
}

func TestConfirmPasswordReset(t *testing.T) {
	cases := []struct {
		name       string
		serviceErr error
		wantStatus int
	}{
		{name: "success", serviceErr: nil, wantStatus: http.StatusOK},
		{name: "rejected_code", serviceErr: apierr.Unauthorized(fmt.Errorf("invalid or expired code")), wantStatus: http.StatusUnauthorized},
		{name: "weak_password", serviceErr: apierr.ValidationRejected(fmt.Errorf("password must be at least 8 characters long")), wantStatus: http.StatusUnprocessableEntity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fake := &fakeAuthService{confirmErr: tc.serviceErr}
			router := newAuthTestRouter(fake)

			w := postJSON(t, router, "/reset-password/confirm", `{"email":"a@b.test","code":"123456","new_password":"longenough"}`)

			if w.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", w.Code, tc.wantStatus, w.Body.String())
			}
			if fake.confirmCalls != 1 {
				t.Fatalf("confirm calls = %d", fake.confirmCalls)
			}
		})
	}
}
