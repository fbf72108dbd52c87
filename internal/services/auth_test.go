package services

import (
	"context"
	"testing"
	"time"

	"github.com/jarahq/jara-backend/internal/apierr"
	"github.com/jarahq/jara-backend/internal/types"
)

func newValidationAuthService(t *testing.T) AuthService {
	t.Helper()
	return NewAuthService(nil, testLogger(t), nil, nil, nil, nil, "secret", time.Hour, 24*time.Hour)
}

func TestGenerateOTPCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateOTPCode()
		if err != nil {
			t.Fatalf("generateOTPCode: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("code %q is not 6 digits", code)
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				t.Fatalf("code %q contains non-digit %q", code, r)
			}
		}
	}
}

func TestVerifyOTPInputValidation(t *testing.T) {
	as := newValidationAuthService(t)

	cases := []struct {
		name    string
		email   string
		code    string
		purpose types.OTPPurpose
	}{
		{name: "missing_email", email: "", code: "123456", purpose: types.OTPPurposeSignup},
		{name: "missing_code", email: "a@b.test", code: "", purpose: types.OTPPurposeSignup},
		{name: "unknown_purpose", email: "a@b.test", code: "123456", purpose: types.OTPPurpose("other")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := as.VerifyOTP(context.Background(), tc.email, tc.code, tc.purpose)
			if err == nil {
				t.Fatalf("expected error")
			}
			if status, code := apierr.StatusOf(err); status != 422 || code != apierr.CodeValidationRejected {
				t.Fatalf("status/code = %d/%s", status, code)
			}
		})
	}
}

func TestConfirmPasswordResetRejectsShortPassword(t *testing.T) {
	as := newValidationAuthService(t)

	err := as.ConfirmPasswordReset(context.Background(), "a@b.test", "123456", "short")
	if err == nil {
		t.Fatalf("expected error")
	}
	if status, code := apierr.StatusOf(err); status != 422 || code != apierr.CodeValidationRejected {
		t.Fatalf("status/code = %d/%s", status, code)
	}
}

func TestResetPasswordRequiresEmail(t *testing.T) {
	as := newValidationAuthService(t)

	err := as.ResetPassword(context.Background(), "   ")
	if err == nil {
		t.Fatalf("expected error")
	}
	if status, code := apierr.StatusOf(err); status != 422 || code != apierr.CodeValidationRejected {
		t.Fatalf("status/code = %d/%s", status, code)
	}
}
