package portalapi

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/domain/model"
)

type loginResponse struct {
	Token       string                  `json:"token"`
	AccessToken string                  `json:"access_token"`
	User        domainauth.UserIdentity `json:"user"`
}

// Authenticate exchanges credentials for a session.
//
// An account flagged "User is not verified" (or code user_not_verified) that also
// carries a user id yields an unauthenticated session holding only that id and a nil
// error. Every other failure is an *AuthenticationError.
func (c *Client) Authenticate(ctx context.Context, creds model.Credentials) (domainauth.Session, error) {
	var resp loginResponse
	err := c.do(ctx, request{op: "auth.login", method: http.MethodPost, path: "/auth/login", body: creds}, &resp)
	if err == nil {
		token := resp.Token
		if token == "" {
			token = resp.AccessToken
		}
		if token == "" {
			return domainauth.Session{}, &AuthenticationError{Message: FallbackAuthMessage}
		}
		return domainauth.Session{BearerToken: token, IsAuthenticated: true, User: resp.User}, nil
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return domainauth.Session{}, &AuthenticationError{Message: FallbackAuthMessage, Err: err}
	}
	if apiErr.Unverified() && apiErr.UserID > 0 {
		c.logger.InfoContext(ctx, "login for unverified account", "user_id", apiErr.UserID)
		return domainauth.UnverifiedSession(apiErr.UserID), nil
	}
	if !apiErr.HasMessage() {
		return domainauth.Session{}, &AuthenticationError{Message: FallbackAuthMessage, Err: err}
	}
	return domainauth.Session{}, &AuthenticationError{Message: apiErr.Error(), Err: err}
}

// Register creates an account that still needs OTP verification.
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error) {
	var out model.RegisterResult
	err := c.do(ctx, request{op: "auth.register", method: http.MethodPost, path: "/auth/register", body: req}, &out)
	return out, err
}

// VerifyOTP confirms an account.
func (c *Client) VerifyOTP(ctx context.Context, req model.VerifyOTPRequest) error {
	return c.do(ctx, request{op: "auth.verify_otp", method: http.MethodPost, path: "/auth/verify-otp", body: req}, nil)
}

// ResendVerification mails a fresh OTP.
func (c *Client) ResendVerification(ctx context.Context, req model.ResendVerificationRequest) error {
	return c.do(ctx, request{
		op:     "auth.resend_verification",
		method: http.MethodPost,
		path:   "/auth/resend-verification",
		body:   req,
	}, nil)
}

// ForgotPassword starts a password reset.
func (c *Client) ForgotPassword(ctx context.Context, req model.ForgotPasswordRequest) error {
	return c.do(ctx, request{
		op:     "auth.forgot_password",
		method: http.MethodPost,
		path:   "/auth/forgot-password",
		body:   req,
	}, nil)
}

// ResetPassword completes a password reset.
func (c *Client) ResetPassword(ctx context.Context, req model.ResetPasswordRequest) error {
	return c.do(ctx, request{
		op:     "auth.reset_password",
		method: http.MethodPost,
		path:   "/auth/reset-password",
		body:   req,
	}, nil)
}
