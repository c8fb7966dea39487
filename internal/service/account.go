package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/uni-magazine/portal/internal/domain/model"
	"github.com/uni-magazine/portal/internal/ports"
)

// AccountServiceOptions groups dependencies for AccountService.
type AccountServiceOptions struct {
	API   ports.AccountAPI
	Cache *QueryCache
}

// AccountService runs the public self-service flows: registration, OTP verification and
// password reset. None of them need a session.
type AccountService struct {
	api   ports.AccountAPI
	cache *QueryCache
}

// NewAccountService constructs a new AccountService.
func NewAccountService(opts AccountServiceOptions) *AccountService {
	if opts.API == nil {
		panic("AccountAPI is required")
	}
	return &AccountService{api: opts.API, cache: opts.Cache}
}

// Register creates an account and returns the id to verify.
func (s *AccountService) Register(ctx context.Context, req model.RegisterRequest) (model.RegisterResult, error) {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(req.Email)
	out, err := s.api.Register(ctx, req)
	if err != nil {
		return model.RegisterResult{}, fmt.Errorf("register: %w", err)
	}
	s.cache.Invalidate(ctx, entityUsers)
	return out, nil
}

// VerifyOTP confirms an account.
func (s *AccountService) VerifyOTP(ctx context.Context, userID int, otp string) error {
	req := model.VerifyOTPRequest{UserID: userID, OTP: strings.TrimSpace(otp)}
	if err := s.api.VerifyOTP(ctx, req); err != nil {
		return fmt.Errorf("verify otp: %w", err)
	}
	s.cache.Invalidate(ctx, entityUsers)
	return nil
}

// ResendVerification mails a fresh OTP.
func (s *AccountService) ResendVerification(ctx context.Context, userID int) error {
	if err := s.api.ResendVerification(ctx, model.ResendVerificationRequest{UserID: userID}); err != nil {
		return fmt.Errorf("resend verification: %w", err)
	}
	return nil
}

// ForgotPassword starts a password reset.
func (s *AccountService) ForgotPassword(ctx context.Context, email string) error {
	if err := s.api.ForgotPassword(ctx, model.ForgotPasswordRequest{Email: strings.TrimSpace(email)}); err != nil {
		return fmt.Errorf("forgot password: %w", err)
	}
	return nil
}

// ResetPassword completes a password reset.
func (s *AccountService) ResetPassword(ctx context.Context, token, password string) error {
	if err := s.api.ResetPassword(ctx, model.ResetPasswordRequest{Token: token, Password: password}); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}
	return nil
}
