package httpx

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/uni-magazine/portal/internal/adapters/portalapi"
	"github.com/uni-magazine/portal/internal/domain/model"
	apperrors "github.com/uni-magazine/portal/internal/errors"
)

//nolint:gochecknoglobals // sentinel
var errMissingAccount = apperrors.Validation("This verification link is incomplete. Sign in again to get a new code.")

type loginForm struct {
	Username     string `form:"username" validate:"notblank,max=100"`
	Password     string `form:"password" validate:"required"`
	RedirectFrom string `form:"redirectFrom"`
}

type registerForm struct {
	UserName        string `form:"user_name" validate:"notblank,max=50"`
	FirstName       string `form:"first_name" validate:"notblank,max=50"`
	LastName        string `form:"last_name" validate:"notblank,max=50"`
	Email           string `form:"email" validate:"required,email,max=100"`
	Phone           string `form:"phone" validate:"omitempty,max=20"`
	Password        string `form:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

type verifyOTPForm struct {
	UserID int    `form:"user_id" validate:"required"`
	OTP    string `form:"otp" validate:"notblank,numeric,max=10"`
}

type forgotPasswordForm struct {
	Email string `form:"email" validate:"required,email"`
}

type resetPasswordForm struct {
	Token           string `form:"token" validate:"notblank"`
	Password        string `form:"password" validate:"required,min=8,max=128"`
	ConfirmPassword string `form:"confirm_password" validate:"eqfield=Password"`
}

// accountPage renders one of the public account screens.
func (h *UIHandlers) accountPage(w http.ResponseWriter, r *http.Request, meta PageMeta, data map[string]any) {
	b := NewTemplateData(r, meta)
	for k, v := range data {
		b.With(k, v)
	}
	h.renderDashboardPage(w, r, b.Build())
}

// LoginPage renders the sign-in form. GET /login.
func (h *UIHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.accountPage(w, r, loginMeta(), map[string]any{
		"FormData": loginForm{RedirectFrom: r.URL.Query().Get("redirectFrom")},
		"Errors":   map[string]string{},
	})
}

func loginMeta() PageMeta {
	return PageMeta{Title: "Sign in", PageTitle: "Sign in", CurrentPage: PageLogin}
}

// LoginSubmit exchanges credentials for a session. POST /login.
//
// Unverified accounts continue to OTP verification; otherwise the user lands on redirectFrom
// when it is a safe relative path, or on the home page.
func (h *UIHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	form, errs := parseAndValidate(r, func(f postedForm) loginForm {
		return loginForm{Username: f.Get("username"), Password: f.Raw("password"), RedirectFrom: f.Get("redirectFrom")}
	})
	// Never echo the password back.
	render := func(msg string, fields map[string]string) {
		form.Password = ""
		b := NewTemplateData(r, loginMeta()).WithFieldErrors(fields).With("FormData", form)
		if msg != "" {
			b.WithError(msg)
			triggerToast(w, msg, toastError)
		}
		h.renderDashboardPage(w, r, b.Build())
	}
	if len(errs) > 0 {
		render(errMsgFixBelow, errs)
		return
	}

	res, err := h.Auth.Login(r.Context(), model.Credentials{Username: form.Username, Password: form.Password})
	if err != nil {
		h.logger().InfoContext(r.Context(), "sign-in failed", "error", err)
		render(loginErrorMessage(err), nil)
		return
	}
	if res.Unverified {
		redirect(w, r, verifyOTPURL(res.Session.User.UserID))
		return
	}

	h.cookies().setSession(w, r, res.Token, res.Session.ExpiresAt)
	h.succeed(w, r, "Welcome back, "+res.Session.User.DisplayName()+".", safeRedirectPath(form.RedirectFrom))
}

func loginErrorMessage(err error) string {
	var authErr *portalapi.AuthenticationError
	if errors.As(err, &authErr) && authErr.Message != "" {
		return authErr.Message
	}
	if view := describeError(err, "sign in"); view.Message != "" {
		return view.Message
	}
	return portalapi.FallbackAuthMessage
}

func verifyOTPURL(userID int) string {
	return "/verify-otp?user_id=" + strconv.Itoa(userID)
}

func registerMeta() PageMeta {
	return PageMeta{Title: "Create account", PageTitle: "Create account", CurrentPage: PageRegister}
}

// RegisterPage renders the sign-up form. GET /register.
func (h *UIHandlers) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.accountPage(w, r, registerMeta(), map[string]any{"FormData": registerForm{}, "Errors": map[string]string{}})
}

// RegisterSubmit creates an account and continues to OTP verification. POST /register.
func (h *UIHandlers) RegisterSubmit(w http.ResponseWriter, r *http.Request) {
	var userID int
	HandleForm(FormHandlerOpts[registerForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (registerForm, map[string]string) {
			return parseAndValidate(r, func(f postedForm) registerForm {
				return registerForm{
					UserName:        f.Get("user_name"),
					FirstName:       f.Get("first_name"),
					LastName:        f.Get("last_name"),
					Email:           f.Get("email"),
					Phone:           f.Get("phone"),
					Password:        f.Raw("password"),
					ConfirmPassword: f.Raw("confirm_password"),
				}
			})
		},
		Submit: func(ctx context.Context, f registerForm) error {
			res, err := h.Accounts.Register(ctx, model.RegisterRequest{
				UserName:  f.UserName,
				FirstName: f.FirstName,
				LastName:  f.LastName,
				Email:     f.Email,
				Phone:     f.Phone,
				Password:  f.Password,
			})
			userID = res.UserID
			return err
		},
		Renderer:       h.renderForm,
		SuccessURLFunc: func() string { return verifyOTPURL(userID) },
		SuccessMessage: "Account created. Enter the code sent to your email.",
		Action:         "create account",
		PageMeta:       registerMeta(),
	})
}

func verifyMeta() PageMeta {
	return PageMeta{Title: "Verify your account", PageTitle: "Verify your account", CurrentPage: PageVerifyOTP}
}

// VerifyOTPPage renders the one-time-code form. GET /verify-otp?user_id=.
func (h *UIHandlers) VerifyOTPPage(w http.ResponseWriter, r *http.Request) {
	form := verifyOTPForm{UserID: formInt(r.URL.Query().Get("user_id"))}
	data := map[string]any{"FormData": form, "Errors": map[string]string{}}
	if form.UserID == 0 {
		data["Error"] = true
		data["ErrorMessage"] = errMissingAccount.Message
	}
	h.accountPage(w, r, verifyMeta(), data)
}

// VerifyOTPSubmit checks the code and sends the user to sign in. POST /verify-otp.
func (h *UIHandlers) VerifyOTPSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[verifyOTPForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (verifyOTPForm, map[string]string) {
			return parseAndValidate(r, func(f postedForm) verifyOTPForm {
				return verifyOTPForm{UserID: formInt(f.Get("user_id")), OTP: f.Get("otp")}
			})
		},
		Submit: func(ctx context.Context, f verifyOTPForm) error {
			return h.Accounts.VerifyOTP(ctx, f.UserID, f.OTP)
		},
		Renderer:       h.renderForm,
		SuccessURL:     "/login",
		SuccessMessage: "Your account is verified. You can sign in now.",
		Action:         "verify code",
		PageMeta:       verifyMeta(),
	})
}

// ResendVerification asks the API for a fresh code. POST /verify-otp/resend.
func (h *UIHandlers) ResendVerification(w http.ResponseWriter, r *http.Request) {
	userID := formInt(r.PostFormValue("user_id"))
	back := verifyOTPURL(userID)
	if userID == 0 {
		h.failAction(w, r, errMissingAccount, "resend code", "/login")
		return
	}
	if err := h.Accounts.ResendVerification(r.Context(), userID); err != nil {
		h.failAction(w, r, err, "resend code", back)
		return
	}
	if IsHTMX(r) {
		triggerToast(w, "A new code is on its way.", toastSuccess)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.succeed(w, r, "A new code is on its way.", back)
}

func forgotMeta() PageMeta {
	return PageMeta{Title: "Forgot password", PageTitle: "Forgot password", CurrentPage: PageForgotPassword}
}

// ForgotPasswordPage renders the reset request form. GET /forgot-password.
func (h *UIHandlers) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	h.accountPage(w, r, forgotMeta(), map[string]any{"FormData": forgotPasswordForm{}, "Errors": map[string]string{}})
}

// ForgotPasswordSubmit requests a reset link. POST /forgot-password.
func (h *UIHandlers) ForgotPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[forgotPasswordForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (forgotPasswordForm, map[string]string) {
			return parseAndValidate(r, func(f postedForm) forgotPasswordForm {
				return forgotPasswordForm{Email: f.Get("email")}
			})
		},
		Submit: func(ctx context.Context, f forgotPasswordForm) error {
			return h.Accounts.ForgotPassword(ctx, f.Email)
		},
		Renderer:       h.renderForm,
		SuccessURL:     "/login",
		SuccessMessage: "If an account uses that email, a reset link has been sent.",
		Action:         "request a password reset",
		PageMeta:       forgotMeta(),
	})
}

func resetMeta() PageMeta {
	return PageMeta{Title: "Reset password", PageTitle: "Reset password", CurrentPage: PageResetPassword}
}

// ResetPasswordPage renders the new-password form. GET /reset-password?token=.
func (h *UIHandlers) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	form := resetPasswordForm{Token: r.URL.Query().Get("token")}
	data := map[string]any{"FormData": form, "Errors": map[string]string{}}
	if form.Token == "" {
		data["Error"] = true
		data["ErrorMessage"] = "This reset link is invalid. Request a new one."
	}
	h.accountPage(w, r, resetMeta(), data)
}

// ResetPasswordSubmit sets the new password. POST /reset-password.
func (h *UIHandlers) ResetPasswordSubmit(w http.ResponseWriter, r *http.Request) {
	HandleForm(FormHandlerOpts[resetPasswordForm]{
		Handler: h, W: w, R: r, Mode: FormModeCreate,
		Parser: func(r *http.Request) (resetPasswordForm, map[string]string) {
			return parseAndValidate(r, func(f postedForm) resetPasswordForm {
				return resetPasswordForm{
					Token:           f.Get("token"),
					Password:        f.Raw("password"),
					ConfirmPassword: f.Raw("confirm_password"),
				}
			})
		},
		Submit: func(ctx context.Context, f resetPasswordForm) error {
			return h.Accounts.ResetPassword(ctx, f.Token, f.Password)
		},
		Renderer:       h.renderForm,
		SuccessURL:     "/login",
		SuccessMessage: "Your password has been reset. Sign in with the new one.",
		Action:         "reset password",
		PageMeta:       resetMeta(),
	})
}
