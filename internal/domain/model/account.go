package model

// Credentials are exchanged for a bearer token.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a self-service account awaiting OTP verification.
type RegisterRequest struct {
	UserName  string `json:"user_name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Password  string `json:"password"`
}

// RegisterResult identifies the newly created, still unverified account.
type RegisterResult struct {
	UserID int `json:"user_id"`
}

// VerifyOTPRequest confirms an account with the one-time code sent by mail.
type VerifyOTPRequest struct {
	UserID int    `json:"user_id"`
	OTP    string `json:"otp"`
}

// ResendVerificationRequest asks the API to mail a new OTP.
type ResendVerificationRequest struct {
	UserID int `json:"user_id"`
}

// ForgotPasswordRequest starts a password reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest completes a password reset with the mailed token.
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}
