package ports

import "context"

// AuthService defines the signup, login and password-reset use-cases.
// Signup and reset are both OTP-gated: Start issues a one-time code to the
// email address, Verify consumes it.
type AuthService interface {
	StartSignup(ctx context.Context, email string) error
	VerifySignup(ctx context.Context, name, email, password, otp string) error
	// Login returns a bearer token and the display name on success.
	// Unknown email and wrong password are not distinguished.
	Login(ctx context.Context, email, password string) (token, userName string, err error)
	StartPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, otp, newPassword string) error
}
