package ports

import "context"

// OTPPurpose discriminates the two challenge flows so a signup code can
// never satisfy a password reset and vice versa.
type OTPPurpose string

const (
	OTPSignup OTPPurpose = "signup"
	OTPReset  OTPPurpose = "reset"
)

// ChallengeStore holds ephemeral OTP challenges: one active code per
// (purpose, email), expiring after an implementation-defined window.
type ChallengeStore interface {
	// Put records a challenge, replacing any active one for the same
	// purpose and email.
	Put(ctx context.Context, purpose OTPPurpose, email, code string) error
	// Consume validates the code against the active challenge and removes
	// it. A successful Consume is single-use: the same code never
	// validates twice. Returns domain.ErrInvalidOTP on mismatch, expiry
	// or absence.
	Consume(ctx context.Context, purpose OTPPurpose, email, code string) error
}
