package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rentease/rentease/internal/api/metrics"
	"github.com/rentease/rentease/internal/core/domain"
	"github.com/rentease/rentease/internal/core/ports"
)

const otpDigits = 6

// AuthService implements OTP-gated signup, login and password reset.
type AuthService struct {
	users      ports.UserRepository
	challenges ports.ChallengeStore
	mailer     ports.Mailer
	jwtSecret  string
	tokenTTL   time.Duration
	logger     zerolog.Logger
}

func NewAuthService(users ports.UserRepository, challenges ports.ChallengeStore, mailer ports.Mailer, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{
		users:      users,
		challenges: challenges,
		mailer:     mailer,
		jwtSecret:  jwtSecret,
		tokenTTL:   tokenTTL,
		logger:     logger,
	}
}

// StartSignup issues a signup OTP and emails it. Already-registered
// addresses are refused before any challenge is created.
func (s *AuthService) StartSignup(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}
	return s.issueChallenge(ctx, ports.OTPSignup, email, "Your RentEase signup code")
}

// VerifySignup consumes the signup challenge and creates the account.
func (s *AuthService) VerifySignup(ctx context.Context, name, email, password, otp string) error {
	if email == "" || password == "" {
		return domain.ErrInvalidCredentials
	}
	if err := s.challenges.Consume(ctx, ports.OTPSignup, email, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	_, err = s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies the credential and returns a signed token plus the
// display name. A missing account and a wrong password both yield
// domain.ErrInvalidCredentials so the response cannot leak which it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	if email == "" || password == "" {
		return "", "", domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return "", "", domain.ErrInvalidCredentials
		}
		return "", "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return "", "", domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return token, user.DisplayName(), nil
}

// StartPasswordReset issues a reset OTP and emails it.
func (s *AuthService) StartPasswordReset(ctx context.Context, email string) error {
	if _, err := s.users.FindByEmail(ctx, email); err != nil {
		return err
	}
	return s.issueChallenge(ctx, ports.OTPReset, email, "Your RentEase password reset code")
}

// ResetPassword consumes the reset challenge and replaces the stored hash.
func (s *AuthService) ResetPassword(ctx context.Context, email, otp, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}
	if err := s.challenges.Consume(ctx, ports.OTPReset, email, otp); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePasswordHash(ctx, email, string(hash)); err != nil {
		return err
	}

	s.logger.Info().Str("email", email).Msg("password reset")
	return nil
}

func (s *AuthService) issueChallenge(ctx context.Context, purpose ports.OTPPurpose, email, subject string) error {
	code, err := generateOTP()
	if err != nil {
		return err
	}
	if err := s.challenges.Put(ctx, purpose, email, code); err != nil {
		return err
	}
	body := fmt.Sprintf("Your one-time code is %s. It expires in 5 minutes.", code)
	if err := s.mailer.Send(ctx, email, subject, body); err != nil {
		s.logger.Error().Err(err).Str("email", email).Str("purpose", string(purpose)).Msg("otp email dispatch failed")
		return err
	}
	metrics.OTPIssuedTotal.WithLabelValues(string(purpose)).Inc()
	s.logger.Info().Str("email", email).Str("purpose", string(purpose)).Msg("otp issued")
	return nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"name":    user.Name,
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// generateOTP returns a uniformly random numeric code with otpDigits digits.
func generateOTP() (string, error) {
	max := big.NewInt(1)
	for i := 0; i < otpDigits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", otpDigits, n), nil
}
