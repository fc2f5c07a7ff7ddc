package redis

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rentease/rentease/internal/core/domain"
	"github.com/rentease/rentease/internal/core/ports"
)

// challengeTTL is the window within which an issued code stays valid.
const challengeTTL = 5 * time.Minute

// ChallengeStore keeps OTP challenges in Redis.
// Key format: otp:<purpose>:<email>, value: SHA-256 hex of the code.
// Expiry is handled by the key TTL; a successful Consume deletes the key
// so a code never validates twice.
type ChallengeStore struct {
	client *redis.Client
}

// NewChallengeStore creates a ChallengeStore wrapping the given Redis client.
func NewChallengeStore(client *redis.Client) *ChallengeStore {
	return &ChallengeStore{client: client}
}

// Put records a challenge, replacing any active one for the same purpose
// and email.
func (s *ChallengeStore) Put(ctx context.Context, purpose ports.OTPPurpose, email, code string) error {
	if err := s.client.Set(ctx, key(purpose, email), hashCode(code), challengeTTL).Err(); err != nil {
		return fmt.Errorf("otp put: %w", err)
	}
	return nil
}

// Consume validates the code against the active challenge. On a match the
// key is removed; a mismatch leaves the challenge in place for retry
// within the TTL.
func (s *ChallengeStore) Consume(ctx context.Context, purpose ports.OTPPurpose, email, code string) error {
	k := key(purpose, email)
	stored, err := s.client.Get(ctx, k).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.ErrInvalidOTP
		}
		return fmt.Errorf("otp consume: %w", err)
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(hashCode(code))) != 1 {
		return domain.ErrInvalidOTP
	}
	if err := s.client.Del(ctx, k).Err(); err != nil {
		return fmt.Errorf("otp consume: %w", err)
	}
	return nil
}

func key(purpose ports.OTPPurpose, email string) string {
	return fmt.Sprintf("otp:%s:%s", purpose, email)
}

func hashCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
