package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	apperr "companyhub/internal/errors"
)

const (
	otpCodeKeyPrefix     = "otp:code:"
	otpAttemptsKeyPrefix = "otp:attempts:"

	otpDigits      = 6
	otpMaxAttempts = 5
)

// OTPStore issues one-time codes and matches submissions against them.
type OTPStore interface {
	Issue(ctx context.Context, userID string) (string, error)
	Verify(ctx context.Context, userID, code string) error
}

// RedisOTPStore keeps issued codes and attempt counters in redis. Unlike the
// read-through cache, failures here are real errors: a code that cannot be
// stored must not be reported as sent.
type RedisOTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// Ensure RedisOTPStore implements OTPStore
var _ OTPStore = (*RedisOTPStore)(nil)

// NewOTPStore creates a redis-backed OTP store with the given code lifetime.
func NewOTPStore(client *redis.Client, ttl time.Duration) *RedisOTPStore {
	return &RedisOTPStore{client: client, ttl: ttl}
}

// Issue generates a fresh code for the user, replacing any outstanding one
// and resetting the attempt counter.
func (s *RedisOTPStore) Issue(ctx context.Context, userID string) (string, error) {
	code, err := generateCode(otpDigits)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}

	if err := s.client.Set(ctx, otpCodeKeyPrefix+userID, code, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	if err := s.client.Del(ctx, otpAttemptsKeyPrefix+userID).Err(); err != nil {
		return "", fmt.Errorf("reset otp attempts: %w", err)
	}

	return code, nil
}

// Verify matches a submitted code against the outstanding one. Attempts are
// counted per issued code; once exhausted the code is discarded and a new one
// must be requested.
func (s *RedisOTPStore) Verify(ctx context.Context, userID, code string) error {
	attemptsKey := otpAttemptsKeyPrefix + userID
	attempts, err := s.client.Incr(ctx, attemptsKey).Result()
	if err != nil {
		return fmt.Errorf("count otp attempt: %w", err)
	}
	if attempts == 1 {
		// Counter lives as long as a code could.
		s.client.Expire(ctx, attemptsKey, s.ttl)
	}
	if attempts > otpMaxAttempts {
		s.client.Del(ctx, otpCodeKeyPrefix+userID)
		return apperr.ErrOTPAttemptsExceeded
	}

	stored, err := s.client.Get(ctx, otpCodeKeyPrefix+userID).Result()
	if err == redis.Nil {
		return apperr.ErrOTPInvalid
	}
	if err != nil {
		return fmt.Errorf("load otp: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return apperr.ErrOTPInvalid
	}

	s.client.Del(ctx, otpCodeKeyPrefix+userID, attemptsKey)
	return nil
}

func generateCode(digits int) (string, error) {
	max := big.NewInt(1)
	for i := 0; i < digits; i++ {
		max.Mul(max, big.NewInt(10))
	}
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", digits, n), nil
}
