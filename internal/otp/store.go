// Package otp manages pending signups awaiting email verification. A signup
// is parked in the cache under the applicant's email together with a 6-digit
// code; it either gets verified within the TTL or silently expires.
package otp

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"time"

	"campus-quiz/internal/cache"
	"campus-quiz/internal/domain"
)

// DefaultTTL matches the portal's original 10-minute verification window.
const DefaultTTL = 10 * time.Minute

// PendingSignup is the unverified registration parked until the applicant
// proves control of the email address.
type PendingSignup struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Strand       string `json:"strand"`
	Code         string `json:"code"`
}

// Store issues and verifies one-time codes backed by a domain.Cache.
type Store struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewStore creates an OTP store. A non-positive ttl falls back to DefaultTTL.
func NewStore(c domain.Cache, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{cache: c, ttl: ttl}
}

func signupKey(email string) string {
	return cache.GenerateCacheKey("auth", "pending_signup", email)
}

// GenerateCode returns a random zero-padded 6-digit code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// Put parks a pending signup under its email, replacing any earlier one and
// restarting the TTL.
func (s *Store) Put(ctx context.Context, pending PendingSignup) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return domain.NewInternalError("failed to encode pending signup", err)
	}
	if err := s.cache.Set(ctx, signupKey(pending.Email), string(data), s.ttl); err != nil {
		return domain.NewInternalError("failed to store pending signup", err)
	}
	return nil
}

// Get retrieves the pending signup for an email. An expired or absent entry
// returns an OTP_EXPIRED error; the applicant has to sign up again.
func (s *Store) Get(ctx context.Context, email string) (*PendingSignup, error) {
	raw, err := s.cache.Get(ctx, signupKey(email))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewError(domain.CodeOTPExpired, "Verification code expired or not found; please sign up again", nil)
		}
		return nil, domain.NewInternalError("failed to load pending signup", err)
	}
	var pending PendingSignup
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, domain.NewInternalError("failed to decode pending signup", err)
	}
	return &pending, nil
}

// Verify checks the submitted code against the pending signup and consumes
// the entry on success.
func (s *Store) Verify(ctx context.Context, email, code string) (*PendingSignup, error) {
	pending, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if pending.Code != code {
		return nil, domain.NewError(domain.CodeInvalidOTP, "Incorrect verification code", nil)
	}
	if err := s.cache.Delete(ctx, signupKey(email)); err != nil {
		return nil, domain.NewInternalError("failed to consume pending signup", err)
	}
	return pending, nil
}
