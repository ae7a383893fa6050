package dto

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SignupRequest starts registration; the account is only created after OTP
// verification succeeds.
type SignupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Strand   string `json:"strand"`
}

// VerifyOTPRequest completes registration.
type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResendOTPRequest re-issues a pending verification code.
type ResendOTPRequest struct {
	Email string `json:"email"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RefreshTokenRequest exchanges a refresh token for a new pair.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// TokenResponse carries a fresh access/refresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// AuthClaims are the JWT claims for portal sessions.
type AuthClaims struct {
	UserID    string `json:"user_id"`
	Strand    string `json:"strand"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// ProfileResponse is the authenticated user's own profile.
type ProfileResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Strand    string    `json:"strand"`
	CreatedAt time.Time `json:"created_at"`
}

// CreatePostRequest adds an entry to the discussion feed.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// PostResponse is one discussion feed entry.
type PostResponse struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Strand    string    `json:"strand"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"created_at"`
}
