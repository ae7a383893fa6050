package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-quiz/internal/config"
	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/otp"
	"campus-quiz/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var ErrInvalidJWTToken = errors.New("invalid jwt token")

// AuthService defines the interface for authentication operations. Signup is
// two-phase: the account only exists after the emailed code is verified.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) error
	VerifyOTP(ctx context.Context, email, code string) (*dto.TokenResponse, error)
	ResendOTP(ctx context.Context, email string) error
	Login(ctx context.Context, email, password string) (*dto.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error)
	ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error)
	CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error)
}

type authServiceImpl struct {
	userRepo  domain.UserRepository
	otpStore  *otp.Store
	mailer    domain.Mailer
	appConfig *config.Config
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(userRepo domain.UserRepository, otpStore *otp.Store, mailer domain.Mailer, appConfig *config.Config) (AuthService, error) {
	if appConfig.JWT.SecretKey == "" {
		return nil, errors.New("jwt secret key is not configured")
	}
	return &authServiceImpl{
		userRepo:  userRepo,
		otpStore:  otpStore,
		mailer:    mailer,
		appConfig: appConfig,
	}, nil
}

// Signup validates the registration, parks it as a pending signup, and emails
// a verification code. No user row is written yet.
func (s *authServiceImpl) Signup(ctx context.Context, req dto.SignupRequest) error {
	appLogger := logger.Get()

	strand, err := domain.ParseStrand(req.Strand)
	if err != nil {
		return domain.NewInvalidStrandError(req.Strand)
	}

	candidate := domain.NewUser(req.Username, req.Email, "pending", strand)
	if err := candidate.Validate(); err != nil {
		return err
	}
	if len(req.Password) < 8 {
		return domain.NewInvalidInputError("password must be at least 8 characters")
	}

	existing, err := s.userRepo.GetUserByEmail(ctx, candidate.Email)
	if err != nil {
		return fmt.Errorf("failed to check existing account: %w", err)
	}
	if existing != nil {
		return domain.NewEmailTakenError(candidate.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.NewInternalError("failed to hash password", err)
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return domain.NewInternalError("failed to generate verification code", err)
	}

	pending := otp.PendingSignup{
		Username:     candidate.Username,
		Email:        candidate.Email,
		PasswordHash: string(hash),
		Strand:       string(strand),
		Code:         code,
	}
	if err := s.otpStore.Put(ctx, pending); err != nil {
		return err
	}

	if err := s.mailer.SendOTP(ctx, candidate.Email, code); err != nil {
		return domain.NewInternalError("failed to send verification email", err)
	}

	appLogger.Info("Signup initiated, verification code sent",
		zap.String("email", candidate.Email),
		zap.String("strand", string(strand)))
	return nil
}

// VerifyOTP completes registration: on a correct code the user row is created
// and a token pair is issued immediately.
func (s *authServiceImpl) VerifyOTP(ctx context.Context, email, code string) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	pending, err := s.otpStore.Verify(ctx, email, code)
	if err != nil {
		return nil, err
	}

	user := domain.NewUser(pending.Username, pending.Email, pending.PasswordHash, domain.Strand(pending.Strand))
	user.ID = util.NewULID()
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	appLogger.Info("New user registered", zap.String("userID", user.ID), zap.String("email", user.Email))
	return s.issueTokens(ctx, user)
}

// ResendOTP re-issues a fresh code for a still-pending signup, restarting the
// expiry window.
func (s *authServiceImpl) ResendOTP(ctx context.Context, email string) error {
	pending, err := s.otpStore.Get(ctx, email)
	if err != nil {
		return err
	}

	code, err := otp.GenerateCode()
	if err != nil {
		return domain.NewInternalError("failed to generate verification code", err)
	}
	pending.Code = code
	if err := s.otpStore.Put(ctx, *pending); err != nil {
		return err
	}
	return s.mailer.SendOTP(ctx, email, code)
}

// Login checks credentials and issues a token pair. A wrong email and a wrong
// password produce the same error so accounts cannot be enumerated.
func (s *authServiceImpl) Login(ctx context.Context, email, password string) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if user == nil {
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		appLogger.Warn("Failed login attempt", zap.String("email", email))
		return nil, domain.NewError(domain.CodeInvalidCredentials, "Invalid email or password", nil)
	}

	appLogger.Info("User logged in", zap.String("userID", user.ID))
	return s.issueTokens(ctx, user)
}

func (s *authServiceImpl) issueTokens(ctx context.Context, user *domain.User) (*dto.TokenResponse, error) {
	accessToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.AccessTokenTTL, tokenTypeAccess)
	if err != nil {
		return nil, fmt.Errorf("failed to create access token: %w", err)
	}
	refreshToken, err := s.CreateJWT(ctx, user, s.appConfig.JWT.RefreshTokenTTL, tokenTypeRefresh)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return &dto.TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *authServiceImpl) CreateJWT(ctx context.Context, user *domain.User, ttl time.Duration, tokenType string) (string, error) {
	claims := dto.AuthClaims{
		UserID:    user.ID,
		Strand:    string(user.Strand),
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.appConfig.JWT.SecretKey))
}

func (s *authServiceImpl) ValidateJWT(ctx context.Context, tokenString string) (*dto.AuthClaims, error) {
	appLogger := logger.Get()
	token, err := jwt.ParseWithClaims(tokenString, &dto.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.appConfig.JWT.SecretKey), nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			appLogger.Warn("JWT token expired", zap.Error(err))
		} else {
			appLogger.Warn("JWT validation failed", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidJWTToken, err)
	}

	if claims, ok := token.Claims.(*dto.AuthClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, ErrInvalidJWTToken
}

func (s *authServiceImpl) RefreshToken(ctx context.Context, refreshTokenString string) (*dto.TokenResponse, error) {
	appLogger := logger.Get()

	claims, err := s.ValidateJWT(ctx, refreshTokenString)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token: %w", err)
	}
	if claims.TokenType != tokenTypeRefresh {
		return nil, errors.New("not a refresh token")
	}

	user, err := s.userRepo.GetUserByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user for refresh token: %w", err)
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(claims.UserID)
	}

	appLogger.Info("JWT token refreshed", zap.String("userID", user.ID))
	return s.issueTokens(ctx, user)
}
