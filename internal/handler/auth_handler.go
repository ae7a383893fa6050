package handler

import (
	"campus-quiz/internal/dto"
	"campus-quiz/internal/service"
	"campus-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles registration and session HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	validator   *validation.Validator
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validation.NewValidator(),
	}
}

// Signup godoc
// @Summary Start registration
// @Description Validates the registration and emails a verification code. The account is created only after the code is verified.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.SignupRequest true "Registration details"
// @Success 202 {object} map[string]string
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateSignupRequest(req); len(errs) > 0 {
		return errs
	}

	if err := h.authService.Signup(c.Context(), req); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Verification code sent. Check your email.",
	})
}

// VerifyOTP godoc
// @Summary Complete registration
// @Description Verifies the emailed code, creates the account, and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.VerifyOTPRequest true "Email and code"
// @Success 201 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Failure 410 {object} middleware.ErrorResponse
// @Router /auth/verify [post]
func (h *AuthHandler) VerifyOTP(c *fiber.Ctx) error {
	var req dto.VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateVerifyOTPRequest(req); len(errs) > 0 {
		return errs
	}

	tokens, err := h.authService.VerifyOTP(c.Context(), req.Email, req.OTP)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(tokens)
}

// ResendOTP godoc
// @Summary Resend the verification code
// @Description Re-issues a fresh code for a pending signup and restarts the expiry window.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.ResendOTPRequest true "Pending signup email"
// @Success 202 {object} map[string]string
// @Failure 410 {object} middleware.ErrorResponse
// @Router /auth/resend [post]
func (h *AuthHandler) ResendOTP(c *fiber.Ctx) error {
	var req dto.ResendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "email is required")
	}

	if err := h.authService.ResendOTP(c.Context(), req.Email); err != nil {
		return err
	}
	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message": "Verification code resent.",
	})
}

// Login godoc
// @Summary Log in
// @Description Checks credentials and returns a token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateLoginRequest(req); len(errs) > 0 {
		return errs
	}

	tokens, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(tokens)
}

// Refresh godoc
// @Summary Refresh tokens
// @Description Exchanges a refresh token for a new token pair.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} middleware.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.RefreshToken == "" {
		return fiber.NewError(fiber.StatusBadRequest, "refresh_token is required")
	}

	tokens, err := h.authService.RefreshToken(c.Context(), req.RefreshToken)
	if err != nil {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid refresh token")
	}
	return c.JSON(tokens)
}
