package handler

import (
	"campus-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UserHandler serves the authenticated user's account routes.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetProfile godoc
// @Summary Get the authenticated user's profile
// @Tags user
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(profile)
}

// DeleteAccount godoc
// @Summary Delete the authenticated user's account
// @Description Removes the account. Recorded attempts are retained for quiz statistics.
// @Tags user
// @Produce json
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /me [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.userService.DeleteAccount(c.Context(), userID(c)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
