package handler

import (
	"campus-quiz/internal/dto"
	"campus-quiz/internal/service"
	"campus-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the quiz authoring routes.
type AdminHandler struct {
	quizService service.QuizService
	validator   *validation.Validator
}

// NewAdminHandler creates a new AdminHandler instance
func NewAdminHandler(quizService service.QuizService) *AdminHandler {
	return &AdminHandler{
		quizService: quizService,
		validator:   validation.NewValidator(),
	}
}

// CreateQuiz godoc
// @Summary Create a quiz shell
// @Description Creates a quiz with an empty question bank. Questions are added through the replace endpoint.
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.CreateQuizRequest true "Quiz metadata"
// @Success 201 {object} dto.QuizSummary
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Security BearerAuth
// @Router /admin/quizzes [post]
func (h *AdminHandler) CreateQuiz(c *fiber.Ctx) error {
	var req dto.CreateQuizRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateCreateQuizRequest(req); len(errs) > 0 {
		return errs
	}

	summary, err := h.quizService.CreateQuiz(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(summary)
}

// ReplaceQuestions godoc
// @Summary Replace a quiz's question bank
// @Description Rebuilds the full question bank from structured submissions. The swap is atomic: on any validation failure the existing bank is untouched.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path string true "Quiz ID"
// @Param request body dto.ReplaceQuestionsRequest true "New question bank"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/quizzes/{id}/questions [put]
func (h *AdminHandler) ReplaceQuestions(c *fiber.Ctx) error {
	var req dto.ReplaceQuestionsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.quizService.ReplaceQuestions(c.Context(), c.Params("id"), req.Questions); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ReplaceQuestionsForm godoc
// @Summary Replace a quiz's question bank from the legacy admin form
// @Description Accepts the flat form encoding (question_text_0, question_type_0, options_0[], ...) the original admin panel posts.
// @Tags admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/quizzes/{id}/questions/form [post]
func (h *AdminHandler) ReplaceQuestionsForm(c *fiber.Ctx) error {
	fields := make(map[string][]string)
	c.Request().PostArgs().VisitAll(func(key, value []byte) {
		k := string(key)
		fields[k] = append(fields[k], string(value))
	})

	if err := h.quizService.ReplaceQuestionsFromForm(c.Context(), c.Params("id"), fields); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Description Removes a quiz. Refused with a conflict when the quiz already has recorded attempts.
// @Tags admin
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /admin/quizzes/{id} [delete]
func (h *AdminHandler) DeleteQuiz(c *fiber.Ctx) error {
	if err := h.quizService.DeleteQuiz(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
