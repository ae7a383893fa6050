package handler

import (
	"campus-quiz/internal/dto"
	"campus-quiz/internal/middleware"
	"campus-quiz/internal/service"
	"campus-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler serves the learner-facing quiz routes: the dashboard listing,
// the take-quiz gate, submission, and history.
type QuizHandler struct {
	quizService    service.QuizService
	attemptService service.AttemptService
	validator      *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(quizService service.QuizService, attemptService service.AttemptService) *QuizHandler {
	return &QuizHandler{
		quizService:    quizService,
		attemptService: attemptService,
		validator:      validation.NewValidator(),
	}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	return id
}

func userStrand(c *fiber.Ctx) string {
	strand, _ := c.Locals(middleware.StrandKey).(string)
	return strand
}

// ListQuizzes godoc
// @Summary List quizzes for the dashboard
// @Description Returns quiz summaries. With a token the list is scoped to the user's strand by default; anonymous callers see everything. An explicit strand query overrides it; "all" lists everything.
// @Tags quiz
// @Produce json
// @Param strand query string false "Strand filter (defaults to the user's strand when authenticated)"
// @Success 200 {array} dto.QuizSummary
// @Failure 400 {object} middleware.ErrorResponse
// @Router /quizzes [get]
func (h *QuizHandler) ListQuizzes(c *fiber.Ctx) error {
	strand := c.Query("strand")
	if strand == "" {
		strand = userStrand(c)
	}
	if strand == "all" {
		strand = ""
	}

	summaries, err := h.quizService.ListQuizzes(c.Context(), strand)
	if err != nil {
		return err
	}
	return c.JSON(summaries)
}

// StartQuiz godoc
// @Summary Start a quiz
// @Description Admits the learner to a quiz they have not attempted yet. Questions come back with answer keys stripped.
// @Tags quiz
// @Produce json
// @Param id path string true "Quiz ID"
// @Success 200 {object} dto.QuizTakeResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /quizzes/{id}/take [get]
func (h *QuizHandler) StartQuiz(c *fiber.Ctx) error {
	resp, err := h.attemptService.StartQuiz(c.Context(), userID(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitAttempt godoc
// @Summary Submit quiz answers
// @Description Grades the submission, applies the reported integrity signals, and records the attempt. The first submission per quiz is final.
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.SubmitAttemptRequest true "Answers and integrity flags"
// @Success 201 {object} dto.AttemptResultResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /attempts [post]
func (h *QuizHandler) SubmitAttempt(c *fiber.Ctx) error {
	var req dto.SubmitAttemptRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateSubmitAttemptRequest(req); len(errs) > 0 {
		return errs
	}

	resp, err := h.attemptService.Submit(c.Context(), userID(c), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// GetHistory godoc
// @Summary List the learner's attempt history
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.AttemptSummary
// @Security BearerAuth
// @Router /me/attempts [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.attemptService.GetHistory(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(history)
}
