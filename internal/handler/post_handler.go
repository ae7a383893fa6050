package handler

import (
	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/service"
	"campus-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PostHandler serves the discussion feed routes.
type PostHandler struct {
	postService service.PostService
	userService service.UserService
	validator   *validation.Validator
}

// NewPostHandler creates a new PostHandler instance
func NewPostHandler(postService service.PostService, userService service.UserService) *PostHandler {
	return &PostHandler{
		postService: postService,
		userService: userService,
		validator:   validation.NewValidator(),
	}
}

// ListPosts godoc
// @Summary List discussion posts
// @Tags posts
// @Produce json
// @Success 200 {array} dto.PostResponse
// @Security BearerAuth
// @Router /posts [get]
func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	posts, err := h.postService.ListPosts(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(posts)
}

// CreatePost godoc
// @Summary Create a discussion post
// @Description Screens the content through the profanity filter before storing it.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Post content"
// @Success 201 {object} dto.PostResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /posts [post]
func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if errs := h.validator.ValidateCreatePostRequest(req); len(errs) > 0 {
		return errs
	}

	profile, err := h.userService.GetProfile(c.Context(), userID(c))
	if err != nil {
		return err
	}

	post, err := h.postService.CreatePost(c.Context(), profile.Username, domain.Strand(profile.Strand), req.Content)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(post)
}

// LikePost godoc
// @Summary Like a discussion post
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Security BearerAuth
// @Router /posts/{id}/like [post]
func (h *PostHandler) LikePost(c *fiber.Ctx) error {
	if err := h.postService.LikePost(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// AnalyzePost godoc
// @Summary Analyze text with the content detector
// @Description Runs the pluggable content detector. The default deployment reports the check as unsupported.
// @Tags posts
// @Accept json
// @Produce json
// @Param request body dto.CreatePostRequest true "Text to analyze"
// @Success 200 {object} domain.ContentReport
// @Security BearerAuth
// @Router /posts/analyze [post]
func (h *PostHandler) AnalyzePost(c *fiber.Ctx) error {
	var req dto.CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	report, err := h.postService.AnalyzePost(c.Context(), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(report)
}
