package service

import (
	"context"
	"fmt"
	"strings"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/util"

	"go.uber.org/zap"
)

// PostService runs the strand discussion feed.
type PostService interface {
	// CreatePost screens the content through the profanity filter before
	// storing it.
	CreatePost(ctx context.Context, author string, strand domain.Strand, content string) (*dto.PostResponse, error)
	ListPosts(ctx context.Context) ([]dto.PostResponse, error)
	LikePost(ctx context.Context, postID string) error
	// AnalyzePost runs the pluggable content detector over a post's text.
	AnalyzePost(ctx context.Context, text string) (*domain.ContentReport, error)
}

type postServiceImpl struct {
	postRepo domain.PostRepository
	filter   domain.ProfanityFilter
	detector domain.ContentDetector
}

// NewPostService creates a new PostService.
func NewPostService(postRepo domain.PostRepository, filter domain.ProfanityFilter, detector domain.ContentDetector) PostService {
	return &postServiceImpl{postRepo: postRepo, filter: filter, detector: detector}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, author string, strand domain.Strand, content string) (*dto.PostResponse, error) {
	post := domain.NewPost(author, strand, strings.TrimSpace(content))
	if err := post.Validate(); err != nil {
		return nil, err
	}

	if flagged, words := s.filter.Flag(post.Content); flagged {
		logger.Get().Info("Post rejected by profanity filter",
			zap.String("author", author),
			zap.Strings("words", words))
		return nil, domain.NewError(domain.CodeProfanityRejected,
			fmt.Sprintf("Post contains blocked words: %s", strings.Join(words, ", ")), nil)
	}

	post.ID = util.NewULID()
	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	resp := toPostResponse(*post)
	return &resp, nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context) ([]dto.PostResponse, error) {
	posts, err := s.postRepo.ListPosts(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PostResponse, len(posts))
	for i, p := range posts {
		out[i] = toPostResponse(p)
	}
	return out, nil
}

func (s *postServiceImpl) LikePost(ctx context.Context, postID string) error {
	return s.postRepo.LikePost(ctx, postID)
}

func (s *postServiceImpl) AnalyzePost(ctx context.Context, text string) (*domain.ContentReport, error) {
	report, err := s.detector.Analyze(ctx, text)
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func toPostResponse(p domain.Post) dto.PostResponse {
	return dto.PostResponse{
		ID:        p.ID,
		Author:    p.Author,
		Strand:    string(p.Strand),
		Content:   p.Content,
		Likes:     p.Likes,
		CreatedAt: p.CreatedAt,
	}
}
