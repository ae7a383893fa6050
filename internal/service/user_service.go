package service

import (
	"context"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/logger"

	"go.uber.org/zap"
)

// UserService serves the authenticated user's own account.
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error)
	// DeleteAccount removes the account. Recorded attempts are retained so
	// quiz statistics stay accurate.
	DeleteAccount(ctx context.Context, userID string) error
}

type userServiceImpl struct {
	userRepo domain.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo domain.UserRepository) UserService {
	return &userServiceImpl{userRepo: userRepo}
}

func (s *userServiceImpl) GetProfile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewUserNotFoundError(userID)
	}
	return &dto.ProfileResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Strand:    string(user.Strand),
		CreatedAt: user.CreatedAt,
	}, nil
}

func (s *userServiceImpl) DeleteAccount(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	logger.Get().Info("User account deleted", zap.String("userID", userID))
	return nil
}
