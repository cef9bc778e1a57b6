package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/scribeflow/scribeflow-api/internal/auth"
	"github.com/scribeflow/scribeflow-api/internal/config"
	"github.com/scribeflow/scribeflow-api/internal/domain"
	"github.com/scribeflow/scribeflow-api/internal/mapper"
	"github.com/scribeflow/scribeflow-api/internal/repository"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService handles registration, login and profile management
type UserService struct {
	userRepo   *repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewUserService creates a new UserService instance
func NewUserService(
	userRepo *repository.UserRepository,
	tokens *auth.TokenManager,
	cfg *config.AuthConfig,
	logger *zap.Logger,
) *UserService {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &UserService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: cost,
		logger:     logger,
	}
}

// Register creates a new account and returns a signed token for it
func (s *UserService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error) {
	if taken, err := s.userRepo.ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	if taken, err := s.userRepo.ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Theme:        domain.ThemeSystem,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered",
		zap.String("userID", user.ID.String()),
		zap.String("username", user.Username),
	)

	return s.authResponse(user)
}

// Login verifies credentials and returns a signed token
func (s *UserService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Run a dummy comparison so response timing doesn't reveal
			// whether the username exists
			_ = bcrypt.CompareHashAndPassword(
				[]byte("$2a$12$XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"),
				[]byte(req.Password),
			)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("failed login attempt",
			zap.String("username", req.Username),
		)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user logged in",
		zap.String("userID", user.ID.String()),
		zap.String("username", user.Username),
	)

	return s.authResponse(user)
}

// GetCurrent returns the profile of the authenticated user
func (s *UserService) GetCurrent(ctx context.Context) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// UpdateProfile applies partial profile changes for the authenticated user
func (s *UserService) UpdateProfile(ctx context.Context, req *domain.UpdateProfileRequest) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if req.Username != nil && *req.Username != user.Username {
		taken, err := s.userRepo.ExistsByUsername(ctx, *req.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to check username: %w", err)
		}
		if taken {
			return nil, ErrUsernameTaken
		}
		user.Username = *req.Username
	}

	if req.Email != nil && *req.Email != user.Email {
		taken, err := s.userRepo.ExistsByEmail(ctx, *req.Email)
		if err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		}
		if taken {
			return nil, ErrEmailTaken
		}
		user.Email = *req.Email
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}

	if req.Theme != nil {
		if !req.Theme.IsValid() {
			return nil, ErrInvalidTheme
		}
		user.Theme = *req.Theme
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("profile updated",
		zap.String("userID", user.ID.String()),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// SetProfileImage records the stored image reference on the user
func (s *UserService) SetProfileImage(ctx context.Context, imageRef string) (*domain.UserDTO, error) {
	userCtx, ok := auth.FromContext(ctx)
	if !ok {
		return nil, ErrUserContextRequired
	}

	user, err := s.userRepo.GetByID(ctx, userCtx.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.ProfileImage = imageRef
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("profile image updated",
		zap.String("userID", user.ID.String()),
		zap.String("image", imageRef),
	)

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) authResponse(user *domain.User) (*domain.AuthResponse, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID, user.Username, user.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthResponse{
		Token:     token,
		ExpiresAt: domain.FormatTimestamp(expiresAt),
		User:      mapper.ToUserDTO(user),
	}, nil
}
