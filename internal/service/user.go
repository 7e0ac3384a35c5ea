package service

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"mediahub/internal/config"
	"mediahub/internal/model"
	"mediahub/internal/repository"
)

// UserService handles account registration, login and profile management.
type UserService struct {
	userRepo repository.UserRepository
	config   *config.Config
}

func NewUserService(userRepo repository.UserRepository, cfg *config.Config) *UserService {
	return &UserService{
		userRepo: userRepo,
		config:   cfg,
	}
}

// Register creates a new account. Email uniqueness is checked up front
// and again by the storage constraint, which covers the race between
// two concurrent registrations.
func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	exists, err := s.userRepo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, model.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:          strings.ToLower(req.Email),
		Username:       req.Username,
		PasswordHashed: string(hashed),
	}
	if req.FullName != "" {
		user.FullName = &req.FullName
	}
	if s.config.DefaultAvatarURL != "" {
		user.AvatarURL = &s.config.DefaultAvatarURL
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and returns the account.
// A missing account and a wrong password produce the same error so the
// response does not reveal which emails are registered.
func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == model.ErrUserNotFound {
			return nil, model.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHashed), []byte(req.Password)); err != nil {
		return nil, model.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, model.ErrAccountInactive
	}

	return user, nil
}

// GetByID returns a user's account data.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateProfile patches the caller's profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *model.UpdateProfileRequest) (*model.User, error) {
	return s.userRepo.UpdateProfile(ctx, userID, req.FullName, req.Bio)
}

// UpdateAvatar points the account at a newly uploaded avatar object.
func (s *UserService) UpdateAvatar(ctx context.Context, userID int64, avatarURL, avatarKey string) (*model.User, error) {
	return s.userRepo.UpdateAvatar(ctx, userID, avatarURL, avatarKey)
}
