package service

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mercado_api_v1/internal/api/dto"
	"mercado_api_v1/internal/middleware"
	"mercado_api_v1/internal/model"
	"mercado_api_v1/internal/repository"
)

// ==================== UserService ====================

type UserService struct {
	userRepo repository.UserRepository
	storage  StorageProvider
}

// NewUserService creates the user service
func NewUserService(userRepo repository.UserRepository, storage StorageProvider) *UserService {
	return &UserService{userRepo: userRepo, storage: storage}
}

// ==================== Authentication ====================

// Register creates an account and hashes the password
func (s *UserService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserInfo, error) {
	exists, err := s.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrUsernameExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: req.Username,
		Password: string(hashedPassword),
		Email:    req.Email,
		Bio:      req.Bio,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.toUserInfo(user), nil
}

// Login verifies credentials and issues a token pair
func (s *UserService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
		User:         s.toUserInfo(user),
	}, nil
}

// RefreshToken re-issues a token pair from a valid refresh token
func (s *UserService) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.RefreshTokenResponse, error) {
	claims, err := middleware.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.Subject != "refresh" {
		return nil, ErrInvalidToken
	}

	// The user must still exist.
	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil || user == nil {
		return nil, ErrInvalidToken
	}

	accessToken, refreshToken, err := middleware.GenerateTokenPair(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	cfg := middleware.GetJWTConfig()
	return &dto.RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(cfg.AccessTokenTTL),
	}, nil
}

// ==================== Profile ====================

// GetProfile returns the caller's profile
func (s *UserService) GetProfile(ctx context.Context, userID int64) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrNotFound
	}
	return s.toUserInfo(user), nil
}

// UpdateProfile updates the mutable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*dto.UserInfo, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, ErrNotFound
	}

	fields := map[string]interface{}{}
	if req.Email != nil {
		fields["email"] = *req.Email
	}
	if req.Bio != nil {
		fields["bio"] = *req.Bio
	}
	if len(fields) > 0 {
		if err := s.userRepo.UpdateFields(ctx, userID, fields); err != nil {
			return nil, err
		}
	}

	return s.GetProfile(ctx, userID)
}

// UploadAvatar stores the avatar blob first; the profile row is only
// touched after the upload succeeded.
func (s *UserService) UploadAvatar(ctx context.Context, userID int64, data []byte, filename, contentType string) (*dto.UserInfo, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, ErrNotFound
	}

	url, err := s.storage.Upload(ctx, data, AvatarKey(filename), contentType)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateFields(ctx, userID, map[string]interface{}{"avatar": url}); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, userID)
}

func (s *UserService) toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Bio:       user.Bio,
		Avatar:    user.Avatar,
		CreatedAt: user.CreatedAt,
	}
}
