package services

import (
	"time"

	"xideaflow_backend/internal/auth"
	"xideaflow_backend/internal/logger"
	"xideaflow_backend/internal/models"
	"xideaflow_backend/internal/repositories"
	"xideaflow_backend/internal/services/dto"
	"xideaflow_backend/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const refreshTokenTTL = 30 * 24 * time.Hour

type AuthService interface {
	Register(db *gorm.DB, req dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req dto.LoginRequest) (*dto.AuthResponse, error)
	RefreshToken(db *gorm.DB, req dto.RefreshTokenRequest) (*dto.AuthResponse, error)
	Logout(db *gorm.DB, req dto.LogoutRequest) error
}

type AuthServiceImpl struct {
	userRepo      repositories.UserRepository
	creditService CreditService
}

func NewAuthService(userRepo repositories.UserRepository, creditService CreditService) AuthService {
	return &AuthServiceImpl{userRepo: userRepo, creditService: creditService}
}

func (s *AuthServiceImpl) Register(db *gorm.DB, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
	}
	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// Opening the credit account here grants the signup bonus.
	if _, err := s.creditService.GetUserCredits(db, user.ID); err != nil {
		logger.Error("Failed to open credit account on signup", "error", err, "user_id", user.ID)
	}

	return s.issueTokenPair(db, user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(db, user)
}

// RefreshToken rotates the pair: the presented refresh token is
// consumed even when it has expired.
func (s *AuthServiceImpl) RefreshToken(db *gorm.DB, req dto.RefreshTokenRequest) (*dto.AuthResponse, error) {
	stored, err := s.userRepo.FindRefreshToken(db, req.RefreshToken)
	if err != nil {
		if apperrors.Is(err, repositories.ErrTokenNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.userRepo.DeleteRefreshToken(db, req.RefreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if stored.ExpiresAt.Before(time.Now()) {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, stored.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return s.issueTokenPair(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, req dto.LogoutRequest) error {
	if err := s.userRepo.DeleteRefreshToken(db, req.RefreshToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) issueTokenPair(db *gorm.DB, user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := auth.GenerateToken(user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	refreshToken := &models.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(refreshTokenTTL),
	}
	if err := s.userRepo.CreateRefreshToken(db, refreshToken); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken.Token,
		User: dto.UserDTO{
			ID:        user.ID,
			Email:     user.Email,
			Name:      user.Name,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
