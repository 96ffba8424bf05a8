package repositories

import (
	"errors"

	"xideaflow_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrTokenNotFound     = errors.New("refresh token not found")
)

type UserRepository interface {
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	Create(db *gorm.DB, user *models.User) error

	CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error
	FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error)
	DeleteRefreshToken(db *gorm.DB, token string) error
	DeleteUserRefreshTokens(db *gorm.DB, userID string) error
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	var existing models.User
	if err := db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(user).Error
}

// RefreshToken operations

func (r *UserRepositoryImpl) CreateRefreshToken(db *gorm.DB, token *models.RefreshToken) error {
	return db.Create(token).Error
}

func (r *UserRepositoryImpl) FindRefreshToken(db *gorm.DB, token string) (*models.RefreshToken, error) {
	var rt models.RefreshToken
	err := db.First(&rt, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}
	return &rt, nil
}

func (r *UserRepositoryImpl) DeleteRefreshToken(db *gorm.DB, token string) error {
	return db.Where("token = ?", token).Delete(&models.RefreshToken{}).Error
}

func (r *UserRepositoryImpl) DeleteUserRefreshTokens(db *gorm.DB, userID string) error {
	return db.Where("user_id = ?", userID).Delete(&models.RefreshToken{}).Error
}
