package repository

import (
	"context"
	"errors"

	"campaign/backend/internal/models"

	"gorm.io/gorm"
)

// UserRepository manages dashboard accounts.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id uint, role models.Role) error
	UpdatePassword(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

type GormUserRepository struct {
	store DBProvider
}

// NewUserRepository returns a gorm backed UserRepository.
func NewUserRepository(store DBProvider) *GormUserRepository {
	return &GormUserRepository{store: store}
}

func (r *GormUserRepository) Count(ctx context.Context) (int64, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	if err := db.Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := db.Where("username = ?", username).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) List(ctx context.Context) ([]models.User, error) {
	db, err := r.store.DB(ctx)
	if err != nil {
		return nil, err
	}
	var users []models.User
	if err := db.Select("id", "username", "role").Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	if err := db.Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (r *GormUserRepository) UpdateRole(ctx context.Context, id uint, role models.Role) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return affected(db.Model(&models.User{}).Where("id = ?", id).Update("role", role))
}

func (r *GormUserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return affected(db.Model(&models.User{}).Where("id = ?", id).Update("password", hash))
}

func (r *GormUserRepository) Delete(ctx context.Context, id uint) error {
	db, err := r.store.DB(ctx)
	if err != nil {
		return err
	}
	return affected(db.Where("id = ?", id).Delete(&models.User{}))
}
