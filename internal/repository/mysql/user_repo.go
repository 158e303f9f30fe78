package mysql

import (
	"time"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	return &user, err
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("email = ?", email).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

func (r *UserRepository) UpdateLastLogin(userID uint64) error {
	now := time.Now()
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("last_login_at", now).Error
}

func (r *UserRepository) FindByUnsubscribeToken(token string) (*model.User, error) {
	var usr model.User
	err := r.DB.Where("unsubscribe_token = ?", token).First(&usr).Error
	return &usr, err
}

func (r *UserRepository) SetNotified(userID uint64, notified bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("is_notified", notified).Error
}
