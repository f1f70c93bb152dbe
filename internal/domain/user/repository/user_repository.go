package repository

import (
	"namaste_cart/internal/domain/user/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *model.User) error
	GetByID(id string) (*model.User, error)
	GetByEmail(email string) (*model.User, error)
	ExistsByEmailOrPhone(email, phone string) (bool, error)
	Update(user *model.User) error
	UpdatePassword(email, hashedPassword string) error
	Delete(user *model.User) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *model.User) error {
	return r.db.Create(user).Error
}

func (r *userRepository) GetByID(id string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(email string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) ExistsByEmailOrPhone(email, phone string) (bool, error) {
	var count int64
	q := r.db.Model(&model.User{}).Where("email = ?", email)
	if phone != "" {
		q = r.db.Model(&model.User{}).Where("email = ? OR phone = ?", email, phone)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) Update(user *model.User) error {
	return r.db.Save(user).Error
}

// UpdatePassword 按邮箱更新密码哈希
func (r *userRepository) UpdatePassword(email, hashedPassword string) error {
	result := r.db.Model(&model.User{}).
		Where("email = ?", email).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepository) Delete(user *model.User) error {
	return r.db.Delete(user).Error
}
