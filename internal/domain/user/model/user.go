package model

import (
	baseModel "namaste_cart/pkg/model"
)

// 用户角色
const (
	RoleUser  = 1
	RoleAdmin = 2
)

// User 用户模型
type User struct {
	baseModel.BaseModel
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Phone      string `gorm:"index" json:"phone"`
	Password   string `gorm:"not null" json:"-"` // bcrypt 哈希，永不下发
	Role       int    `gorm:"default:1" json:"role"`
	IsVerified bool   `gorm:"default:false" json:"isVerified"`
	AvatarURL  string `json:"avatarUrl,omitempty"`
}

// FullName 拼接展示名
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
