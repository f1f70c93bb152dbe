package model

import (
	baseModel "namaste_cart/pkg/model"
)

// CartItem 购物车条目，每个用户每个商品一行
type CartItem struct {
	baseModel.BaseModel
	UserID    string `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"userId"`
	ProductID string `gorm:"type:uuid;uniqueIndex:idx_cart_user_product;not null" json:"productId"`
	Qty       int    `gorm:"not null;default:1" json:"qty"`
}
