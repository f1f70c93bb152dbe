package model

import (
	baseModel "namaste_cart/pkg/model"

	"github.com/shopspring/decimal"
)

// Product 商品模型
// 价格使用 numeric 精确存储（主货币单位，卢比），严禁浮点
type Product struct {
	baseModel.BaseModel
	Title       string          `gorm:"not null" json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Image       string          `json:"image"`
	Categories  []string        `gorm:"serializer:json;type:jsonb" json:"categories"`
	Tags        []string        `gorm:"serializer:json;type:jsonb" json:"tags"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	StockCount  int             `gorm:"default:0" json:"stockCount"`
	InStock     bool            `gorm:"default:true" json:"inStock"`
}
