package repository

import (
	"namaste_cart/internal/domain/cart/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartRepository interface {
	ListByUser(userID string) ([]model.CartItem, error)
	Upsert(item *model.CartItem) error
	Remove(userID, productID string) error
	Clear(userID string) error
}

type cartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) ListByUser(userID string) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.Where("user_id = ?", userID).Order("created_at").Find(&items).Error
	return items, err
}

// Upsert 加购：已存在则累加数量
func (r *cartRepository) Upsert(item *model.CartItem) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"qty": gorm.Expr("cart_items.qty + ?", item.Qty),
		}),
	}).Create(item).Error
}

func (r *cartRepository) Remove(userID, productID string) error {
	result := r.db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&model.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Clear 清空购物车，下单成功后调用
func (r *cartRepository) Clear(userID string) error {
	return r.db.Where("user_id = ?", userID).Delete(&model.CartItem{}).Error
}
