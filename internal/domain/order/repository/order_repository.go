package repository

import (
	"errors"
	"time"

	"namaste_cart/internal/domain/order/model"

	"gorm.io/gorm"
)

var (
	// ErrNotFound 订单不存在
	ErrNotFound = errors.New("order not found")
	// ErrStatusConflict 条件更新未命中，状态已被并发修改
	ErrStatusConflict = errors.New("order status conflict")
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *model.Order) error
	GetByID(id string) (*model.Order, error)
	GetByUserAndID(userID, id string) (*model.Order, error)
	GetByRefID(refID string) (*model.Order, error)
	ListByUser(userID string) ([]model.Order, error)
	TransitionStatus(id, from, to string) error
	MarkPaid(id, paymentID, signature string, paidAt time.Time) error
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create 在事务内落库订单与明细
func (r *orderRepository) Create(order *model.Order) error {
	return r.db.Create(order).Error
}

func (r *orderRepository) GetByID(id string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserAndID(userID, id string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Where("id = ? AND user_id = ?", id, userID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// GetByRefID 按网关关联键查询，对账入口
func (r *orderRepository) GetByRefID(refID string) (*model.Order, error) {
	var order model.Order
	err := r.db.Preload("Items").Where("razorpay_ref_id = ?", refID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByUser(userID string) ([]model.Order, error) {
	var orders []model.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// TransitionStatus 乐观条件更新：WHERE 带上期望状态，0 行即冲突
func (r *orderRepository) TransitionStatus(id, from, to string) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}

// MarkPaid 仅允许从 created 进入 paid，并发重复确认只会生效一次
func (r *orderRepository) MarkPaid(id, paymentID, signature string, paidAt time.Time) error {
	result := r.db.Model(&model.Order{}).
		Where("id = ? AND status = ?", id, model.StatusCreated).
		Updates(map[string]interface{}{
			"status":              model.StatusPaid,
			"razorpay_payment_id": paymentID,
			"razorpay_signature":  signature,
			"is_paid":             true,
			"paid_at":             paidAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrStatusConflict
	}
	return nil
}
