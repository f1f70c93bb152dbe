package model

import (
	"time"

	baseModel "namaste_cart/pkg/model"

	"github.com/shopspring/decimal"
)

// 订单状态
// 状态只能沿 allowedTransitions 的有向边前进，任何状态都不会回到 created
const (
	StatusCreated        = "created"
	StatusPaid           = "paid"
	StatusFailed         = "failed"
	StatusCancelled      = "cancelled"
	StatusExpired        = "expired"
	StatusOutForDelivery = "out_for_delivery"
	StatusDelivered      = "delivered"
)

// Order 订单模型，一次结算的快照
type Order struct {
	baseModel.BaseModel
	UserID      string          `gorm:"type:uuid;index;not null" json:"userId"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"totalAmount"` // 主货币单位（卢比），创建后不再重算
	Currency    string          `gorm:"default:'INR'" json:"currency"`
	Status      string          `gorm:"default:'created';index" json:"status"`

	// 网关侧关联ID：order 模式为 razorpay order id，link 模式为 payment link id
	// 对账时作为唯一查找键，全表唯一
	RazorpayRefID     string `gorm:"uniqueIndex;not null" json:"razorpayRefId"`
	RazorpayPaymentID string `json:"razorpayPaymentId,omitempty"`
	RazorpaySignature string `json:"-"`

	IsPaid bool       `gorm:"default:false" json:"isPaid"`
	PaidAt *time.Time `json:"paidAt,omitempty"`
}

// OrderItem 订单条目，下单时的商品和单价快照
type OrderItem struct {
	baseModel.BaseModel
	OrderID   string          `gorm:"type:uuid;index;not null" json:"orderId"`
	ProductID string          `gorm:"type:uuid;not null" json:"productId"`
	Qty       int             `gorm:"not null" json:"qty"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unitPrice"`
}

// allowedTransitions 状态机的有向边
var allowedTransitions = map[string][]string{
	StatusCreated:        {StatusPaid, StatusCancelled, StatusFailed, StatusExpired},
	StatusPaid:           {StatusCancelled, StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

// CanTransition 判断状态迁移是否合法
func CanTransition(from, to string) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminal 判断是否终态
func IsTerminal(status string) bool {
	return len(allowedTransitions[status]) == 0
}

// ToPaise 主货币单位转最小货币单位（卢比 -> 派萨）
// 网关金额字段必须为整数派萨，换算必须精确，禁止浮点
func ToPaise(amount decimal.Decimal) int64 {
	return amount.Truncate(2).Shift(2).IntPart()
}
