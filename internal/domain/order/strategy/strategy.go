package strategy

import (
	"fmt"

	"namaste_cart/internal/domain/order/gateway"
	"namaste_cart/internal/pkg/config"
)

// IntentRequest 创建支付意向所需的订单信息
type IntentRequest struct {
	AmountPaise   int64
	Currency      string
	Receipt       string
	CustomerName  string
	CustomerEmail string
}

// Intent 网关侧支付意向
// RefID 用于后续对账关联，PaymentRef 返回给客户端发起支付
type Intent struct {
	RefID      string
	PaymentRef string
}

// PaymentStrategy 支付模式策略接口
type PaymentStrategy interface {
	// Mode 返回策略对应的配置模式名
	Mode() string
	// CreateIntent 在网关创建支付意向
	CreateIntent(req IntentRequest) (*Intent, error)
}

// NewStrategy 按配置选择支付策略
func NewStrategy(mode string, gw gateway.PaymentGateway) (PaymentStrategy, error) {
	switch mode {
	case config.RazorpayModeOrder:
		return &OrderStrategy{gateway: gw}, nil
	case config.RazorpayModeLink:
		return &LinkStrategy{gateway: gw, callbackURL: config.GlobalConfig.Razorpay.CallbackURL}, nil
	default:
		return nil, fmt.Errorf("unknown razorpay mode: %s", mode)
	}
}
