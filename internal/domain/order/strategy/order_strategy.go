package strategy

import (
	"namaste_cart/internal/domain/order/gateway"
	"namaste_cart/internal/pkg/config"
)

// OrderStrategy 直连订单模式：客户端拿网关订单号走 checkout，完成后回传签名
type OrderStrategy struct {
	gateway gateway.PaymentGateway
}

func (s *OrderStrategy) Mode() string {
	return config.RazorpayModeOrder
}

func (s *OrderStrategy) CreateIntent(req IntentRequest) (*Intent, error) {
	gwOrder, err := s.gateway.CreateOrder(req.AmountPaise, req.Currency, req.Receipt)
	if err != nil {
		return nil, err
	}

	// 直连模式下网关订单号同时充当关联键与客户端支付引用
	return &Intent{RefID: gwOrder.ID, PaymentRef: gwOrder.ID}, nil
}
