package strategy

import (
	"fmt"

	"namaste_cart/internal/domain/order/gateway"
	"namaste_cart/internal/pkg/config"
)

// LinkStrategy 托管支付链接模式：返回短链供客户端跳转，支付结果靠轮询对账
type LinkStrategy struct {
	gateway     gateway.PaymentGateway
	callbackURL string
}

func (s *LinkStrategy) Mode() string {
	return config.RazorpayModeLink
}

func (s *LinkStrategy) CreateIntent(req IntentRequest) (*Intent, error) {
	link, err := s.gateway.CreatePaymentLink(gateway.LinkRequest{
		AmountPaise:   req.AmountPaise,
		Currency:      req.Currency,
		Description:   fmt.Sprintf("Order %s", req.Receipt),
		ReferenceID:   req.Receipt,
		CallbackURL:   s.callbackURL,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
	})
	if err != nil {
		return nil, err
	}

	return &Intent{RefID: link.ID, PaymentRef: link.ShortURL}, nil
}

var (
	_ PaymentStrategy = (*OrderStrategy)(nil)
	_ PaymentStrategy = (*LinkStrategy)(nil)
)
