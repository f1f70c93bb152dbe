package gateway

import (
	"errors"
	"fmt"
	"time"

	"namaste_cart/internal/pkg/config"
	"namaste_cart/pkg/metrics"

	razorpay "github.com/razorpay/razorpay-go"
)

// 网关外呼超时（秒），超时归为可重试错误
const clientTimeoutSeconds = 10

// RazorpayGateway Razorpay 网关实现
type RazorpayGateway struct {
	client  *razorpay.Client
	metrics *metrics.Collector
}

// NewRazorpayGateway 创建 Razorpay 客户端
func NewRazorpayGateway(m *metrics.Collector) (*RazorpayGateway, error) {
	cfg := config.GlobalConfig.Razorpay
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, errors.New("razorpay config missing")
	}

	client := razorpay.NewClient(cfg.KeyID, cfg.KeySecret)
	client.SetTimeout(clientTimeoutSeconds)

	return &RazorpayGateway{client: client, metrics: m}, nil
}

// CreateOrder 同步创建网关订单
func (g *RazorpayGateway) CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	start := time.Now()
	body, err := g.client.Order.Create(data, nil)
	g.observe("create_order", err, start)
	if err != nil {
		return nil, err
	}

	id, err := stringField(body, "id")
	if err != nil {
		return nil, err
	}
	return &GatewayOrder{ID: id}, nil
}

// CreatePaymentLink 创建托管支付链接
func (g *RazorpayGateway) CreatePaymentLink(req LinkRequest) (*PaymentLink, error) {
	data := map[string]interface{}{
		"amount":          req.AmountPaise,
		"currency":        req.Currency,
		"description":     req.Description,
		"reference_id":    req.ReferenceID,
		"callback_url":    req.CallbackURL,
		"callback_method": "get",
	}
	if req.CustomerName != "" || req.CustomerEmail != "" {
		data["customer"] = map[string]interface{}{
			"name":  req.CustomerName,
			"email": req.CustomerEmail,
		}
	}

	start := time.Now()
	body, err := g.client.PaymentLink.Create(data, nil)
	g.observe("create_payment_link", err, start)
	if err != nil {
		return nil, err
	}

	return parsePaymentLink(body)
}

// FetchPaymentLink 查询支付链接状态
func (g *RazorpayGateway) FetchPaymentLink(id string) (*PaymentLink, error) {
	start := time.Now()
	body, err := g.client.PaymentLink.Fetch(id, nil, nil)
	g.observe("fetch_payment_link", err, start)
	if err != nil {
		return nil, err
	}

	return parsePaymentLink(body)
}

// RefundPayment 全额/部分退款
func (g *RazorpayGateway) RefundPayment(paymentID string, amountPaise int64, notes map[string]interface{}) (*Refund, error) {
	data := map[string]interface{}{}
	if len(notes) > 0 {
		data["notes"] = notes
	}

	start := time.Now()
	body, err := g.client.Payment.Refund(paymentID, int(amountPaise), data, nil)
	g.observe("refund_payment", err, start)
	if err != nil {
		return nil, err
	}

	id, err := stringField(body, "id")
	if err != nil {
		return nil, err
	}
	return &Refund{ID: id}, nil
}

func (g *RazorpayGateway) observe(operation string, err error, start time.Time) {
	if g.metrics != nil {
		g.metrics.ObserveGatewayCall(operation, err, time.Since(start))
	}
}

// parsePaymentLink 解析支付链接响应体
func parsePaymentLink(body map[string]interface{}) (*PaymentLink, error) {
	id, err := stringField(body, "id")
	if err != nil {
		return nil, err
	}

	link := &PaymentLink{ID: id}
	if v, ok := body["short_url"].(string); ok {
		link.ShortURL = v
	}
	if v, ok := body["status"].(string); ok {
		link.Status = v
	}

	// payments 数组只在已有支付流水时出现
	if payments, ok := body["payments"].([]interface{}); ok {
		for _, p := range payments {
			entry, ok := p.(map[string]interface{})
			if !ok {
				continue
			}
			if pid, ok := entry["payment_id"].(string); ok && pid != "" {
				link.PaymentIDs = append(link.PaymentIDs, pid)
			} else if pid, ok := entry["id"].(string); ok && pid != "" {
				link.PaymentIDs = append(link.PaymentIDs, pid)
			}
		}
	}

	return link, nil
}

func stringField(body map[string]interface{}, field string) (string, error) {
	v, ok := body[field].(string)
	if !ok || v == "" {
		return "", fmt.Errorf("gateway response missing %q field", field)
	}
	return v, nil
}

var _ PaymentGateway = (*RazorpayGateway)(nil)
