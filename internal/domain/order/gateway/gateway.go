package gateway

// 支付网关返回的支付链接状态
const (
	LinkStatusCreated   = "created"
	LinkStatusPaid      = "paid"
	LinkStatusExpired   = "expired"
	LinkStatusCancelled = "cancelled"
)

// GatewayOrder 网关订单
type GatewayOrder struct {
	ID string
}

// PaymentLink 托管支付链接
type PaymentLink struct {
	ID         string
	ShortURL   string
	Status     string
	PaymentIDs []string // 关联的支付流水，按时间先后
}

// Refund 退款结果
type Refund struct {
	ID string
}

// LinkRequest 创建支付链接的请求参数
type LinkRequest struct {
	AmountPaise   int64
	Currency      string
	Description   string
	ReferenceID   string
	CallbackURL   string
	CustomerName  string
	CustomerEmail string
}

// PaymentGateway 支付网关客户端
// 所有调用都是同步外呼，客户端层面配置了超时，失败视为调用方可重试
type PaymentGateway interface {
	// CreateOrder 同步创建网关订单，金额为最小货币单位（派萨）
	CreateOrder(amountPaise int64, currency, receipt string) (*GatewayOrder, error)

	// CreatePaymentLink 创建托管支付链接
	CreatePaymentLink(req LinkRequest) (*PaymentLink, error)

	// FetchPaymentLink 查询支付链接状态
	FetchPaymentLink(id string) (*PaymentLink, error)

	// RefundPayment 对某笔支付发起退款，金额为最小货币单位
	RefundPayment(paymentID string, amountPaise int64, notes map[string]interface{}) (*Refund, error)
}
