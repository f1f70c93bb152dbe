package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"namaste_cart/internal/domain/order/gateway"
	"namaste_cart/internal/domain/order/model"
	"namaste_cart/internal/domain/order/repository"
	"namaste_cart/internal/domain/order/strategy"
	productModel "namaste_cart/internal/domain/product/model"
	productService "namaste_cart/internal/domain/product/service"
	userModel "namaste_cart/internal/domain/user/model"
	"namaste_cart/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductCatalog 下单时校验商品与读取快照价格的目录接口
type ProductCatalog interface {
	Get(id string) (*productModel.Product, error)
}

// CartClearer 下单成功后清空购物车
type CartClearer interface {
	Clear(userID string) error
}

// UserDirectory 读取买家信息，用于支付链接的客户字段
type UserDirectory interface {
	GetByID(id string) (*userModel.User, error)
}

// OrderItemInput 下单条目
type OrderItemInput struct {
	ProductID string
	Qty       int
}

// CreateOrderResult 下单结果
// PaymentReference 在 order 模式下为网关订单号，link 模式下为支付短链
type CreateOrderResult struct {
	Order            *model.Order
	PaymentReference string
}

// VerifyInput 直连模式的支付确认入参
type VerifyInput struct {
	OrderID          string
	GatewayOrderID   string
	GatewayPaymentID string
	Signature        string
}

// OrderService 订单服务接口
type OrderService interface {
	CreateOrder(userID string, items []OrderItemInput) (*CreateOrderResult, error)
	VerifyPayment(input VerifyInput) (*model.Order, error)
	VerifyPaymentLink(linkID string) (*model.Order, error)
	CancelOrder(userID, orderID string) (*model.Order, error)
	GetOrder(userID, orderID string) (*model.Order, error)
	ListOrders(userID string) ([]model.Order, error)
	UpdateFulfillment(orderID, status string) (*model.Order, error)
}

type orderService struct {
	repo     repository.OrderRepository
	strategy strategy.PaymentStrategy
	gateway  gateway.PaymentGateway
	catalog  ProductCatalog
	carts    CartClearer
	users    UserDirectory
	secret   string
}

// NewOrderService 创建订单服务
func NewOrderService(
	repo repository.OrderRepository,
	st strategy.PaymentStrategy,
	gw gateway.PaymentGateway,
	catalog ProductCatalog,
	carts CartClearer,
	users UserDirectory,
	secret string,
) OrderService {
	return &orderService{
		repo:     repo,
		strategy: st,
		gateway:  gw,
		catalog:  catalog,
		carts:    carts,
		users:    users,
		secret:   secret,
	}
}

// CreateOrder 下单：校验库存 -> 结算总价 -> 网关建立支付意向 -> 落库
// 库存校验是全有或全无的，任一商品不可用则整单失败
func (s *orderService) CreateOrder(userID string, items []OrderItemInput) (*CreateOrderResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	total := decimal.Zero
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Qty < 1 {
			return nil, ErrInvalidQty
		}
		product, err := s.catalog.Get(item.ProductID)
		if err != nil {
			if errors.Is(err, productService.ErrProductNotFound) {
				return nil, ErrProductUnavailable
			}
			return nil, err
		}
		if !product.InStock || product.StockCount < item.Qty {
			return nil, ErrProductUnavailable
		}

		// 单价快照，创建之后目录调价不影响本单
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Qty))))
		orderItems = append(orderItems, model.OrderItem{
			ProductID: item.ProductID,
			Qty:       item.Qty,
			UnitPrice: product.Price,
		})
	}

	order := &model.Order{
		UserID:      userID,
		Items:       orderItems,
		TotalAmount: total,
		Currency:    "INR",
		Status:      model.StatusCreated,
	}
	// 提前生成本地订单号，作为网关收据号贯穿两侧
	order.ID = uuid.New().String()

	req := strategy.IntentRequest{
		AmountPaise: model.ToPaise(total),
		Currency:    order.Currency,
		Receipt:     order.ID,
	}
	if user, err := s.users.GetByID(userID); err == nil {
		req.CustomerName = user.FullName()
		req.CustomerEmail = user.Email
	} else {
		logger.Log.Warn("下单时读取用户信息失败", zap.String("user_id", userID), zap.Error(err))
	}

	intent, err := s.strategy.CreateIntent(req)
	if err != nil {
		logger.Log.Error("网关创建支付意向失败",
			zap.String("order_id", order.ID),
			zap.Int64("amount_paise", req.AmountPaise),
			zap.Error(err))
		return nil, ErrGateway
	}
	order.RazorpayRefID = intent.RefID

	if err := s.repo.Create(order); err != nil {
		// 网关侧已建立收款意向但本地无记录，必须报给运维侧排查
		logger.Log.Error("网关意向已创建但订单落库失败",
			zap.String("order_id", order.ID),
			zap.String("razorpay_ref_id", intent.RefID),
			zap.Int64("amount_paise", req.AmountPaise),
			zap.Error(err))
		return nil, ErrOrphanedIntent
	}

	if err := s.carts.Clear(userID); err != nil {
		logger.Log.Warn("下单后清空购物车失败", zap.String("user_id", userID), zap.Error(err))
	}

	return &CreateOrderResult{Order: order, PaymentReference: intent.PaymentRef}, nil
}

// VerifyPayment 直连模式对账：重算 HMAC 签名并常量时间比较
func (s *orderService) VerifyPayment(input VerifyInput) (*model.Order, error) {
	order, err := s.repo.GetByID(input.OrderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	// 重复确认同一笔支付时幂等返回
	if order.Status == model.StatusPaid && order.RazorpayPaymentID == input.GatewayPaymentID {
		return order, nil
	}

	// 网关订单号必须与本单的关联键一致，不一致按签名无效处理，不泄露细节
	if order.RazorpayRefID != input.GatewayOrderID {
		return nil, ErrSignatureInvalid
	}

	expected := s.computeSignature(input.GatewayOrderID, input.GatewayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(input.Signature)) {
		return nil, ErrSignatureInvalid
	}

	if err := s.markPaid(order.ID, input.GatewayPaymentID, input.Signature); err != nil {
		return nil, err
	}
	return s.repo.GetByID(order.ID)
}

// VerifyPaymentLink 链接模式对账：轮询网关链接状态，可幂等重入
func (s *orderService) VerifyPaymentLink(linkID string) (*model.Order, error) {
	link, err := s.gateway.FetchPaymentLink(linkID)
	if err != nil {
		logger.Log.Error("查询支付链接状态失败", zap.String("link_id", linkID), zap.Error(err))
		return nil, ErrGateway
	}

	switch link.Status {
	case gateway.LinkStatusPaid:
		order, err := s.repo.GetByRefID(linkID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrOrderNotFound
			}
			return nil, err
		}
		if order.Status == model.StatusPaid {
			return order, nil
		}

		paymentID := ""
		if len(link.PaymentIDs) > 0 {
			paymentID = link.PaymentIDs[0]
		}
		if err := s.markPaid(order.ID, paymentID, ""); err != nil {
			return nil, err
		}
		return s.repo.GetByID(order.ID)

	case gateway.LinkStatusExpired, gateway.LinkStatusCancelled:
		// 链接已失效，尽力把仍在 created 的订单推进到对应终态
		if order, err := s.repo.GetByRefID(linkID); err == nil && order.Status == model.StatusCreated {
			target := model.StatusExpired
			if link.Status == gateway.LinkStatusCancelled {
				target = model.StatusFailed
			}
			if err := s.repo.TransitionStatus(order.ID, model.StatusCreated, target); err != nil &&
				!errors.Is(err, repository.ErrStatusConflict) {
				logger.Log.Warn("标记失效支付链接对应的订单失败",
					zap.String("order_id", order.ID), zap.Error(err))
			}
		}
		return nil, ErrPaymentNotCompleted

	default:
		return nil, ErrPaymentNotCompleted
	}
}

// markPaid 条件更新进入 paid；并发确认撞上对方已成功时幂等吸收
func (s *orderService) markPaid(orderID, paymentID, signature string) error {
	err := s.repo.MarkPaid(orderID, paymentID, signature, time.Now())
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrStatusConflict) {
		current, getErr := s.repo.GetByID(orderID)
		if getErr == nil && current.Status == model.StatusPaid {
			return nil
		}
		return ErrStatusConflict
	}
	return err
}

// CancelOrder 取消订单；已支付的订单先全额退款再迁移状态
func (s *orderService) CancelOrder(userID, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByUserAndID(userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	switch {
	case order.Status == model.StatusCancelled:
		return nil, ErrAlreadyCancelled

	case order.Status == model.StatusPaid:
		if order.RazorpayPaymentID == "" {
			return nil, ErrRefundNotPossible
		}
		notes := map[string]interface{}{
			"reason":   "user cancelled order",
			"order_id": order.ID,
		}
		refund, err := s.gateway.RefundPayment(order.RazorpayPaymentID, model.ToPaise(order.TotalAmount), notes)
		if err != nil {
			// 退款失败时订单保持 paid 不动，调用方可重试
			logger.Log.Error("退款失败",
				zap.String("order_id", order.ID),
				zap.String("payment_id", order.RazorpayPaymentID),
				zap.Error(err))
			return nil, ErrRefundFailed
		}
		if err := s.repo.TransitionStatus(order.ID, model.StatusPaid, model.StatusCancelled); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				// 退款已成功但状态被并发改动，必须留痕人工对账
				logger.Log.Error("退款成功但状态迁移冲突",
					zap.String("order_id", order.ID),
					zap.String("refund_id", refund.ID))
				return nil, ErrStatusConflict
			}
			return nil, err
		}

	case model.CanTransition(order.Status, model.StatusCancelled):
		// 未支付订单直接取消，不触达网关
		if err := s.repo.TransitionStatus(order.ID, order.Status, model.StatusCancelled); err != nil {
			if errors.Is(err, repository.ErrStatusConflict) {
				return nil, ErrStatusConflict
			}
			return nil, err
		}

	default:
		return nil, ErrNotCancellable
	}

	return s.repo.GetByID(order.ID)
}

// GetOrder 查询本人订单详情
func (s *orderService) GetOrder(userID, orderID string) (*model.Order, error) {
	order, err := s.repo.GetByUserAndID(userID, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

// ListOrders 查询本人订单列表，按创建时间倒序
func (s *orderService) ListOrders(userID string) ([]model.Order, error) {
	return s.repo.ListByUser(userID)
}

// UpdateFulfillment 管理端履约状态推进：paid -> out_for_delivery -> delivered
func (s *orderService) UpdateFulfillment(orderID, status string) (*model.Order, error) {
	if status != model.StatusOutForDelivery && status != model.StatusDelivered {
		return nil, ErrInvalidTransition
	}

	order, err := s.repo.GetByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if !model.CanTransition(order.Status, status) {
		return nil, ErrInvalidTransition
	}

	if err := s.repo.TransitionStatus(order.ID, order.Status, status); err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, ErrStatusConflict
		}
		return nil, err
	}
	return s.repo.GetByID(orderID)
}

// computeSignature 按网关约定对 "orderID|paymentID" 计算 HMAC-SHA256 十六进制签名
func (s *orderService) computeSignature(gatewayOrderID, gatewayPaymentID string) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(gatewayOrderID + "|" + gatewayPaymentID))
	return hex.EncodeToString(mac.Sum(nil))
}
