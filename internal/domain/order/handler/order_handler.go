package handler

import (
	"errors"
	"net/http"

	"namaste_cart/internal/domain/order/service"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/pkg/response"

	"github.com/gin-gonic/gin"
)

// OrderHandler 订单处理器
type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// CreateOrderInput 下单请求体
type CreateOrderInput struct {
	Items []OrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// OrderItemInput 下单条目
type OrderItemInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Qty       int    `json:"qty" binding:"required,gte=1"`
}

// VerifyPaymentInput 直连模式支付确认请求体
type VerifyPaymentInput struct {
	OrderID           string `json:"orderId" binding:"required,uuid"`
	RazorpayOrderID   string `json:"razorpayOrderId" binding:"required"`
	RazorpayPaymentID string `json:"razorpayPaymentId" binding:"required"`
	RazorpaySignature string `json:"razorpaySignature" binding:"required"`
}

// FulfillmentInput 管理端履约状态推进请求体
type FulfillmentInput struct {
	Status string `json:"status" binding:"required,oneof=out_for_delivery delivered"`
}

// Create 下单
// @Summary 创建订单并建立支付意向
// @Tags Order
// @Accept json
// @Produce json
// @Param input body CreateOrderInput true "订单条目"
// @Success 201 {object} response.Response
// @Security BearerAuth
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var input CreateOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	items := make([]service.OrderItemInput, 0, len(input.Items))
	for _, item := range input.Items {
		items = append(items, service.OrderItemInput{ProductID: item.ProductID, Qty: item.Qty})
	}

	result, err := h.service.CreateOrder(middleware.UserID(c), items)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Created(c, gin.H{
		"order":            result.Order,
		"paymentReference": result.PaymentReference,
	})
}

// Verify 直连模式支付确认
// @Summary 校验客户端回传的支付签名
// @Tags Order
// @Accept json
// @Produce json
// @Param input body VerifyPaymentInput true "网关回传参数"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /orders/verify [post]
func (h *OrderHandler) Verify(c *gin.Context) {
	var input VerifyPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.VerifyPayment(service.VerifyInput{
		OrderID:          input.OrderID,
		GatewayOrderID:   input.RazorpayOrderID,
		GatewayPaymentID: input.RazorpayPaymentID,
		Signature:        input.RazorpaySignature,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, order)
}

// VerifyLink 链接模式支付轮询
// @Summary 轮询支付链接状态并对账
// @Tags Order
// @Produce json
// @Param payment_link_id query string true "支付链接ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /orders/verify [get]
func (h *OrderHandler) VerifyLink(c *gin.Context) {
	linkID := c.Query("payment_link_id")
	if linkID == "" {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "payment_link_id is required")
		return
	}

	order, err := h.service.VerifyPaymentLink(linkID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, order)
}

// Cancel 取消订单
// @Summary 取消订单，已支付订单先退款
// @Tags Order
// @Produce json
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	order, err := h.service.CancelOrder(middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, order)
}

// Get 订单详情
// @Summary 查询本人订单详情
// @Tags Order
// @Produce json
// @Param id path string true "订单ID"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.service.GetOrder(middleware.UserID(c), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, order)
}

// List 订单列表
// @Summary 查询本人历史订单
// @Tags Order
// @Produce json
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.service.ListOrders(middleware.UserID(c))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, orders)
}

// UpdateFulfillment 管理端履约状态推进
// @Summary 推进订单履约状态
// @Tags Order
// @Accept json
// @Produce json
// @Param id path string true "订单ID"
// @Param input body FulfillmentInput true "目标状态"
// @Success 200 {object} response.Response
// @Security BearerAuth
// @Router /admin/orders/{id}/status [put]
func (h *OrderHandler) UpdateFulfillment(c *gin.Context) {
	var input FulfillmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	order, err := h.service.UpdateFulfillment(c.Param("id"), input.Status)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, order)
}

// handleError 服务层错误到业务码的统一映射
func (h *OrderHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEmptyItems), errors.Is(err, service.ErrInvalidQty):
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
	case errors.Is(err, service.ErrProductUnavailable):
		response.Error(c, http.StatusBadRequest, response.ErrProductUnavailable, err.Error())
	case errors.Is(err, service.ErrOrderNotFound):
		response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, err.Error())
	case errors.Is(err, service.ErrSignatureInvalid):
		// 不区分是哪一部分不匹配
		response.Error(c, http.StatusBadRequest, response.ErrSignatureInvalid, "payment verification failed")
	case errors.Is(err, service.ErrPaymentNotCompleted):
		response.Error(c, http.StatusBadRequest, response.ErrPaymentNotCompleted, err.Error())
	case errors.Is(err, service.ErrAlreadyCancelled):
		response.Error(c, http.StatusBadRequest, response.ErrOrderCancelled, err.Error())
	case errors.Is(err, service.ErrNotCancellable), errors.Is(err, service.ErrInvalidTransition):
		response.Error(c, http.StatusBadRequest, response.ErrOrderNotCancellable, err.Error())
	case errors.Is(err, service.ErrRefundNotPossible):
		response.Error(c, http.StatusBadRequest, response.ErrRefundNotPossible, err.Error())
	case errors.Is(err, service.ErrRefundFailed):
		response.Error(c, http.StatusInternalServerError, response.ErrRefundFailed, err.Error())
	case errors.Is(err, service.ErrStatusConflict):
		response.Error(c, http.StatusConflict, response.ErrOrderConflict, err.Error())
	case errors.Is(err, service.ErrGateway):
		response.Error(c, http.StatusInternalServerError, response.ErrPaymentGateway, err.Error())
	case errors.Is(err, service.ErrOrphanedIntent):
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "order could not be created")
	default:
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "internal error")
	}
}
