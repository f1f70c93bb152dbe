package service

import "errors"

// 订单服务错误，handler 层据此映射业务码
var (
	ErrEmptyItems          = errors.New("order items empty")
	ErrInvalidQty          = errors.New("item quantity must be at least 1")
	ErrProductUnavailable  = errors.New("product unavailable or insufficient stock")
	ErrSignatureInvalid    = errors.New("payment signature invalid")
	ErrPaymentNotCompleted = errors.New("payment not completed")
	ErrOrderNotFound       = errors.New("order not found")
	ErrAlreadyCancelled    = errors.New("order already cancelled")
	ErrNotCancellable      = errors.New("order cannot be cancelled")
	ErrRefundNotPossible   = errors.New("refund not possible without payment id")
	ErrRefundFailed        = errors.New("refund failed")
	ErrGateway             = errors.New("payment gateway error")
	ErrStatusConflict      = errors.New("order status changed concurrently")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOrphanedIntent      = errors.New("gateway intent created but order not persisted")
)
