package response

// 业务状态码
const (
	CodeSuccess = 0
	CodeError   = 1

	// 用户模块错误 100xx
	ErrUserExists      = 10001
	ErrUserNotFound    = 10002
	ErrAuthFailed      = 10003
	ErrTokenInvalid    = 10004
	ErrNoPermission    = 10005
	ErrUserNotVerified = 10006
	ErrOTPInvalid      = 10007

	// 商品模块错误 200xx
	ErrProductNotFound    = 20001
	ErrProductUnavailable = 20002

	// 购物车模块错误 300xx
	ErrCartItemNotFound = 30001

	// 订单/支付模块错误 400xx
	ErrOrderNotFound       = 40001
	ErrSignatureInvalid    = 40002
	ErrPaymentNotCompleted = 40003
	ErrOrderCancelled      = 40004
	ErrOrderNotCancellable = 40005
	ErrRefundNotPossible   = 40006
	ErrRefundFailed        = 40007
	ErrOrderConflict       = 40008
	ErrPaymentGateway      = 40009

	// 系统错误 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
