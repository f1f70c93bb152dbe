package handler

import (
	"errors"
	"net/http"

	"namaste_cart/internal/domain/cart/service"
	productService "namaste_cart/internal/domain/product/service"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/pkg/response"

	"github.com/gin-gonic/gin"
)

// CartHandler 购物车处理器
type CartHandler struct {
	service service.CartService
}

func NewCartHandler(s service.CartService) *CartHandler {
	return &CartHandler{service: s}
}

// AddInput 加购输入
type AddInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
	Qty       int    `json:"qty"`
}

// RemoveInput 移除输入
type RemoveInput struct {
	ProductID string `json:"productId" binding:"required,uuid"`
}

// List 获取购物车
// @Summary 获取购物车
// @Tags Cart
// @Security BearerAuth
// @Router /cart [get]
func (h *CartHandler) List(c *gin.Context) {
	entries, err := h.service.List(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to fetch cart")
		return
	}
	response.Success(c, gin.H{"cart": entries})
}

// Add 加购
// @Summary 添加商品到购物车
// @Tags Cart
// @Security BearerAuth
// @Router /cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	var input AddInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}
	if input.Qty == 0 {
		input.Qty = 1
	}

	if err := h.service.Add(middleware.UserID(c), input.ProductID, input.Qty); err != nil {
		switch {
		case errors.Is(err, productService.ErrProductNotFound):
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "product not found")
		case errors.Is(err, service.ErrInvalidQty):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to add to cart")
		}
		return
	}
	response.Success(c, gin.H{"message": "product added to cart"})
}

// Remove 移出购物车
// @Summary 从购物车移除商品
// @Tags Cart
// @Security BearerAuth
// @Router /cart [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	var input RemoveInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.Remove(middleware.UserID(c), input.ProductID); err != nil {
		if errors.Is(err, service.ErrCartItemNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrCartItemNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to remove from cart")
		return
	}
	response.Success(c, gin.H{"message": "product removed from cart"})
}
