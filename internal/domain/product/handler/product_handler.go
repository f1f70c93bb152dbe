package handler

import (
	"errors"
	"net/http"
	"strconv"

	"namaste_cart/internal/domain/product/repository"
	"namaste_cart/internal/domain/product/service"
	"namaste_cart/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ProductHandler 商品处理器
type ProductHandler struct {
	service service.ProductService
}

func NewProductHandler(s service.ProductService) *ProductHandler {
	return &ProductHandler{service: s}
}

// ProductInput 商品创建/更新输入
type ProductInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       string   `json:"price" binding:"required"`
	Image       string   `json:"image"`
	Categories  []string `json:"categories"`
	Tags        []string `json:"tags"`
	StockCount  int      `json:"stockCount" binding:"gte=0"`
}

// List 商品列表
// @Summary 商品列表（筛选/排序/分页）
// @Tags Product
// @Produce json
// @Param category query string false "分类"
// @Param tag query string false "标签"
// @Param minPrice query string false "最低价"
// @Param maxPrice query string false "最高价"
// @Param inStock query bool false "仅看有货"
// @Param minRating query number false "最低评分"
// @Param sortBy query string false "排序字段 price|rating|created_at|title"
// @Param sortOrder query string false "asc|desc"
// @Success 200 {object} response.Response
// @Router /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	filter := repository.ListFilter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		SortBy:   c.Query("sortBy"),
		SortDesc: c.Query("sortOrder") == "desc",
	}

	if v := c.Query("minPrice"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid minPrice")
			return
		}
		filter.MinPrice = &p
	}
	if v := c.Query("maxPrice"); v != "" {
		p, err := decimal.NewFromString(v)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid maxPrice")
			return
		}
		filter.MaxPrice = &p
	}
	if v := c.Query("inStock"); v != "" {
		b := v == "true"
		filter.InStock = &b
	}
	if v := c.Query("minRating"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid minRating")
			return
		}
		filter.MinRating = &r
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))

	products, total, err := h.service.List(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to fetch products")
		return
	}

	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	response.Success(c, gin.H{
		"products":   products,
		"page":       filter.Page,
		"totalCount": total,
		"totalPages": totalPages,
	})
}

// Get 商品详情
// @Summary 商品详情
// @Tags Product
// @Router /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "failed to fetch product")
		return
	}
	response.Success(c, product)
}

// Create 创建商品
// @Summary 创建商品（管理员）
// @Tags Product
// @Security BearerAuth
// @Router /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	product, err := h.service.Create(*input)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Created(c, product)
}

// Update 更新商品
// @Summary 更新商品（管理员）
// @Tags Product
// @Security BearerAuth
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	product, err := h.service.Update(c.Param("id"), *input)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, product)
}

// Delete 删除商品
// @Summary 删除商品（管理员）
// @Tags Product
// @Security BearerAuth
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrProductNotFound, "product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, true)
}

func (h *ProductHandler) bindInput(c *gin.Context) (*service.ProductInput, bool) {
	var input ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return nil, false
	}

	price, err := decimal.NewFromString(input.Price)
	if err != nil || price.IsNegative() {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "invalid price")
		return nil, false
	}

	return &service.ProductInput{
		Title:       input.Title,
		Description: input.Description,
		Price:       price,
		Image:       input.Image,
		Categories:  input.Categories,
		Tags:        input.Tags,
		StockCount:  input.StockCount,
	}, true
}
