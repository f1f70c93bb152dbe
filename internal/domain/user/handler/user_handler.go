package handler

import (
	"errors"
	"net/http"

	"namaste_cart/internal/domain/user/service"
	"namaste_cart/internal/pkg/middleware"
	"namaste_cart/pkg/response"

	"github.com/gin-gonic/gin"
)

// UserHandler 用户处理器
type UserHandler struct {
	service service.UserService
}

// NewUserHandler 创建处理器
func NewUserHandler(s service.UserService) *UserHandler {
	return &UserHandler{service: s}
}

// RegisterInput 注册输入
type RegisterInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginInput 登录输入
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OTPInput 验证码发送输入
type OTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// OTPVerifyInput 验证码校验输入
type OTPVerifyInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required"`
}

// GoogleLoginInput Google 登录输入
type GoogleLoginInput struct {
	AccessToken string `json:"accessToken" binding:"required"`
}

// ResetPasswordInput 重置密码输入
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// Register 注册
// @Summary 注册新用户
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body RegisterInput true "User Info"
// @Success 201 {object} response.Response
// @Router /auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, err := h.service.Register(service.RegisterInput{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Password:  input.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			response.Error(c, http.StatusConflict, response.ErrUserExists, err.Error())
		case errors.Is(err, service.ErrEmailNotVerified):
			response.Error(c, http.StatusBadRequest, response.ErrUserNotVerified, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "something went wrong, please try again later")
		}
		return
	}

	response.Created(c, gin.H{"token": token, "user": user})
}

// Login 登录
// @Summary 邮箱密码登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param input body LoginInput true "Credentials"
// @Success 200 {object} response.Response
// @Router /auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, err := h.service.Login(input.Email, input.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, response.ErrAuthFailed, err.Error())
		case errors.Is(err, service.ErrEmailNotVerified):
			response.Error(c, http.StatusForbidden, response.ErrUserNotVerified, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "something went wrong, please try again later")
		}
		return
	}

	response.Success(c, gin.H{"token": token, "user": user})
}

// GoogleLogin Google OAuth 登录
// @Summary Google 登录/注册
// @Tags Auth
// @Router /auth/google [post]
func (h *UserHandler) GoogleLogin(c *gin.Context) {
	var input GoogleLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, token, created, err := h.service.GoogleLogin(input.AccessToken)
	if err != nil {
		response.Error(c, http.StatusForbidden, response.ErrAuthFailed, err.Error())
		return
	}

	data := gin.H{"token": token, "user": user}
	if created {
		response.Created(c, data)
		return
	}
	response.Success(c, data)
}

// SendOTP 发送邮箱验证码
// @Summary 发送邮箱验证码
// @Tags Auth
// @Router /auth/otp [post]
func (h *UserHandler) SendOTP(c *gin.Context) {
	var input OTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.SendVerificationOTP(input.Email); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "OTP has been sent to your email"})
}

// VerifyOTP 校验邮箱验证码
// @Summary 校验邮箱验证码
// @Tags Auth
// @Router /auth/otp/verify [post]
func (h *UserHandler) VerifyOTP(c *gin.Context) {
	var input OTPVerifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.VerifyEmailOTP(input.Email, input.OTP); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrOTPInvalid, "invalid or expired OTP")
		return
	}
	response.Success(c, gin.H{"message": "email successfully verified"})
}

// SendPasswordResetOTP 发送重置密码验证码
// @Summary 发送重置密码验证码
// @Tags Auth
// @Router /auth/password/otp [post]
func (h *UserHandler) SendPasswordResetOTP(c *gin.Context) {
	var input OTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.SendPasswordResetOTP(input.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, gin.H{"message": "OTP has been sent to your email"})
}

// ResetPassword 重置密码
// @Summary 校验验证码并重置密码
// @Tags Auth
// @Router /auth/password/reset [post]
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var input ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if err := h.service.ResetPassword(input.Email, input.OTP, input.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrOTPInvalid):
			response.Error(c, http.StatusBadRequest, response.ErrOTPInvalid, "invalid or expired OTP")
		case errors.Is(err, service.ErrUserNotFound):
			response.Error(c, http.StatusNotFound, response.ErrUserNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "something went wrong, please try again later")
		}
		return
	}
	response.Success(c, gin.H{"message": "password updated successfully"})
}

// Me 获取当前登录用户
// @Summary 获取当前用户资料
// @Tags User
// @Security BearerAuth
// @Router /users/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.service.GetUser(middleware.UserID(c))
	if err != nil {
		response.Error(c, http.StatusNotFound, response.ErrUserNotFound, "user not found")
		return
	}
	response.Success(c, user)
}

// UpdateProfileInput 资料更新输入
type UpdateProfileInput struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl"`
}

// UpdateMe 更新当前登录用户资料
// @Summary 更新当前用户资料
// @Tags User
// @Security BearerAuth
// @Router /users/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var input UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	user, err := h.service.UpdateProfile(middleware.UserID(c), input.FirstName, input.LastName, input.AvatarURL)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, user)
}
