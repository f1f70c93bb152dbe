package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"namaste_cart/internal/domain/user/model"
	"namaste_cart/internal/domain/user/repository"
	"namaste_cart/internal/pkg/mailer"
	"namaste_cart/internal/pkg/otp"
	"namaste_cart/internal/pkg/worker"
	"namaste_cart/pkg/cache"
	"namaste_cart/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// 注册前邮箱验证标记的有效窗口
const emailVerifiedTTL = 15 * time.Minute

var (
	ErrUserExists         = errors.New("user with this email or phone already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailNotVerified   = errors.New("user is not verified, please complete verification to proceed")
	ErrOTPInvalid         = errors.New("invalid or expired OTP")
)

// RegisterInput 注册输入
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Password  string
}

// UserService 用户服务接口
type UserService interface {
	Register(input RegisterInput) (*model.User, string, error)
	Login(email, password string) (*model.User, string, error)
	GoogleLogin(accessToken string) (*model.User, string, bool, error)
	SendVerificationOTP(email string) error
	VerifyEmailOTP(email, code string) error
	SendPasswordResetOTP(email string) error
	ResetPassword(email, code, newPassword string) error
	GetUser(id string) (*model.User, error)
	UpdateProfile(id, firstName, lastName, avatarURL string) (*model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	otp      otp.OTPService
	cache    cache.CacheService
	mailPool *worker.MailPool
	google   GoogleClient
}

// NewUserService 创建用户服务
func NewUserService(repo repository.UserRepository, otpSvc otp.OTPService, cacheSvc cache.CacheService, mailPool *worker.MailPool, google GoogleClient) UserService {
	return &userService{
		repo:     repo,
		otp:      otpSvc,
		cache:    cacheSvc,
		mailPool: mailPool,
		google:   google,
	}
}

func verifiedKey(email string) string {
	return fmt.Sprintf("email_verified:%s", email)
}

// Register 注册新用户
// 要求邮箱先通过 OTP 验证（VerifyEmailOTP 写入的标记在有效期内）
func (s *userService) Register(input RegisterInput) (*model.User, string, error) {
	// 1. 检查邮箱是否已完成验证
	verified, err := s.cache.Exists(context.Background(), verifiedKey(input.Email))
	if err != nil || !verified {
		return nil, "", ErrEmailNotVerified
	}

	// 2. 查重
	exists, err := s.repo.ExistsByEmailOrPhone(input.Email, input.Phone)
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrUserExists
	}

	// 3. 密码加密
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		Email:      input.Email,
		Phone:      input.Phone,
		Password:   string(hashed),
		Role:       model.RoleUser,
		IsVerified: true,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", err
	}

	// 4. 标记一次性使用
	_ = s.cache.Delete(context.Background(), verifiedKey(input.Email))

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login 邮箱密码登录
func (s *userService) Login(email, password string) (*model.User, string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, "", ErrEmailNotVerified
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// GoogleLogin Google OAuth 登录
// 返回值最后一个 bool 表示是否为新注册用户
func (s *userService) GoogleLogin(accessToken string) (*model.User, string, bool, error) {
	info, err := s.google.FetchUserInfo(accessToken)
	if err != nil {
		return nil, "", false, err
	}
	if !info.EmailVerified {
		return nil, "", false, errors.New("email not verified with Google")
	}

	user, err := s.repo.GetByEmail(info.Email)
	if err == nil {
		// 已存在，直接登录
		token, _, err := utils.GenerateToken(user.ID, user.Role)
		if err != nil {
			return nil, "", false, err
		}
		return user, token, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", false, err
	}

	// 不存在则注册，Google 账号视为已验证
	// 随机占位密码，该账号只能走 OAuth 登录
	hashed, err := bcrypt.GenerateFromPassword([]byte(info.Email+time.Now().String()), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", false, err
	}

	first, last := splitName(info.Name)
	user = &model.User{
		FirstName:  first,
		LastName:   last,
		Email:      info.Email,
		Password:   string(hashed),
		Role:       model.RoleUser,
		IsVerified: true,
		AvatarURL:  info.Picture,
	}
	if err := s.repo.Create(user); err != nil {
		return nil, "", false, err
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", false, err
	}
	return user, token, true, nil
}

// SendVerificationOTP 发送注册验证码邮件
func (s *userService) SendVerificationOTP(email string) error {
	code, err := s.otp.Generate(email)
	if err != nil {
		return err
	}

	s.mailPool.Enqueue(worker.MailTask{
		To:      email,
		Subject: "NamasteCart OTP Verification",
		HTML:    mailer.OTPTemplate(code),
	})
	return nil
}

// VerifyEmailOTP 验证注册验证码，成功后写入验证标记
func (s *userService) VerifyEmailOTP(email, code string) error {
	if !s.otp.Verify(email, code) {
		return ErrOTPInvalid
	}
	return s.cache.Set(context.Background(), verifiedKey(email), true, emailVerifiedTTL)
}

// SendPasswordResetOTP 发送重置密码验证码，仅限已注册邮箱
func (s *userService) SendPasswordResetOTP(email string) error {
	if _, err := s.repo.GetByEmail(email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	code, err := s.otp.Generate(email)
	if err != nil {
		return err
	}

	s.mailPool.Enqueue(worker.MailTask{
		To:      email,
		Subject: "Password Reset OTP",
		HTML:    mailer.PasswordResetTemplate(code),
	})
	return nil
}

// ResetPassword 校验验证码并重置密码
func (s *userService) ResetPassword(email, code, newPassword string) error {
	if !s.otp.Verify(email, code) {
		return ErrOTPInvalid
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := s.repo.UpdatePassword(email, string(hashed)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetUser 获取单个用户
func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// UpdateProfile 更新用户资料
func (s *userService) UpdateProfile(id, firstName, lastName, avatarURL string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	if avatarURL != "" {
		user.AvatarURL = avatarURL
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func splitName(name string) (string, string) {
	if name == "" {
		return "User", ""
	}
	for i := 0; i < len(name); i++ {
		if name[i] == ' ' {
			return name[:i], name[i+1:]
		}
	}
	return name, ""
}
