package service

import (
	"context"
	"testing"
	"time"

	"namaste_cart/internal/domain/user/model"
	"namaste_cart/internal/pkg/config"
	"namaste_cart/internal/pkg/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	config.GlobalConfig.JWT.Secret = "test-secret-key-0123456789abcdef0123"
	config.GlobalConfig.JWT.Expire = 24
}

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmailOrPhone(email, phone string) (bool, error) {
	args := m.Called(email, phone)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Update(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdatePassword(email, hashedPassword string) error {
	args := m.Called(email, hashedPassword)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockOTPService is a mock of OTPService
type MockOTPService struct {
	mock.Mock
}

func (m *MockOTPService) Generate(email string) (string, error) {
	args := m.Called(email)
	return args.String(0), args.Error(1)
}

func (m *MockOTPService) Verify(email, code string) bool {
	args := m.Called(email, code)
	return args.Bool(0)
}

// MockCacheService is a mock of CacheService
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) Get(ctx context.Context, key string, dest interface{}) error {
	args := m.Called(ctx, key, dest)
	return args.Error(0)
}

func (m *MockCacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCacheService) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) InvalidatePattern(ctx context.Context, pattern string) error {
	args := m.Called(ctx, pattern)
	return args.Error(0)
}

// MockGoogleClient is a mock of GoogleClient
type MockGoogleClient struct {
	mock.Mock
}

func (m *MockGoogleClient) FetchUserInfo(accessToken string) (*GoogleUserInfo, error) {
	args := m.Called(accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*GoogleUserInfo), args.Error(1)
}

// noopMailer swallows mails in tests
type noopMailer struct{}

func (noopMailer) Send(to, subject, htmlBody string) error { return nil }

type userMocks struct {
	repo   *MockUserRepository
	otp    *MockOTPService
	cache  *MockCacheService
	google *MockGoogleClient
}

func newTestUserService() (UserService, *userMocks) {
	m := &userMocks{
		repo:   new(MockUserRepository),
		otp:    new(MockOTPService),
		cache:  new(MockCacheService),
		google: new(MockGoogleClient),
	}
	pool := worker.NewMailPool(noopMailer{}, 1, 16)
	svc := NewUserService(m.repo, m.otp, m.cache, pool, m.google)
	return svc, m
}

func createTestUser(id, email string) *model.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	u := &model.User{
		FirstName:  "Test",
		LastName:   "User",
		Email:      email,
		Password:   string(hashed),
		Role:       model.RoleUser,
		IsVerified: true,
	}
	u.ID = id
	return u
}

func TestRegister(t *testing.T) {
	input := RegisterInput{
		FirstName: "Test",
		LastName:  "User",
		Email:     "new@example.com",
		Phone:     "9876543210",
		Password:  "password123",
	}

	t.Run("Registration succeeds after email verification", func(t *testing.T) {
		svc, m := newTestUserService()

		m.cache.On("Exists", mock.Anything, "email_verified:new@example.com").Return(true, nil)
		m.repo.On("ExistsByEmailOrPhone", input.Email, input.Phone).Return(false, nil)
		m.repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)
		m.cache.On("Delete", mock.Anything, "email_verified:new@example.com").Return(nil)

		user, token, err := svc.Register(input)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, user.IsVerified)
		assert.NotEqual(t, "password123", user.Password)
		m.repo.AssertExpectations(t)
	})

	t.Run("Registration without prior email verification is rejected", func(t *testing.T) {
		svc, m := newTestUserService()

		m.cache.On("Exists", mock.Anything, "email_verified:new@example.com").Return(false, nil)

		user, token, err := svc.Register(input)

		assert.ErrorIs(t, err, ErrEmailNotVerified)
		assert.Nil(t, user)
		assert.Empty(t, token)
		m.repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("Duplicate email or phone is rejected", func(t *testing.T) {
		svc, m := newTestUserService()

		m.cache.On("Exists", mock.Anything, "email_verified:new@example.com").Return(true, nil)
		m.repo.On("ExistsByEmailOrPhone", input.Email, input.Phone).Return(true, nil)

		user, _, err := svc.Register(input)

		assert.ErrorIs(t, err, ErrUserExists)
		assert.Nil(t, user)
		m.repo.AssertNotCalled(t, "Create", mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	t.Run("Login success", func(t *testing.T) {
		svc, m := newTestUserService()
		user := createTestUser("user-1", "test@example.com")

		m.repo.On("GetByEmail", "test@example.com").Return(user, nil)

		result, token, err := svc.Login("test@example.com", "password123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user-1", result.ID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		svc, m := newTestUserService()
		user := createTestUser("user-1", "test@example.com")

		m.repo.On("GetByEmail", "test@example.com").Return(user, nil)

		result, token, err := svc.Login("test@example.com", "wrong")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, result)
		assert.Empty(t, token)
	})

	t.Run("Unknown email maps to invalid credentials", func(t *testing.T) {
		svc, m := newTestUserService()

		m.repo.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		result, _, err := svc.Login("nobody@example.com", "password123")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, result)
	})

	t.Run("Unverified user cannot login", func(t *testing.T) {
		svc, m := newTestUserService()
		user := createTestUser("user-1", "test@example.com")
		user.IsVerified = false

		m.repo.On("GetByEmail", "test@example.com").Return(user, nil)

		result, _, err := svc.Login("test@example.com", "password123")

		assert.ErrorIs(t, err, ErrEmailNotVerified)
		assert.Nil(t, result)
	})
}

func TestGoogleLogin(t *testing.T) {
	t.Run("Existing user logs in directly", func(t *testing.T) {
		svc, m := newTestUserService()
		user := createTestUser("user-1", "g@example.com")

		m.google.On("FetchUserInfo", "token-1").Return(&GoogleUserInfo{
			Email:         "g@example.com",
			EmailVerified: true,
			Name:          "Google User",
		}, nil)
		m.repo.On("GetByEmail", "g@example.com").Return(user, nil)

		result, token, created, err := svc.GoogleLogin("token-1")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.False(t, created)
		assert.Equal(t, "user-1", result.ID)
		m.repo.AssertNotCalled(t, "Create", mock.Anything)
	})

	t.Run("New user is registered as verified", func(t *testing.T) {
		svc, m := newTestUserService()

		m.google.On("FetchUserInfo", "token-2").Return(&GoogleUserInfo{
			Email:         "new-g@example.com",
			EmailVerified: true,
			Name:          "New Person",
		}, nil)
		m.repo.On("GetByEmail", "new-g@example.com").Return(nil, gorm.ErrRecordNotFound)
		m.repo.On("Create", mock.AnythingOfType("*model.User")).Return(nil)

		result, token, created, err := svc.GoogleLogin("token-2")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, created)
		assert.True(t, result.IsVerified)
		assert.Equal(t, "New", result.FirstName)
		assert.Equal(t, "Person", result.LastName)
		m.repo.AssertExpectations(t)
	})

	t.Run("Unverified Google email is rejected", func(t *testing.T) {
		svc, m := newTestUserService()

		m.google.On("FetchUserInfo", "token-3").Return(&GoogleUserInfo{
			Email:         "x@example.com",
			EmailVerified: false,
		}, nil)

		result, _, _, err := svc.GoogleLogin("token-3")

		assert.Error(t, err)
		assert.Nil(t, result)
	})
}

func TestVerifyEmailOTP(t *testing.T) {
	t.Run("Valid code writes verification marker", func(t *testing.T) {
		svc, m := newTestUserService()

		m.otp.On("Verify", "test@example.com", "123456").Return(true)
		m.cache.On("Set", mock.Anything, "email_verified:test@example.com", true, mock.Anything).Return(nil)

		err := svc.VerifyEmailOTP("test@example.com", "123456")

		assert.NoError(t, err)
		m.cache.AssertExpectations(t)
	})

	t.Run("Invalid code", func(t *testing.T) {
		svc, m := newTestUserService()

		m.otp.On("Verify", "test@example.com", "000000").Return(false)

		err := svc.VerifyEmailOTP("test@example.com", "000000")

		assert.ErrorIs(t, err, ErrOTPInvalid)
		m.cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestResetPassword(t *testing.T) {
	t.Run("Reset succeeds with valid code", func(t *testing.T) {
		svc, m := newTestUserService()

		m.otp.On("Verify", "test@example.com", "123456").Return(true)
		m.repo.On("UpdatePassword", "test@example.com", mock.AnythingOfType("string")).Return(nil)

		err := svc.ResetPassword("test@example.com", "123456", "newpassword")

		assert.NoError(t, err)
		m.repo.AssertExpectations(t)
	})

	t.Run("Invalid code leaves password unchanged", func(t *testing.T) {
		svc, m := newTestUserService()

		m.otp.On("Verify", "test@example.com", "000000").Return(false)

		err := svc.ResetPassword("test@example.com", "000000", "newpassword")

		assert.ErrorIs(t, err, ErrOTPInvalid)
		m.repo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything)
	})
}

func TestSendPasswordResetOTP(t *testing.T) {
	t.Run("Unknown email", func(t *testing.T) {
		svc, m := newTestUserService()

		m.repo.On("GetByEmail", "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		err := svc.SendPasswordResetOTP("nobody@example.com")

		assert.ErrorIs(t, err, ErrUserNotFound)
		m.otp.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("Known email gets a code", func(t *testing.T) {
		svc, m := newTestUserService()
		user := createTestUser("user-1", "test@example.com")

		m.repo.On("GetByEmail", "test@example.com").Return(user, nil)
		m.otp.On("Generate", "test@example.com").Return("123456", nil)

		err := svc.SendPasswordResetOTP("test@example.com")

		assert.NoError(t, err)
		m.otp.AssertExpectations(t)
	})
}

func TestSplitName(t *testing.T) {
	first, last := splitName("Amit Kumar Singh")
	assert.Equal(t, "Amit", first)
	assert.Equal(t, "Kumar Singh", last)

	first, last = splitName("Amit")
	assert.Equal(t, "Amit", first)
	assert.Empty(t, last)

	first, last = splitName("")
	assert.Equal(t, "User", first)
	assert.Empty(t, last)
}
