package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"namaste_cart/internal/pkg/config"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// 验证码有效期 60 秒，剩余超过 30 秒时不允许重发
const (
	codeTTL        = 60 * time.Second
	resendWindow   = 30 * time.Second
)

type OTPService interface {
	Generate(email string) (string, error)
	Verify(email, code string) bool
}

type otpService struct {
	rdb *redis.Client
}

func NewOTPService(rdb *redis.Client) OTPService {
	return &otpService{rdb: rdb}
}

func otpKey(email string) string {
	return fmt.Sprintf("otp:%s", strings.ToLower(strings.TrimSpace(email)))
}

// Generate 生成验证码并存入 Redis
// 验证码存储必须走外部 KV 而非进程内存，进程重启或水平扩容时才不会失效
func (s *otpService) Generate(email string) (string, error) {
	key := otpKey(email)

	// 频率限制：刚发过的不允许立即重发
	ttl, err := s.rdb.TTL(context.Background(), key).Result()
	if err == nil && ttl > codeTTL-resendWindow {
		return "", fmt.Errorf("please wait before requesting another code")
	}

	code := config.GlobalConfig.App.TestOTPCode
	if code == "" {
		code, err = randomCode(6)
		if err != nil {
			return "", err
		}
	}

	if err := s.rdb.Set(context.Background(), key, code, codeTTL).Err(); err != nil {
		return "", err
	}

	return code, nil
}

// Verify 验证验证码
// 验证成功后立即删除，防止重放
func (s *otpService) Verify(email, code string) bool {
	key := otpKey(email)
	val, err := s.rdb.Get(context.Background(), key).Result()
	if err != nil {
		return false
	}

	if val == code {
		s.rdb.Del(context.Background(), key)
		return true
	}
	return false
}

// randomCode 生成 n 位数字验证码
func randomCode(n int) (string, error) {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		d, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		sb.WriteString(d.String())
	}
	return sb.String(), nil
}
