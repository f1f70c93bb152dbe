package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleUserInfo Google userinfo 接口返回
type GoogleUserInfo struct {
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// GoogleClient Google OAuth 用户信息客户端
type GoogleClient interface {
	FetchUserInfo(accessToken string) (*GoogleUserInfo, error)
}

type googleClient struct {
	httpClient *http.Client
}

// NewGoogleClient 创建 Google 客户端，外呼必须带超时
func NewGoogleClient() GoogleClient {
	return &googleClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchUserInfo 用 access token 换取用户信息
func (c *googleClient) FetchUserInfo(accessToken string) (*GoogleUserInfo, error) {
	req, err := http.NewRequest(http.MethodGet, googleUserInfoURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google userinfo returned status %d", resp.StatusCode)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	if info.Email == "" {
		return nil, errors.New("invalid Google token")
	}
	return &info, nil
}
