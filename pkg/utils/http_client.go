package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultHTTPTimeout 外部 HTTP 调用的默认超时
const DefaultHTTPTimeout = 10 * time.Second

// NewHTTPClient 创建统一配置的 Resty 客户端
// 不自动重试：非幂等调用 (如发邮件) 重试可能重复投递
// proxyURL 为空时直连
func NewHTTPClient(timeout time.Duration, proxyURL string) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}

	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "FoodShop/1.0").
		SetRetryCount(0)

	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return client
}
