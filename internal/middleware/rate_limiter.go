package middleware

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// ==================== IPRateLimiter 按来源限流 ====================

// IPRateLimiter 每个 key 一个令牌桶
// 用于登录接口，防止暴力破解密码
type IPRateLimiter struct {
	limiters sync.Map // key -> *limiterEntry
	limit    rate.Limit
	burst    int
}

type limiterEntry struct {
	limiter  *rate.Limiter
	mu       sync.Mutex
	lastSeen time.Time
}

// NewIPRateLimiter perMinute <= 0 表示不限流
func NewIPRateLimiter(perMinute int) *IPRateLimiter {
	if perMinute <= 0 {
		return &IPRateLimiter{limit: rate.Inf}
	}
	return &IPRateLimiter{
		limit: rate.Limit(float64(perMinute) / 60),
		burst: perMinute,
	}
}

// CheckResult 检查结果
type CheckResult struct {
	Allowed    bool          // 是否允许
	RetryAfter time.Duration // 剩余冷却时间
}

// Check 消耗一个令牌
func (r *IPRateLimiter) Check(key string) CheckResult {
	if r.limit == rate.Inf {
		return CheckResult{Allowed: true}
	}

	actual, _ := r.limiters.LoadOrStore(key, &limiterEntry{
		limiter: rate.NewLimiter(r.limit, r.burst),
	})
	entry := actual.(*limiterEntry)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	entry.lastSeen = now

	res := entry.limiter.ReserveN(now, 1)
	if !res.OK() {
		return CheckResult{Allowed: false, RetryAfter: time.Minute}
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return CheckResult{Allowed: false, RetryAfter: delay}
	}
	return CheckResult{Allowed: true}
}

// Cleanup 删除空闲超过 maxIdle 的条目，返回删除数量
func (r *IPRateLimiter) Cleanup(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)
	n := 0
	r.limiters.Range(func(key, value any) bool {
		entry := value.(*limiterEntry)
		entry.mu.Lock()
		idle := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if idle {
			r.limiters.Delete(key)
			n++
		}
		return true
	})
	return n
}

// RateLimit 按客户端 IP 限流
func RateLimit(limiter *IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		result := limiter.Check(c.ClientIP())
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(seconds))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many attempts, retry in " + strconv.Itoa(seconds) + "s",
			})
			return
		}
		c.Next()
	}
}
