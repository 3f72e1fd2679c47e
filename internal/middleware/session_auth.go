package middleware

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"foodshop/internal/model"
	"foodshop/internal/service"
)

// ==================== 会话 Cookie 配置 ====================

const (
	DefaultCookieName = "foodshop.sid"
	sessionIssuer     = "foodshop"
)

// SessionCookieConfig 会话 Cookie 配置
type SessionCookieConfig struct {
	SecretKey string        // 签名密钥
	TTL       time.Duration // 与服务端会话有效期一致
	Name      string
	Secure    bool
}

// ==================== SessionCodec 会话 Cookie 编解码 ====================

// SessionCodec 把会话 id 签名成 HS256 token 放进 Cookie
// 被篡改或用其他密钥签发的 token 一律视为未登录
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	name   string
	secure bool
}

func NewSessionCodec(cfg SessionCookieConfig) *SessionCodec {
	name := cfg.Name
	if name == "" {
		name = DefaultCookieName
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = service.DefaultSessionTTL
	}
	return &SessionCodec{
		secret: []byte(cfg.SecretKey),
		ttl:    ttl,
		name:   name,
		secure: cfg.Secure,
	}
}

// Encode 生成携带会话 id 的 token
func (s *SessionCodec) Encode(sessionID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		Issuer:    sessionIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Decode 校验签名并取出会话 id
func (s *SessionCodec) Decode(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer))
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.ID == "" {
		return "", errors.New("invalid token")
	}
	return claims.ID, nil
}

// SetCookie 写入会话 Cookie，max-age 等于会话有效期
func (s *SessionCodec) SetCookie(c *gin.Context, sessionID string) error {
	token, err := s.Encode(sessionID)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, token, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

func (s *SessionCodec) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.name, "", -1, "/", "", s.secure, true)
}

func (s *SessionCodec) CookieName() string {
	return s.name
}

// ==================== Gin 中间件 ====================

// Context Keys
const (
	ContextKeySessionID = "session_id"
	ContextKeySession   = "session"
)

// LoadSession 解析会话 Cookie，只注入会话 id，不拦截请求
func LoadSession(codec *SessionCodec) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.name)
		if err == nil && raw != "" {
			if sessionID, err := codec.Decode(raw); err == nil {
				c.Set(ContextKeySessionID, sessionID)
			}
		}
		c.Next()
	}
}

// RequireRole 角色权限校验中间件
// 未登录 401，角色不符 403
func RequireRole(auth *service.AuthService, role model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := auth.Authorize(GetSessionID(c), role)
		switch {
		case errors.Is(err, service.ErrUnauthenticated):
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		case errors.Is(err, service.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "only " + string(role) + " accounts may access this resource"})
			return
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextKeySession, sess)
		c.Next()
	}
}

// ==================== 辅助函数 ====================

// GetSessionID 从 Context 获取会话 id
func GetSessionID(c *gin.Context) string {
	if id, exists := c.Get(ContextKeySessionID); exists {
		return id.(string)
	}
	return ""
}

// GetSession 获取 RequireRole 校验通过的会话
func GetSession(c *gin.Context) *service.Session {
	if sess, exists := c.Get(ContextKeySession); exists {
		return sess.(*service.Session)
	}
	return nil
}
