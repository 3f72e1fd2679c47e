package service

import (
	"context"
	"fmt"
	"net/mail"
	"net/smtp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"foodshop/pkg/utils"
)

// Message 一封 HTML 邮件
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Mailer 邮件发送接口
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type MailConfig struct {
	Driver   string // "log" | "http" | "smtp"
	From     string
	Endpoint string // http: 邮件 API 地址
	APIKey   string
	SMTPHost string
	SMTPPort int
	Username string
	Password string
	Timeout  time.Duration
	Proxy    string // http: 可选代理
}

// NewMailer 根据配置创建发送器，默认只写日志
func NewMailer(cfg MailConfig, log *zap.Logger) (Mailer, error) {
	switch cfg.Driver {
	case "", "log":
		return NewLogMailer(log), nil
	case "http":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("MAIL_ENDPOINT 未配置")
		}
		return NewHTTPMailer(cfg), nil
	case "smtp":
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("MAIL_SMTP_HOST 未配置")
		}
		return NewSMTPMailer(cfg), nil
	default:
		return nil, fmt.Errorf("不支持的邮件驱动: %s", cfg.Driver)
	}
}

// ==================== 日志发送器 ====================

// LogMailer 开发环境用，只记录邮件不实际发送
type LogMailer struct {
	log *zap.Logger
}

func NewLogMailer(log *zap.Logger) *LogMailer {
	return &LogMailer{log: log}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.log.Info("邮件(仅记录)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.Int("html_bytes", len(msg.HTML)))
	return nil
}

// ==================== HTTP 邮件 API ====================

// HTTPMailer 通过 JSON 接口投递邮件
type HTTPMailer struct {
	client   *resty.Client
	endpoint string
	from     string
}

type httpMailPayload struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

func NewHTTPMailer(cfg MailConfig) *HTTPMailer {
	client := utils.NewHTTPClient(cfg.Timeout, cfg.Proxy)
	if cfg.APIKey != "" {
		client.SetAuthToken(cfg.APIKey)
	}

	return &HTTPMailer{
		client:   client,
		endpoint: cfg.Endpoint,
		from:     cfg.From,
	}
}

func (m *HTTPMailer) Send(ctx context.Context, msg Message) error {
	var errResp map[string]interface{}

	resp, err := m.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(httpMailPayload{
			From:    m.from,
			To:      msg.To,
			Subject: msg.Subject,
			HTML:    msg.HTML,
		}).
		SetError(&errResp).
		Post(m.endpoint)
	if err != nil {
		return fmt.Errorf("邮件请求失败: %v", err)
	}
	if resp.IsError() {
		return fmt.Errorf("邮件接口返回错误 (Code %d): %v", resp.StatusCode(), errResp)
	}
	return nil
}

// ==================== SMTP ====================

type SMTPMailer struct {
	addr string
	auth smtp.Auth
	from string
}

func NewSMTPMailer(cfg MailConfig) *SMTPMailer {
	port := cfg.SMTPPort
	if port == 0 {
		port = 587
	}

	var auth smtp.Auth
	if cfg.Username != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.SMTPHost)
	}

	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", cfg.SMTPHost, port),
		auth: auth,
		from: cfg.From,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	body := buildMIME(m.from, msg)

	done := make(chan error, 1)
	go func() {
		done <- smtp.SendMail(m.addr, m.auth, envelopeAddress(m.from), []string{msg.To}, body)
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// envelopeAddress "Food Shop <a@b.com>" 取出 a@b.com
func envelopeAddress(from string) string {
	if addr, err := mail.ParseAddress(from); err == nil {
		return addr.Address
	}
	return from
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + mimeHeader(msg.Subject) + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(msg.HTML)
	return []byte(b.String())
}
