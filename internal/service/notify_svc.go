package service

import (
	"bytes"
	"context"
	"html/template"
	"mime"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sourcegraph/conc/panics"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"foodshop/internal/model"
	"foodshop/pkg/utils"
)

const (
	customerSubject = "✅ Xác nhận đơn hàng - Food Shop"
	sellerSubject   = "🔔 Bạn có đơn hàng mới!"

	notifyQueueSize   = 256
	notifySendTimeout = 30 * time.Second
)

var mailFuncs = template.FuncMap{
	"vnd": func(d decimal.Decimal) string { return utils.FormatVND(d) + " VNĐ" },
	"datetime": func(t time.Time) string {
		return t.Local().Format("15:04 02/01/2006")
	},
}

var customerTemplate = template.Must(template.New("customer").Funcs(mailFuncs).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #ff6b35;">Cảm ơn bạn đã đặt hàng!</h2>
  <p>Xin chào <strong>{{.Invoice.CustomerName}}</strong>,</p>
  <p>Đơn hàng của bạn đã được ghi nhận với thông tin như sau:</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Mã đơn hàng</td><td><strong>#{{.Invoice.ID}}</strong></td></tr>
    <tr><td>Sản phẩm</td><td>{{.Invoice.ProductName}}</td></tr>
    <tr><td>Đơn giá</td><td>{{vnd .Invoice.ProductPrice}}{{with .Invoice.ProductUnit}} / {{.}}{{end}}</td></tr>
    <tr><td>Số lượng</td><td>{{.Invoice.Quantity}}</td></tr>
    <tr><td>Tổng tiền</td><td><strong style="color: #ff6b35;">{{vnd .Invoice.Total}}</strong></td></tr>
    <tr><td>Thời gian</td><td>{{datetime .Invoice.CreatedAt}}</td></tr>
  </table>
  <p>Người bán sẽ liên hệ với bạn sớm nhất có thể.</p>
  <p>Food Shop</p>
</div>`))

var sellerTemplate = template.Must(template.New("seller").Funcs(mailFuncs).Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #28a745;">Bạn có đơn hàng mới!</h2>
  <table style="width: 100%; border-collapse: collapse;">
    <tr><td>Mã đơn hàng</td><td><strong>#{{.Invoice.ID}}</strong></td></tr>
    <tr><td>Sản phẩm</td><td>{{.Invoice.ProductName}}</td></tr>
    <tr><td>Số lượng</td><td>{{.Invoice.Quantity}}{{with .Invoice.ProductUnit}} {{.}}{{end}}</td></tr>
    <tr><td>Tổng tiền</td><td><strong>{{vnd .Invoice.Total}}</strong></td></tr>
    <tr><td>Khách hàng</td><td>{{.Invoice.CustomerName}}</td></tr>
    <tr><td>Email khách hàng</td><td>{{.Invoice.CustomerEmail}}</td></tr>
    <tr><td>Thời gian</td><td>{{datetime .Invoice.CreatedAt}}</td></tr>
  </table>
  <p>Vui lòng liên hệ khách hàng để xác nhận đơn hàng.</p>
</div>`))

type orderMailData struct {
	Product model.Product
	Invoice model.Invoice
}

// ==================== NotifyService 订单通知 ====================

// NotifyService 下单后异步通知顾客与卖家
// 每封邮件只尝试一次，失败与 panic 都只记日志
type NotifyService struct {
	mailer  Mailer
	log     *zap.Logger
	timeout time.Duration

	queue chan orderMailData
	pool  *pool.Pool
	done  chan struct{}

	mu     sync.Mutex
	closed bool
}

// NewNotifyService workers 为同时发送的最大协程数
func NewNotifyService(mailer Mailer, workers int, log *zap.Logger) *NotifyService {
	if workers <= 0 {
		workers = 4
	}

	s := &NotifyService{
		mailer:  mailer,
		log:     log,
		timeout: notifySendTimeout,
		queue:   make(chan orderMailData, notifyQueueSize),
		pool:    pool.New().WithMaxGoroutines(workers),
		done:    make(chan struct{}),
	}
	go s.dispatch()
	return s
}

// NotifyOrder 投递通知任务，不阻塞调用方
func (s *NotifyService) NotifyOrder(product model.Product, invoice model.Invoice) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.log.Warn("通知服务已关闭，丢弃订单通知", zap.String("invoice_id", invoice.ID))
		return
	}

	select {
	case s.queue <- orderMailData{Product: product, Invoice: invoice}:
	default:
		s.log.Warn("通知队列已满，丢弃订单通知", zap.String("invoice_id", invoice.ID))
	}
}

// Close 停止接收新任务并等待已排队的通知发送完毕
func (s *NotifyService) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.closed = true
	close(s.queue)
	s.mu.Unlock()

	<-s.done
}

func (s *NotifyService) dispatch() {
	defer close(s.done)

	for data := range s.queue {
		s.pool.Go(func() {
			s.send(data)
		})
	}
	s.pool.Wait()
}

// send 顾客与卖家各自独立尝试一次
func (s *NotifyService) send(data orderMailData) {
	s.deliver(data.Invoice.ID, data.Invoice.CustomerEmail, customerSubject, customerTemplate, data)
	s.deliver(data.Invoice.ID, data.Invoice.SellerEmail, sellerSubject, sellerTemplate, data)
}

func (s *NotifyService) deliver(invoiceID, to, subject string, tpl *template.Template, data orderMailData) {
	if to == "" {
		s.log.Warn("收件人为空，跳过通知", zap.String("invoice_id", invoiceID), zap.String("subject", subject))
		return
	}

	var pc panics.Catcher
	pc.Try(func() {
		var buf bytes.Buffer
		if err := tpl.Execute(&buf, data); err != nil {
			s.log.Error("渲染邮件失败", zap.String("invoice_id", invoiceID), zap.Error(err))
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()

		if err := s.mailer.Send(ctx, Message{To: to, Subject: subject, HTML: buf.String()}); err != nil {
			s.log.Error("发送邮件失败",
				zap.String("invoice_id", invoiceID),
				zap.String("to", to),
				zap.Error(err))
			return
		}
		s.log.Info("邮件已发送", zap.String("invoice_id", invoiceID), zap.String("to", to))
	})
	if r := pc.Recovered(); r != nil {
		s.log.Error("发送邮件 panic", zap.String("invoice_id", invoiceID), zap.String("panic", r.String()))
	}
}

// mimeHeader 非 ASCII 主题按 RFC 2047 编码
func mimeHeader(s string) string {
	return mime.QEncoding.Encode("utf-8", s)
}
