package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"foodshop/internal/model"
	"foodshop/internal/repository"
)

// OrderNotifier 下单成功后的通知出口
type OrderNotifier interface {
	NotifyOrder(product model.Product, invoice model.Invoice)
}

// PlaceOrderInput 下单参数
type PlaceOrderInput struct {
	ProductID     string
	CustomerName  string
	CustomerEmail string
	Quantity      int
}

// ==================== OrderService 订单服务 ====================

type OrderService struct {
	productRepo repository.ProductRepository
	invoiceRepo repository.InvoiceRepository
	notifier    OrderNotifier
	log         *zap.Logger
	now         func() time.Time
}

func NewOrderService(productRepo repository.ProductRepository, invoiceRepo repository.InvoiceRepository, notifier OrderNotifier, log *zap.Logger) *OrderService {
	return &OrderService{
		productRepo: productRepo,
		invoiceRepo: invoiceRepo,
		notifier:    notifier,
		log:         log,
		now:         time.Now,
	}
}

// PlaceOrder 创建订单
// 商品按 id 在全部状态中查找，hidden 商品同样可以下单
// 订单落盘后才派发通知，通知结果不影响返回值
func (s *OrderService) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*model.Invoice, error) {
	in.ProductID = strings.TrimSpace(in.ProductID)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)

	if in.ProductID == "" || in.CustomerName == "" || in.CustomerEmail == "" || in.Quantity == 0 {
		return nil, ErrMissingFields
	}
	if in.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	invoice := &model.Invoice{
		ID:            model.NewID(),
		ProductID:     product.ID,
		ProductName:   product.Name,
		ProductPrice:  product.Price,
		ProductUnit:   product.Unit,
		Quantity:      in.Quantity,
		Total:         product.Price.Mul(decimal.NewFromInt(int64(in.Quantity))),
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		SellerID:      product.SellerID,
		SellerEmail:   product.SellerEmail,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("save invoice: %w", err)
	}

	s.log.Info("订单已创建",
		zap.String("invoice_id", invoice.ID),
		zap.String("product_id", product.ID),
		zap.Int("quantity", invoice.Quantity),
		zap.String("total", invoice.Total.String()))

	if s.notifier != nil {
		s.notifier.NotifyOrder(*product, *invoice)
	}
	return invoice, nil
}

// ListInvoices 管理员查看全部订单
func (s *OrderService) ListInvoices(ctx context.Context) []model.Invoice {
	return s.invoiceRepo.List(ctx)
}

// ListSellerInvoices 卖家查看自己商品的订单
func (s *OrderService) ListSellerInvoices(ctx context.Context, sellerID string) []model.Invoice {
	return s.invoiceRepo.ListBySeller(ctx, sellerID)
}

// ParseQuantity 数量既可以是 JSON 数字也可以是数字字符串
// 缺省、null 或空串返回 0；小数向零截断；无法解析返回 ErrInvalidQuantity
func ParseQuantity(raw json.RawMessage) (int, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	var text string
	if raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			return 0, ErrInvalidQuantity
		}
		text = strings.TrimSpace(text)
		if text == "" {
			return 0, nil
		}
	} else {
		text = string(raw)
	}

	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		// 2.5 按 2 处理
		f, ferr := strconv.ParseFloat(text, 64)
		if ferr != nil || math.IsNaN(f) || math.Abs(f) > math.MaxInt32 {
			return 0, ErrInvalidQuantity
		}
		n = int64(math.Trunc(f))
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return 0, ErrInvalidQuantity
	}
	return int(n), nil
}
