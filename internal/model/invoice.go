package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice 订单快照，创建后不可修改
type Invoice struct {
	ID string `json:"id"`

	// 下单时的商品快照
	ProductID    string          `json:"productId"`
	ProductName  string          `json:"productName"`
	ProductPrice decimal.Decimal `json:"productPrice"`
	ProductUnit  string          `json:"productUnit"`

	Quantity int             `json:"quantity"`
	Total    decimal.Decimal `json:"total"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`

	// 冗余自商品
	SellerID    string `json:"sellerId"`
	SellerEmail string `json:"sellerEmail"`

	CreatedAt time.Time `json:"createdAt"`
}
