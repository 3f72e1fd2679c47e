package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStatus 商品状态
type ProductStatus string

const (
	ProductStatusActive ProductStatus = "active"
	ProductStatusHidden ProductStatus = "hidden"
)

func (s ProductStatus) Valid() bool {
	return s == ProductStatusActive || s == ProductStatusHidden
}

// Product 商品
type Product struct {
	ID          string          `json:"id"`
	SellerID    string          `json:"sellerId"`
	SellerEmail string          `json:"sellerEmail"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`

	// 图片至少一张，缩略图必须是其中之一
	Images    []string `json:"images"`
	Thumbnail string   `json:"thumbnail"`

	Status    ProductStatus `json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt *time.Time    `json:"updatedAt,omitempty"`
}

func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func (p *Product) OwnedBy(sellerID string) bool {
	return sellerID != "" && p.SellerID == sellerID
}
