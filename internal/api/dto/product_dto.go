package dto

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"foodshop/internal/model"
	"foodshop/internal/service"
)

var (
	errInvalidExistingImages = errors.New("existingImages must be a JSON array of strings")
)

// ProductForm 商品表单 (multipart/form-data)
// 新建时图片字段为 images，修改时为 newImages
type ProductForm struct {
	Name           string `form:"name"`
	Price          string `form:"price"`
	Unit           string `form:"unit"`
	Description    string `form:"description"`
	ThumbnailIndex string `form:"thumbnailIndex"`
	ExistingImages string `form:"existingImages"`
}

// ParsePrice 价格为空时返回零值，由服务层判定
func (f *ProductForm) ParsePrice() (decimal.Decimal, error) {
	raw := strings.TrimSpace(f.Price)
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, service.ErrInvalidPrice
	}
	return price, nil
}

// ThumbnailIdx 无法解析时返回 nil，即使用第一张图
func (f *ProductForm) ThumbnailIdx() *int {
	idx, err := strconv.Atoi(strings.TrimSpace(f.ThumbnailIndex))
	if err != nil {
		return nil
	}
	return &idx
}

// ParseExistingImages existingImages 是 JSON 数组字符串，缺省为空
func (f *ProductForm) ParseExistingImages() ([]string, error) {
	raw := strings.TrimSpace(f.ExistingImages)
	if raw == "" {
		return nil, nil
	}
	var images []string
	if err := json.Unmarshal([]byte(raw), &images); err != nil {
		return nil, errInvalidExistingImages
	}
	return images, nil
}

// UpdateStatusRequest 管理员修改商品状态
type UpdateStatusRequest struct {
	Status model.ProductStatus `json:"status" binding:"required"`
}

// ProductResponse 商品写操作响应
type ProductResponse struct {
	Success bool           `json:"success"`
	Product *model.Product `json:"product"`
}
