package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"foodshop/internal/model"
	"foodshop/internal/repository"
)

// ImageReleaser 回收不再被引用的图片
type ImageReleaser interface {
	Release(ctx context.Context, urls []string)
}

// ProductFields 卖家可编辑的商品字段
type ProductFields struct {
	Name        string
	Price       decimal.Decimal
	Unit        string
	Description string
}

func (f *ProductFields) normalize() error {
	f.Name = strings.TrimSpace(f.Name)
	f.Unit = strings.TrimSpace(f.Unit)
	f.Description = strings.TrimSpace(f.Description)

	if f.Name == "" {
		return ErrMissingFields
	}
	if !f.Price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}

// ==================== ProductService 商品服务 ====================

type ProductService struct {
	productRepo repository.ProductRepository
	images      ImageReleaser
	log         *zap.Logger
	now         func() time.Time
}

func NewProductService(productRepo repository.ProductRepository, images ImageReleaser, log *zap.Logger) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		images:      images,
		log:         log,
		now:         time.Now,
	}
}

// ==================== 查询 ====================

// ListActive 公开商品列表，只含 active
func (s *ProductService) ListActive(ctx context.Context) []model.Product {
	return s.productRepo.ListByStatus(ctx, model.ProductStatusActive)
}

// GetActive 公开商品详情，hidden 商品视为不存在
func (s *ProductService) GetActive(ctx context.Context, id string) (*model.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive() {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// ListAll 管理员查看全部商品
func (s *ProductService) ListAll(ctx context.Context) []model.Product {
	return s.productRepo.List(ctx)
}

// ListMine 卖家自己的商品，不区分状态
func (s *ProductService) ListMine(ctx context.Context, sellerID string) []model.Product {
	return s.productRepo.ListBySeller(ctx, sellerID)
}

// ==================== 写操作 ====================

// Create 卖家新建商品
// images 为本次上传的图片；创建失败时这些图片会被回收
func (s *ProductService) Create(ctx context.Context, sellerID, sellerEmail string, fields ProductFields, images []string, thumbnailIndex *int) (*model.Product, error) {
	product, err := s.create(ctx, sellerID, sellerEmail, fields, images, thumbnailIndex)
	if err != nil {
		s.images.Release(ctx, images)
		return nil, err
	}
	return product, nil
}

func (s *ProductService) create(ctx context.Context, sellerID, sellerEmail string, fields ProductFields, images []string, thumbnailIndex *int) (*model.Product, error) {
	if err := fields.normalize(); err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, ErrNoImages
	}

	product := &model.Product{
		ID:          model.NewID(),
		SellerID:    sellerID,
		SellerEmail: sellerEmail,
		Name:        fields.Name,
		Price:       fields.Price,
		Unit:        fields.Unit,
		Description: fields.Description,
		Images:      images,
		Thumbnail:   ResolveThumbnail(images, thumbnailIndex),
		Status:      model.ProductStatusActive,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.log.Info("商品已创建", zap.String("product_id", product.ID), zap.String("seller_id", sellerID))
	return product, nil
}

// Update 卖家修改自己的商品
// 最终图片 = existingImages ++ newImages；existingImages 中不属于该商品的路径会被忽略
// 非本人商品按不存在处理；被移除的旧图片在更新成功后回收
func (s *ProductService) Update(ctx context.Context, id, sellerID string, fields ProductFields, existingImages, newImages []string, thumbnailIndex *int) (*model.Product, error) {
	if err := fields.normalize(); err != nil {
		s.images.Release(ctx, newImages)
		return nil, err
	}

	var dropped []string
	updated, err := s.productRepo.Update(ctx, id,
		func(p *model.Product) bool { return p.OwnedBy(sellerID) },
		func(p *model.Product) error {
			kept := retainOwned(existingImages, p.Images)
			final := make([]string, 0, len(kept)+len(newImages))
			final = append(final, kept...)
			final = append(final, newImages...)
			if len(final) == 0 {
				return ErrNoImages
			}

			dropped = difference(p.Images, final)
			now := s.now().UTC()
			p.Name = fields.Name
			p.Price = fields.Price
			p.Unit = fields.Unit
			p.Description = fields.Description
			p.Images = final
			p.Thumbnail = ResolveThumbnail(final, thumbnailIndex)
			p.UpdatedAt = &now
			return nil
		})
	if err != nil {
		s.images.Release(ctx, newImages)
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.images.Release(ctx, dropped)
	s.log.Info("商品已更新", zap.String("product_id", id), zap.Int("released_images", len(dropped)))
	return updated, nil
}

// SetStatus 管理员上下架，这是管理员对商品唯一的修改权限
func (s *ProductService) SetStatus(ctx context.Context, id string, status model.ProductStatus) (*model.Product, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}

	updated, err := s.productRepo.Update(ctx, id, nil, func(p *model.Product) error {
		now := s.now().UTC()
		p.Status = status
		p.UpdatedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	s.log.Info("商品状态已变更", zap.String("product_id", id), zap.String("status", string(status)))
	return updated, nil
}

// Delete 卖家删除自己的商品并回收全部图片
func (s *ProductService) Delete(ctx context.Context, id, sellerID string) error {
	removed, err := s.productRepo.DeleteIf(ctx, id, func(p *model.Product) bool {
		return p.OwnedBy(sellerID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}

	s.images.Release(ctx, removed.Images)
	s.log.Info("商品已删除", zap.String("product_id", id), zap.String("seller_id", sellerID))
	return nil
}

// ==================== 工具函数 ====================

// ResolveThumbnail 缩略图取 images[idx]
// idx 为空、负数或越界时取第一张；images 为空返回空串
func ResolveThumbnail(images []string, idx *int) string {
	if len(images) == 0 {
		return ""
	}
	if idx == nil || *idx < 0 || *idx >= len(images) {
		return images[0]
	}
	return images[*idx]
}

// retainOwned 按请求顺序保留 current 中存在的路径，去重
func retainOwned(requested, current []string) []string {
	owned := make(map[string]bool, len(current))
	for _, img := range current {
		owned[img] = true
	}

	out := make([]string, 0, len(requested))
	seen := make(map[string]bool, len(requested))
	for _, img := range requested {
		if owned[img] && !seen[img] {
			seen[img] = true
			out = append(out, img)
		}
	}
	return out
}

// difference 返回 a 中不在 b 里的元素
func difference(a, b []string) []string {
	in := make(map[string]bool, len(b))
	for _, v := range b {
		in[v] = true
	}

	var out []string
	for _, v := range a {
		if !in[v] {
			out = append(out, v)
		}
	}
	return out
}
