package repository

import (
	"context"

	"go.uber.org/zap"

	"foodshop/internal/model"
)

// ==================== 接口定义 ====================

// ProductRepository 商品仓储接口
type ProductRepository interface {
	List(ctx context.Context) []model.Product
	ListByStatus(ctx context.Context, status model.ProductStatus) []model.Product
	ListBySeller(ctx context.Context, sellerID string) []model.Product
	// GetByID 不区分状态，未找到时返回 nil, nil
	GetByID(ctx context.Context, id string) (*model.Product, error)
	Create(ctx context.Context, product *model.Product) error
	// Update 在集合锁内修改单个商品；match 不通过时视为不存在
	Update(ctx context.Context, id string, match func(*model.Product) bool, mutate func(*model.Product) error) (*model.Product, error)
	// DeleteIf 删除满足 match 的商品并返回被删除的记录
	DeleteIf(ctx context.Context, id string, match func(*model.Product) bool) (*model.Product, error)
}

// ==================== 仓储实现 ====================

type productRepo struct {
	products collection[model.Product]
}

// NewProductRepository 创建商品仓储
func NewProductRepository(store RecordStore, log *zap.Logger) ProductRepository {
	return &productRepo{
		products: newCollection[model.Product](store, CollectionProducts, log),
	}
}

func (r *productRepo) List(ctx context.Context) []model.Product {
	return r.products.all(ctx)
}

func (r *productRepo) ListByStatus(ctx context.Context, status model.ProductStatus) []model.Product {
	return r.products.filter(ctx, func(p *model.Product) bool {
		return p.Status == status
	})
}

func (r *productRepo) ListBySeller(ctx context.Context, sellerID string) []model.Product {
	return r.products.filter(ctx, func(p *model.Product) bool {
		return p.SellerID == sellerID
	})
}

func (r *productRepo) GetByID(ctx context.Context, id string) (*model.Product, error) {
	product, _ := r.products.find(ctx, func(p *model.Product) bool {
		return p.ID == id
	})
	return product, nil
}

func (r *productRepo) Create(ctx context.Context, product *model.Product) error {
	return r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		for _, p := range items {
			if p.ID == product.ID {
				return nil, ErrDuplicateKey
			}
		}
		return append(items, *product), nil
	})
}

func (r *productRepo) Update(ctx context.Context, id string, match func(*model.Product) bool, mutate func(*model.Product) error) (*model.Product, error) {
	var updated *model.Product
	err := r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if match != nil && !match(&items[i]) {
				return nil, ErrRecordNotFound
			}
			if err := mutate(&items[i]); err != nil {
				return nil, err
			}
			p := items[i]
			updated = &p
			return items, nil
		}
		return nil, ErrRecordNotFound
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *productRepo) DeleteIf(ctx context.Context, id string, match func(*model.Product) bool) (*model.Product, error) {
	var removed *model.Product
	err := r.products.update(ctx, func(items []model.Product) ([]model.Product, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			if match != nil && !match(&items[i]) {
				return nil, ErrRecordNotFound
			}
			p := items[i]
			removed = &p
			return append(items[:i], items[i+1:]...), nil
		}
		return nil, ErrRecordNotFound
	})
	if err != nil {
		return nil, err
	}
	return removed, nil
}
