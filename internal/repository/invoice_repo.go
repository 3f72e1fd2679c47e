package repository

import (
	"context"

	"go.uber.org/zap"

	"foodshop/internal/model"
)

// InvoiceRepository 订单(发票)仓储，只追加不修改
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	List(ctx context.Context) []model.Invoice
	ListBySeller(ctx context.Context, sellerID string) []model.Invoice
	Count(ctx context.Context) int
}

type invoiceRepo struct {
	invoices collection[model.Invoice]
}

func NewInvoiceRepository(store RecordStore, log *zap.Logger) InvoiceRepository {
	return &invoiceRepo{
		invoices: newCollection[model.Invoice](store, CollectionInvoices, log),
	}
}

func (r *invoiceRepo) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.invoices.update(ctx, func(items []model.Invoice) ([]model.Invoice, error) {
		return append(items, *invoice), nil
	})
}

func (r *invoiceRepo) List(ctx context.Context) []model.Invoice {
	return r.invoices.all(ctx)
}

func (r *invoiceRepo) ListBySeller(ctx context.Context, sellerID string) []model.Invoice {
	return r.invoices.filter(ctx, func(inv *model.Invoice) bool {
		return inv.SellerID == sellerID
	})
}

func (r *invoiceRepo) Count(ctx context.Context) int {
	return len(r.invoices.all(ctx))
}
