package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"foodshop/internal/model"
)

func TestAccountRepository_CreateDuplicate(t *testing.T) {
	store := newTestFileStore(t)
	repo := NewAccountRepository(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{ID: "1", Username: "alice", Role: model.RoleSeller}))
	err := repo.Create(ctx, &model.Account{ID: "2", Username: "alice", Role: model.RoleSeller})
	assert.ErrorIs(t, err, ErrDuplicateKey)
	assert.Equal(t, 1, repo.Count(ctx))

	// 大小写敏感
	require.NoError(t, repo.Create(ctx, &model.Account{ID: "3", Username: "Alice", Role: model.RoleSeller}))
	assert.Equal(t, 2, repo.Count(ctx))
}

func TestAccountRepository_DeleteByRole(t *testing.T) {
	store := newTestFileStore(t)
	repo := NewAccountRepository(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Account{ID: "admin", Username: "admin", Role: model.RoleAdmin}))
	require.NoError(t, repo.Create(ctx, &model.Account{ID: "s1", Username: "s1", Role: model.RoleSeller}))

	deleted, err := repo.DeleteByRole(ctx, "admin", model.RoleSeller)
	require.NoError(t, err)
	assert.False(t, deleted)

	deleted, err = repo.DeleteByRole(ctx, "s1", model.RoleSeller)
	require.NoError(t, err)
	assert.True(t, deleted)

	got, err := repo.GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Len(t, repo.ListByRole(ctx, model.RoleAdmin), 1)
}

func TestProductRepository_UpdateAndDelete(t *testing.T) {
	store := newTestFileStore(t)
	repo := NewProductRepository(store, zap.NewNop())
	ctx := context.Background()

	p := &model.Product{
		ID:        "p1",
		SellerID:  "s1",
		Name:      "Bánh mì",
		Price:     decimal.NewFromInt(25000),
		Images:    []string{"/uploads/a.jpg"},
		Thumbnail: "/uploads/a.jpg",
		Status:    model.ProductStatusActive,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Create(ctx, p))

	owner := func(sellerID string) func(*model.Product) bool {
		return func(p *model.Product) bool { return p.OwnedBy(sellerID) }
	}

	_, err := repo.Update(ctx, "p1", owner("s2"), func(p *model.Product) error {
		p.Name = "hijacked"
		return nil
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	updated, err := repo.Update(ctx, "p1", owner("s1"), func(p *model.Product) error {
		p.Name = "Bánh mì thịt"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Bánh mì thịt", updated.Name)

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(25000)))

	removed, err := repo.DeleteIf(ctx, "p1", owner("s1"))
	require.NoError(t, err)
	assert.Equal(t, "p1", removed.ID)

	_, err = repo.DeleteIf(ctx, "p1", owner("s1"))
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Empty(t, repo.List(ctx))
}

func TestInvoiceRepository_ListBySeller(t *testing.T) {
	store := newTestFileStore(t)
	repo := NewInvoiceRepository(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Invoice{ID: "i1", SellerID: "s1", Quantity: 1}))
	require.NoError(t, repo.Create(ctx, &model.Invoice{ID: "i2", SellerID: "s2", Quantity: 2}))
	require.NoError(t, repo.Create(ctx, &model.Invoice{ID: "i3", SellerID: "s1", Quantity: 3}))

	assert.Equal(t, 3, repo.Count(ctx))
	mine := repo.ListBySeller(ctx, "s1")
	require.Len(t, mine, 2)
	assert.Equal(t, "i1", mine[0].ID)
	assert.Equal(t, "i3", mine[1].ID)
}
