package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLStore(t *testing.T) *SQLStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	// :memory: 每个连接一个库，限制为单连接
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	store, err := NewSQLStore(db, zap.NewNop())
	require.NoError(t, err)
	return store
}

func TestSQLStore_WriteAll_PreservesOrder(t *testing.T) {
	store := setupSQLStore(t)
	ctx := context.Background()

	in := []json.RawMessage{
		json.RawMessage(`{"id":"3"}`),
		json.RawMessage(`{"id":"1"}`),
		json.RawMessage(`{"id":"2"}`),
	}
	require.NoError(t, store.WriteAll(ctx, CollectionProducts, in))

	out := store.ReadAll(ctx, CollectionProducts)
	require.Len(t, out, 3)
	for i := range in {
		assert.JSONEq(t, string(in[i]), string(out[i]))
	}
}

func TestSQLStore_CollectionsAreIsolated(t *testing.T) {
	store := setupSQLStore(t)
	ctx := context.Background()

	require.NoError(t, store.WriteAll(ctx, CollectionProducts, []json.RawMessage{json.RawMessage(`{"id":"p"}`)}))
	require.NoError(t, store.WriteAll(ctx, CollectionInvoices, []json.RawMessage{}))

	assert.Len(t, store.ReadAll(ctx, CollectionProducts), 1)
	assert.Empty(t, store.ReadAll(ctx, CollectionInvoices))
}

func TestSQLStore_Update(t *testing.T) {
	store := setupSQLStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		err := store.Update(ctx, CollectionInvoices, func(records []json.RawMessage) ([]json.RawMessage, error) {
			return append(records, json.RawMessage(`{"n":1}`)), nil
		})
		require.NoError(t, err)
	}
	assert.Len(t, store.ReadAll(ctx, CollectionInvoices), 3)

	err := store.Update(ctx, CollectionInvoices, func(records []json.RawMessage) ([]json.RawMessage, error) {
		return nil, ErrRecordNotFound
	})
	assert.ErrorIs(t, err, ErrRecordNotFound)
	assert.Len(t, store.ReadAll(ctx, CollectionInvoices), 3)
}
