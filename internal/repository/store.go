package repository

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"
)

// ==================== 集合定义 ====================

// Collection 逻辑集合名，文件后端下即 <dataDir>/<name>.json
type Collection string

const (
	CollectionAccounts Collection = "users"
	CollectionProducts Collection = "products"
	CollectionInvoices Collection = "invoices"
)

// Collections 全部集合，启动引导时使用
var Collections = []Collection{CollectionAccounts, CollectionProducts, CollectionInvoices}

// ==================== 错误定义 ====================

var (
	ErrStorage        = errors.New("storage error")
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
)

// ==================== 接口定义 ====================

// RecordStore 记录存储接口
// 每个集合是一个有序的 JSON 文档序列，所有修改都是"整集合读-改-写"
type RecordStore interface {
	// ReadAll 读取整个集合；存储缺失或损坏时记录日志并返回空序列
	ReadAll(ctx context.Context, c Collection) []json.RawMessage

	// WriteAll 整体替换集合，读者不会看到写了一半的数据
	WriteAll(ctx context.Context, c Collection, records []json.RawMessage) error

	// Update 在集合锁内执行读-改-写；fn 返回错误时不落盘
	Update(ctx context.Context, c Collection, fn func(records []json.RawMessage) ([]json.RawMessage, error)) error

	Close() error
}

// UpdateFunc Update 的回调签名
type UpdateFunc = func(records []json.RawMessage) ([]json.RawMessage, error)

// ==================== 集合锁 ====================

// collectionLocks 每个集合一把互斥锁，串行化同一集合的写入
type collectionLocks struct {
	mu    sync.Mutex
	locks map[Collection]*sync.Mutex
}

func (l *collectionLocks) get(c Collection) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.locks == nil {
		l.locks = make(map[Collection]*sync.Mutex)
	}
	m, ok := l.locks[c]
	if !ok {
		m = &sync.Mutex{}
		l.locks[c] = m
	}
	return m
}

// ==================== 启动引导 ====================

// Bootstrap 确保每个集合都存在 (文件后端会创建空的 JSON 数组)
// 已损坏的集合保持原样，只记录告警，不阻止启动
func Bootstrap(ctx context.Context, store RecordStore, log *zap.Logger) error {
	for _, c := range Collections {
		err := store.Update(ctx, c, func(records []json.RawMessage) ([]json.RawMessage, error) {
			return records, nil
		})
		if err == nil {
			continue
		}
		if errors.Is(err, ErrStorage) {
			log.Warn("集合无法初始化，保留原有数据", zap.String("collection", string(c)), zap.Error(err))
			continue
		}
		return err
	}
	return nil
}
