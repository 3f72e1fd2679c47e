package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// collection 在 RecordStore 之上提供类型化的读写
type collection[T any] struct {
	store RecordStore
	name  Collection
	log   *zap.Logger
}

func newCollection[T any](store RecordStore, name Collection, log *zap.Logger) collection[T] {
	return collection[T]{store: store, name: name, log: log}
}

// all 读取全部记录，无法解析的单条记录跳过并记日志
func (c collection[T]) all(ctx context.Context) []T {
	raws := c.store.ReadAll(ctx, c.name)
	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		var item T
		if err := json.Unmarshal(raw, &item); err != nil {
			c.log.Warn("跳过无法解析的记录",
				zap.String("collection", string(c.name)),
				zap.Int("index", i),
				zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items
}

// update 读-改-写整个集合
// 与 all 不同，这里任何一条记录解析失败都会中止，避免写回时丢失数据
func (c collection[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	return c.store.Update(ctx, c.name, func(raws []json.RawMessage) ([]json.RawMessage, error) {
		items := make([]T, 0, len(raws))
		for i, raw := range raws {
			var item T
			if err := json.Unmarshal(raw, &item); err != nil {
				return nil, fmt.Errorf("%w: decode %s[%d]: %v", ErrStorage, c.name, i, err)
			}
			items = append(items, item)
		}

		next, err := fn(items)
		if err != nil {
			return nil, err
		}

		out := make([]json.RawMessage, 0, len(next))
		for _, item := range next {
			raw, err := json.Marshal(item)
			if err != nil {
				return nil, fmt.Errorf("%w: encode %s: %v", ErrStorage, c.name, err)
			}
			out = append(out, raw)
		}
		return out, nil
	})
}

// find 返回第一个满足条件的记录
func (c collection[T]) find(ctx context.Context, match func(*T) bool) (*T, bool) {
	for _, item := range c.all(ctx) {
		if match(&item) {
			found := item
			return &found, true
		}
	}
	return nil, false
}

func (c collection[T]) filter(ctx context.Context, match func(*T) bool) []T {
	all := c.all(ctx)
	out := make([]T, 0, len(all))
	for i := range all {
		if match(&all[i]) {
			out = append(out, all[i])
		}
	}
	return out
}
