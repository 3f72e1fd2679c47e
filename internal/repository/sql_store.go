package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Record 集合中的一条 JSON 文档
type Record struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	Collection string         `gorm:"size:32;not null;index:idx_collection_position,priority:1"`
	Position   int            `gorm:"not null;index:idx_collection_position,priority:2"`
	Body       datatypes.JSON `gorm:"not null"`
	UpdatedAt  time.Time
}

func (Record) TableName() string {
	return "records"
}

// SQLStore 基于 gorm 的记录存储 (sqlite / postgres)
// 与文件后端语义一致：集合整体替换，写入在事务内完成
type SQLStore struct {
	db    *gorm.DB
	log   *zap.Logger
	locks collectionLocks
}

var _ RecordStore = (*SQLStore)(nil)

// NewSQLStore 创建 SQL 存储并自动建表
func NewSQLStore(db *gorm.DB, log *zap.Logger) (*SQLStore, error) {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("%w: migrate records: %v", ErrStorage, err)
	}
	return &SQLStore{db: db, log: log}, nil
}

func (s *SQLStore) ReadAll(ctx context.Context, c Collection) []json.RawMessage {
	records, err := s.read(s.db.WithContext(ctx), c)
	if err != nil {
		s.log.Error("读取集合失败，按空集合处理",
			zap.String("collection", string(c)),
			zap.Error(err))
		return []json.RawMessage{}
	}
	return records
}

func (s *SQLStore) WriteAll(ctx context.Context, c Collection, records []json.RawMessage) error {
	mu := s.locks.get(c)
	mu.Lock()
	defer mu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.replace(tx, c, records)
	})
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, c, err)
	}
	return nil
}

func (s *SQLStore) Update(ctx context.Context, c Collection, fn UpdateFunc) error {
	mu := s.locks.get(c)
	mu.Lock()
	defer mu.Unlock()

	var fnErr error
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := s.read(tx, c)
		if err != nil {
			return err
		}
		next, err := fn(records)
		if err != nil {
			fnErr = err
			return err
		}
		return s.replace(tx, c, next)
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%w: update %s: %v", ErrStorage, c, err)
	}
	return nil
}

func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLStore) read(tx *gorm.DB, c Collection) ([]json.RawMessage, error) {
	var rows []Record
	if err := tx.Where("collection = ?", string(c)).Order("position asc").Find(&rows).Error; err != nil {
		return nil, err
	}

	records := make([]json.RawMessage, 0, len(rows))
	for _, row := range rows {
		records = append(records, json.RawMessage(row.Body))
	}
	return records, nil
}

// replace 删除集合全部行后按顺序重新插入
func (s *SQLStore) replace(tx *gorm.DB, c Collection, records []json.RawMessage) error {
	if err := tx.Where("collection = ?", string(c)).Delete(&Record{}).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}

	rows := make([]Record, 0, len(records))
	for i, raw := range records {
		rows = append(rows, Record{
			Collection: string(c),
			Position:   i,
			Body:       datatypes.JSON(raw),
		})
	}
	return tx.CreateInBatches(rows, 100).Error
}
