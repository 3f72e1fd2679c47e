package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore 基于 JSON 文件的记录存储
type FileStore struct {
	dir   string
	log   *zap.Logger
	locks collectionLocks
}

var _ RecordStore = (*FileStore)(nil)

// NewFileStore 创建文件存储，目录不存在时自动创建
func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrStorage, err)
	}
	return &FileStore{dir: dir, log: log}, nil
}

// Path 返回集合对应的文件路径
func (s *FileStore) Path(c Collection) string {
	return filepath.Join(s.dir, string(c)+".json")
}

func (s *FileStore) ReadAll(_ context.Context, c Collection) []json.RawMessage {
	records, err := s.read(c)
	if err != nil {
		s.log.Error("读取集合失败，按空集合处理",
			zap.String("collection", string(c)),
			zap.String("path", s.Path(c)),
			zap.Error(err))
		return []json.RawMessage{}
	}
	return records
}

func (s *FileStore) WriteAll(_ context.Context, c Collection, records []json.RawMessage) error {
	mu := s.locks.get(c)
	mu.Lock()
	defer mu.Unlock()

	return s.write(c, records)
}

func (s *FileStore) Update(_ context.Context, c Collection, fn UpdateFunc) error {
	mu := s.locks.get(c)
	mu.Lock()
	defer mu.Unlock()

	records, err := s.read(c)
	if err != nil {
		// 文件缺失视为空集合；文件损坏则拒绝覆盖，避免丢数据
		if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: read %s: %v", ErrStorage, c, err)
		}
		records = []json.RawMessage{}
	}

	next, err := fn(records)
	if err != nil {
		return err
	}
	return s.write(c, next)
}

func (s *FileStore) Close() error {
	return nil
}

func (s *FileStore) read(c Collection) ([]json.RawMessage, error) {
	data, err := os.ReadFile(s.Path(c))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// write 先写临时文件再 rename，保证替换是原子的
func (s *FileStore) write(c Collection, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorage, c, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+string(c)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStorage, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrStorage, c, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", ErrStorage, c, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrStorage, c, err)
	}
	if err := os.Rename(tmpName, s.Path(c)); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrStorage, c, err)
	}
	return nil
}
