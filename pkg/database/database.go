package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"foodshop/internal/repository"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// 存储驱动
const (
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options 打开记录存储所需参数
type Options struct {
	Driver  string
	DataDir string
	DSN     string
	// Debug 打印所有 SQL，方便调试
	Debug bool
}

// InitDB 初始化数据库连接
// driver: sqlite | postgres
func InitDB(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		if dir := filepath.Dir(dsn); dsn != ":memory:" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("创建数据库目录失败: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %s", driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("数据库连接失败: %w", err)
	}

	// 获取底层的 sqlDB 对象，用于设置连接池参数
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层 SQL DB 失败: %w", err)
	}

	if driver == DriverSQLite {
		// sqlite 单写者
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// OpenStore 按驱动打开记录存储并初始化全部集合
func OpenStore(ctx context.Context, opts Options, log *zap.Logger) (repository.RecordStore, error) {
	var (
		store repository.RecordStore
		err   error
	)

	switch opts.Driver {
	case DriverFile, "":
		store, err = repository.NewFileStore(opts.DataDir, log)
	case DriverSQLite, DriverPostgres:
		var db *gorm.DB
		db, err = InitDB(opts.Driver, opts.DSN, opts.Debug)
		if err != nil {
			return nil, err
		}
		store, err = repository.NewSQLStore(db, log)
	default:
		return nil, fmt.Errorf("不支持的存储驱动: %s", opts.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := repository.Bootstrap(ctx, store, log); err != nil {
		store.Close()
		return nil, err
	}

	log.Info("记录存储已就绪", zap.String("driver", opts.Driver))
	return store, nil
}
