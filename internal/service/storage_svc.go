package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ==================== 接口定义 ====================

// StorageProvider 商品图片存储接口
type StorageProvider interface {
	// Upload 保存文件，返回对外访问路径
	Upload(ctx context.Context, data []byte, filename string, contentType string) (url string, err error)

	// Delete 删除文件，文件不存在不算错误
	Delete(ctx context.Context, url string) error
}

// ==================== 配置 ====================

type StorageConfig struct {
	Provider  string // "local" | "s3"
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
	Endpoint  string // 自定义端点 (S3 兼容存储)
	CDNDomain string // CDN域名 (可选)
	BasePath  string // 本地目录或 S3 key 前缀
	BaseURL   string // 本地存储对外路径前缀，默认 /uploads
}

// ==================== 工厂方法 ====================

func NewStorageProvider(cfg StorageConfig) (StorageProvider, error) {
	switch cfg.Provider {
	case "s3":
		return NewS3Storage(cfg)
	case "", "local":
		return NewLocalStorage(cfg)
	default:
		return nil, fmt.Errorf("不支持的存储提供者: %s", cfg.Provider)
	}
}

// ==================== S3 实现 ====================

type S3Storage struct {
	client    *s3.Client
	bucket    string
	region    string
	endpoint  string
	cdnDomain string
	basePath  string
}

func NewS3Storage(cfg StorageConfig) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, errors.New("S3 bucket 未配置")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	}
	awsCfg, err := config.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("加载AWS配置失败: %v", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Storage{
		client:    client,
		bucket:    cfg.Bucket,
		region:    cfg.Region,
		endpoint:  strings.TrimSuffix(cfg.Endpoint, "/"),
		cdnDomain: cfg.CDNDomain,
		basePath:  strings.Trim(cfg.BasePath, "/"),
	}, nil
}

func (s *S3Storage) Upload(ctx context.Context, data []byte, filename string, contentType string) (string, error) {
	key := s.generateKey(filename)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("上传S3失败: %v", err)
	}

	return s.getPublicURL(key), nil
}

// Delete S3 删除不存在的对象同样返回成功
func (s *S3Storage) Delete(ctx context.Context, url string) error {
	key := s.extractKey(url)
	if key == "" {
		return fmt.Errorf("无法解析文件路径: %s", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}

// generateKey 文件名已由上传服务保证唯一，这里只加日期目录
func (s *S3Storage) generateKey(filename string) string {
	datePath := time.Now().Format("2006/01/02")
	if s.basePath != "" {
		return fmt.Sprintf("%s/%s/%s", s.basePath, datePath, filename)
	}
	return fmt.Sprintf("%s/%s", datePath, filename)
}

func (s *S3Storage) getPublicURL(key string) string {
	switch {
	case s.cdnDomain != "":
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, key)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
	}
}

func (s *S3Storage) extractKey(url string) string {
	var prefix string
	switch {
	case s.cdnDomain != "":
		prefix = fmt.Sprintf("https://%s/", s.cdnDomain)
	case s.endpoint != "":
		prefix = fmt.Sprintf("%s/%s/", s.endpoint, s.bucket)
	default:
		prefix = fmt.Sprintf("https://%s.s3.%s.amazonaws.com/", s.bucket, s.region)
	}
	if !strings.HasPrefix(url, prefix) {
		return ""
	}
	return strings.TrimPrefix(url, prefix)
}

// ==================== 本地存储 ====================

// LocalStorage 保存到本地目录，由路由以 /uploads 静态暴露
type LocalStorage struct {
	basePath string
	baseURL  string
}

func NewLocalStorage(cfg StorageConfig) (*LocalStorage, error) {
	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "./uploads"
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "/uploads"
	}

	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %v", err)
	}

	return &LocalStorage{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Dir 本地目录，用于挂载静态路由
func (s *LocalStorage) Dir() string {
	return s.basePath
}

func (s *LocalStorage) URLPrefix() string {
	return s.baseURL
}

func (s *LocalStorage) Upload(_ context.Context, data []byte, filename string, _ string) (string, error) {
	name := path.Base(filepath.ToSlash(filename))
	if name == "." || name == "/" || name == ".." {
		return "", fmt.Errorf("非法文件名: %q", filename)
	}

	if err := os.WriteFile(filepath.Join(s.basePath, name), data, 0o644); err != nil {
		return "", fmt.Errorf("写入本地文件失败: %v", err)
	}
	return s.baseURL + "/" + name, nil
}

// Delete 只取路径最后一段，不会删除上传目录之外的文件
func (s *LocalStorage) Delete(_ context.Context, url string) error {
	name := path.Base(url)
	if name == "." || name == "/" || name == ".." || name == "" {
		return nil
	}

	err := os.Remove(filepath.Join(s.basePath, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
