package service

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodshop/pkg/utils"
)

// 上传限制
const (
	MaxUploadFiles    = 10
	MaxUploadFileSize = 5 << 20
	// MaxUploadBody 一次商品请求的请求体上限：全部图片加 1MB 表单字段
	MaxUploadBody = MaxUploadFiles*MaxUploadFileSize + 1<<20
)

var allowedImageExt = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".gif":  true,
}

var allowedImageMIME = []string{"image/jpeg", "image/png", "image/gif"}

// ==================== UploadService 图片上传 ====================

type UploadService struct {
	provider StorageProvider
	log      *zap.Logger
	maxFiles int
	maxSize  int64
}

func NewUploadService(provider StorageProvider, log *zap.Logger) *UploadService {
	return &UploadService{
		provider: provider,
		log:      log,
		maxFiles: MaxUploadFiles,
		maxSize:  MaxUploadFileSize,
	}
}

// SaveImages 校验并保存一批图片，返回访问路径
// 任何一张失败时已保存的文件会被回收
func (s *UploadService) SaveImages(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) > s.maxFiles {
		return nil, fmt.Errorf("%w: at most %d per request", ErrTooManyFiles, s.maxFiles)
	}
	for _, fh := range files {
		if err := s.validateHeader(fh); err != nil {
			return nil, err
		}
	}

	urls := make([]string, 0, len(files))
	for _, fh := range files {
		url, err := s.save(ctx, fh)
		if err != nil {
			s.Release(ctx, urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// Release 尽力删除文件，失败只记日志
func (s *UploadService) Release(ctx context.Context, urls []string) {
	for _, url := range urls {
		if err := s.provider.Delete(ctx, url); err != nil {
			s.log.Warn("删除图片失败", zap.String("url", url), zap.Error(err))
		}
	}
}

// validateHeader 扩展名与声明的类型都必须是允许的图片格式
func (s *UploadService) validateHeader(fh *multipart.FileHeader) error {
	if fh.Size > s.maxSize {
		return fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, fh.Filename, s.maxSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return fmt.Errorf("%w: %s", ErrUnsupportedFileType, fh.Filename)
	}

	declared := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	if i := strings.Index(declared, ";"); i >= 0 {
		declared = strings.TrimSpace(declared[:i])
	}
	if !isAllowedImageMIME(declared) {
		return fmt.Errorf("%w: %s declared as %q", ErrUnsupportedFileType, fh.Filename, declared)
	}
	return nil
}

func (s *UploadService) save(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload %s: %w", fh.Filename, err)
	}
	if int64(len(data)) > s.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrFileTooLarge, fh.Filename, s.maxSize)
	}

	// 按实际内容再判断一次，防止改扩展名
	detected := mimetype.Detect(data)
	if !detected.Is("image/jpeg") && !detected.Is("image/png") && !detected.Is("image/gif") {
		return "", fmt.Errorf("%w: %s content is %s", ErrUnsupportedFileType, fh.Filename, detected.String())
	}

	return s.provider.Upload(ctx, data, GenerateImageName(fh.Filename), detected.String())
}

// GenerateImageName 清洗后的原文件名 + "_" + 唯一后缀 + 扩展名
func GenerateImageName(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	base := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	suffix := fmt.Sprintf("%d%s", time.Now().UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return utils.CleanFilename(base) + "_" + suffix + ext
}

func isAllowedImageMIME(ct string) bool {
	if ct == "image/jpg" {
		return true
	}
	for _, allowed := range allowedImageMIME {
		if ct == allowed {
			return true
		}
	}
	return false
}
