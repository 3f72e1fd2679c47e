package service

import (
	"errors"

	"foodshop/internal/repository"
)

// ==================== 错误定义 ====================

var (
	// 认证与授权
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid username or password")

	// 资源不存在
	ErrProductNotFound = errors.New("product not found")

	// 账号
	ErrDuplicateUsername = errors.New("username already exists")
	ErrInvalidRole       = errors.New("invalid role")

	// 参数校验
	ErrMissingFields   = errors.New("missing required fields")
	ErrNoImages        = errors.New("at least one image is required")
	ErrInvalidPrice    = errors.New("price must be greater than zero")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidStatus   = errors.New("status must be active or hidden")

	// 上传
	ErrTooManyFiles        = errors.New("too many files")
	ErrFileTooLarge        = errors.New("file too large")
	ErrUnsupportedFileType = errors.New("only jpeg, jpg, png and gif images are allowed")
)

var validationErrors = []error{
	ErrMissingFields,
	ErrNoImages,
	ErrInvalidPrice,
	ErrInvalidQuantity,
	ErrInvalidStatus,
	ErrInvalidRole,
	ErrTooManyFiles,
	ErrFileTooLarge,
	ErrUnsupportedFileType,
}

// IsValidation 是否为参数校验类错误
func IsValidation(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound 是否为资源不存在
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, repository.ErrRecordNotFound)
}

// IsStorage 是否为存储层错误
func IsStorage(err error) bool {
	return errors.Is(err, repository.ErrStorage)
}
