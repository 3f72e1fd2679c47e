package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshop/internal/service"
)

// errorStatus 业务错误映射为 HTTP 状态码
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case service.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateUsername):
		return http.StatusBadRequest
	case service.IsValidation(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respondError 统一错误响应 {"error": "..."}
// 5xx 不向调用方暴露内部细节
func respondError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
		msg = "internal server error"
		if service.IsStorage(err) {
			msg = "storage unavailable"
		}
	}
	ctx.JSON(status, gin.H{"error": msg})
}

func badRequest(ctx *gin.Context, msg string) {
	ctx.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
