package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshop/internal/api/dto"
	"foodshop/internal/middleware"
	"foodshop/internal/service"
)

// ==================== AuthController 登录控制器 ====================

type AuthController struct {
	authService *service.AuthService
	codec       *middleware.SessionCodec
}

func NewAuthController(authService *service.AuthService, codec *middleware.SessionCodec) *AuthController {
	return &AuthController{
		authService: authService,
		codec:       codec,
	}
}

// Login 登录
// @Summary 管理员/卖家登录
// @Description 成功后写入会话 Cookie，有效期 24 小时
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "invalid request body: "+err.Error())
		return
	}

	sess, err := c.authService.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(ctx, err)
		return
	}

	// 替换旧会话
	if old := middleware.GetSessionID(ctx); old != "" {
		c.authService.Logout(old)
	}
	if err := c.codec.SetCookie(ctx, sess.ID); err != nil {
		c.authService.Logout(sess.ID)
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.LoginResponse{
		Success:  true,
		Role:     sess.Role,
		Username: sess.Username,
	})
}

// Logout 登出
// @Summary 登出
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.authService.Logout(middleware.GetSessionID(ctx))
	c.codec.ClearCookie(ctx)
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// CheckAuth 当前会话
// @Summary 检查登录状态
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.CheckAuthResponse
// @Router /check-auth [get]
func (c *AuthController) CheckAuth(ctx *gin.Context) {
	sess, ok := c.authService.Current(middleware.GetSessionID(ctx))
	if !ok {
		ctx.JSON(http.StatusOK, dto.CheckAuthResponse{Authenticated: false})
		return
	}

	ctx.JSON(http.StatusOK, dto.CheckAuthResponse{
		Authenticated: true,
		User: &dto.SessionUser{
			ID:       sess.UserID,
			Username: sess.Username,
			Role:     sess.Role,
			Email:    sess.Email,
		},
	})
}
