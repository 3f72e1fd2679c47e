package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshop/internal/api/dto"
	"foodshop/internal/service"
)

// ==================== AccountController 卖家管理 ====================

type AccountController struct {
	accountService *service.AccountService
}

func NewAccountController(accountService *service.AccountService) *AccountController {
	return &AccountController{accountService: accountService}
}

// ListSellers 卖家列表
// @Summary 卖家列表
// @Tags Admin
// @Produce json
// @Success 200 {array} dto.AccountInfo
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /admin/sellers [get]
func (c *AccountController) ListSellers(ctx *gin.Context) {
	sellers := c.accountService.ListSellers(ctx.Request.Context())
	ctx.JSON(http.StatusOK, dto.NewAccountList(sellers))
}

// CreateSeller 创建卖家
// @Summary 创建卖家账号
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateSellerRequest true "卖家信息"
// @Success 200 {object} dto.CreateSellerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/sellers [post]
func (c *AccountController) CreateSeller(ctx *gin.Context) {
	var req dto.CreateSellerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, service.ErrMissingFields.Error()+": "+err.Error())
		return
	}

	seller, err := c.accountService.CreateSeller(ctx.Request.Context(), req.Username, req.Password, req.Email)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.CreateSellerResponse{
		Success: true,
		Seller:  dto.NewAccountInfo(seller),
	})
}

// DeleteSeller 删除卖家
// @Summary 删除卖家账号 (幂等)
// @Tags Admin
// @Produce json
// @Param id path string true "卖家ID"
// @Success 200 {object} dto.SuccessResponse
// @Router /admin/sellers/{id} [delete]
func (c *AccountController) DeleteSeller(ctx *gin.Context) {
	if err := c.accountService.DeleteSeller(ctx.Request.Context(), ctx.Param("id")); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
