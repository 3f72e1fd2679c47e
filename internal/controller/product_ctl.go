package controller

import (
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshop/internal/api/dto"
	"foodshop/internal/middleware"
	"foodshop/internal/service"
)

// ==================== ProductController 商品控制器 ====================

type ProductController struct {
	productService *service.ProductService
	uploadService  *service.UploadService
}

func NewProductController(productService *service.ProductService, uploadService *service.UploadService) *ProductController {
	return &ProductController{
		productService: productService,
		uploadService:  uploadService,
	}
}

// ==================== 公开接口 ====================

// ListActive 公开商品列表
// @Summary 在售商品列表
// @Tags Products
// @Produce json
// @Success 200 {array} model.Product
// @Router /products [get]
func (c *ProductController) ListActive(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.productService.ListActive(ctx.Request.Context()))
}

// GetActive 公开商品详情
// @Summary 在售商品详情
// @Tags Products
// @Produce json
// @Param id path string true "商品ID"
// @Success 200 {object} model.Product
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) GetActive(ctx *gin.Context) {
	product, err := c.productService.GetActive(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, product)
}

// ==================== 管理员接口 ====================

// ListAll 全部商品
// @Summary 全部商品 (含已隐藏)
// @Tags Admin
// @Produce json
// @Success 200 {array} model.Product
// @Router /admin/products [get]
func (c *ProductController) ListAll(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.productService.ListAll(ctx.Request.Context()))
}

// SetStatus 上下架
// @Summary 修改商品状态
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "商品ID"
// @Param request body dto.UpdateStatusRequest true "active | hidden"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/products/{id} [patch]
func (c *ProductController) SetStatus(ctx *gin.Context) {
	var req dto.UpdateStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, service.ErrInvalidStatus.Error())
		return
	}

	product, err := c.productService.SetStatus(ctx.Request.Context(), ctx.Param("id"), req.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProductResponse{Success: true, Product: product})
}

// ==================== 卖家接口 ====================

// ListMine 我的商品
// @Summary 当前卖家的商品
// @Tags Seller
// @Produce json
// @Success 200 {array} model.Product
// @Router /seller/products [get]
func (c *ProductController) ListMine(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)
	ctx.JSON(http.StatusOK, c.productService.ListMine(ctx.Request.Context(), sess.UserID))
}

// Create 新建商品
// @Summary 新建商品
// @Tags Seller
// @Accept multipart/form-data
// @Produce json
// @Param name formData string true "名称"
// @Param price formData number true "价格"
// @Param unit formData string false "单位"
// @Param description formData string false "描述"
// @Param thumbnailIndex formData int false "缩略图下标"
// @Param images formData file true "图片 (最多 10 张，每张 5MB)"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /seller/products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	var form dto.ProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		invalidForm(ctx, err)
		return
	}
	fields, err := productFields(&form)
	if err != nil {
		respondError(ctx, err)
		return
	}

	images, err := c.uploadService.SaveImages(ctx.Request.Context(), formFiles(ctx, "images"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	product, err := c.productService.Create(ctx.Request.Context(), sess.UserID, sess.Email, fields, images, form.ThumbnailIdx())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProductResponse{Success: true, Product: product})
}

// Update 修改商品
// @Summary 修改自己的商品
// @Description 最终图片 = existingImages ++ newImages
// @Tags Seller
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "商品ID"
// @Param name formData string true "名称"
// @Param price formData number true "价格"
// @Param unit formData string false "单位"
// @Param description formData string false "描述"
// @Param thumbnailIndex formData int false "缩略图下标"
// @Param existingImages formData string false "保留的旧图片 (JSON 数组)"
// @Param newImages formData file false "新图片"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 413 {object} dto.ErrorResponse
// @Router /seller/products/{id} [put]
func (c *ProductController) Update(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)

	var form dto.ProductForm
	if err := ctx.ShouldBind(&form); err != nil {
		invalidForm(ctx, err)
		return
	}
	fields, err := productFields(&form)
	if err != nil {
		respondError(ctx, err)
		return
	}
	existing, err := form.ParseExistingImages()
	if err != nil {
		badRequest(ctx, err.Error())
		return
	}

	newImages, err := c.uploadService.SaveImages(ctx.Request.Context(), formFiles(ctx, "newImages"))
	if err != nil {
		respondError(ctx, err)
		return
	}

	product, err := c.productService.Update(ctx.Request.Context(), ctx.Param("id"), sess.UserID, fields, existing, newImages, form.ThumbnailIdx())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.ProductResponse{Success: true, Product: product})
}

// Delete 删除商品
// @Summary 删除自己的商品及其图片
// @Tags Seller
// @Produce json
// @Param id path string true "商品ID"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /seller/products/{id} [delete]
func (c *ProductController) Delete(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)
	if err := c.productService.Delete(ctx.Request.Context(), ctx.Param("id"), sess.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// ==================== 辅助函数 ====================

func productFields(form *dto.ProductForm) (service.ProductFields, error) {
	price, err := form.ParsePrice()
	if err != nil {
		return service.ProductFields{}, err
	}
	return service.ProductFields{
		Name:        form.Name,
		Price:       price,
		Unit:        form.Unit,
		Description: form.Description,
	}, nil
}

func invalidForm(ctx *gin.Context, err error) {
	if middleware.IsBodyTooLarge(err) {
		ctx.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
		return
	}
	badRequest(ctx, "invalid form: "+err.Error())
}

// formFiles 非 multipart 请求视为没有文件
func formFiles(ctx *gin.Context, field string) []*multipart.FileHeader {
	form, err := ctx.MultipartForm()
	if err != nil || form == nil {
		return nil
	}
	return form.File[field]
}
