package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodshop/internal/api/dto"
	"foodshop/internal/middleware"
	"foodshop/internal/service"
)

// ==================== OrderController 订单控制器 ====================

type OrderController struct {
	orderService *service.OrderService
}

func NewOrderController(orderService *service.OrderService) *OrderController {
	return &OrderController{orderService: orderService}
}

// PlaceOrder 下单
// @Summary 顾客下单
// @Description 订单写入后异步发送邮件给顾客与卖家，邮件失败不影响下单结果
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body dto.PlaceOrderRequest true "订单信息"
// @Success 200 {object} dto.OrderResponse
// @Failure 400 {object} dto.OrderResponse
// @Failure 404 {object} dto.OrderResponse
// @Failure 500 {object} dto.OrderResponse
// @Router /orders [post]
func (c *OrderController) PlaceOrder(ctx *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.OrderResponse{Success: false, Error: "invalid request body: " + err.Error()})
		return
	}

	quantity, err := service.ParseQuantity(req.Quantity)
	if err != nil {
		c.respondOrderError(ctx, err)
		return
	}

	invoice, err := c.orderService.PlaceOrder(ctx.Request.Context(), service.PlaceOrderInput{
		ProductID:     string(req.ProductID),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Quantity:      quantity,
	})
	if err != nil {
		c.respondOrderError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OrderResponse{Success: true, Invoice: invoice})
}

// ListInvoices 全部订单
// @Summary 全部订单
// @Tags Admin
// @Produce json
// @Success 200 {array} model.Invoice
// @Router /admin/invoices [get]
func (c *OrderController) ListInvoices(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.orderService.ListInvoices(ctx.Request.Context()))
}

// ListSellerInvoices 我的订单
// @Summary 当前卖家商品的订单
// @Tags Seller
// @Produce json
// @Success 200 {array} model.Invoice
// @Router /seller/invoices [get]
func (c *OrderController) ListSellerInvoices(ctx *gin.Context) {
	sess := middleware.GetSession(ctx)
	ctx.JSON(http.StatusOK, c.orderService.ListSellerInvoices(ctx.Request.Context(), sess.UserID))
}

// respondOrderError 订单接口的错误体额外带 success:false
func (c *OrderController) respondOrderError(ctx *gin.Context, err error) {
	status := errorStatus(err)
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		_ = ctx.Error(err)
		msg = "failed to create order"
	}
	ctx.JSON(status, dto.OrderResponse{Success: false, Error: msg})
}
