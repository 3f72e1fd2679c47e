package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"foodshop/internal/controller"
	"foodshop/internal/middleware"
	"foodshop/internal/model"
	"foodshop/internal/service"

	_ "foodshop/docs"
)

// Controllers 路由依赖的控制器
type Controllers struct {
	Auth    *controller.AuthController
	Account *controller.AccountController
	Product *controller.ProductController
	Order   *controller.OrderController
}

// Options 路由级依赖
type Options struct {
	AuthService  *service.AuthService
	Codec        *middleware.SessionCodec
	LoginLimiter *middleware.IPRateLimiter
	// UploadDir 非空时以 UploadURL (默认 /uploads) 暴露本地图片目录
	UploadDir string
	UploadURL string
	// MaxUploadBody 商品写接口的请求体上限，<=0 不限制
	MaxUploadBody int64
	Swagger       bool
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctl Controllers, opts Options) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:3000/swagger/index.html 即可查看
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// 2. 本地图片
	if opts.UploadDir != "" {
		urlPrefix := opts.UploadURL
		if urlPrefix == "" {
			urlPrefix = "/uploads"
		}
		r.Static(urlPrefix, opts.UploadDir)
	}

	requireAdmin := middleware.RequireRole(opts.AuthService, model.RoleAdmin)
	requireSeller := middleware.RequireRole(opts.AuthService, model.RoleSeller)
	limitBody := middleware.BodyLimit(opts.MaxUploadBody)

	// 3. API 路由组
	api := r.Group("/api")
	api.Use(middleware.LoadSession(opts.Codec))
	{
		// 认证
		if opts.LoginLimiter != nil {
			api.POST("/login", middleware.RateLimit(opts.LoginLimiter), ctl.Auth.Login)
		} else {
			api.POST("/login", ctl.Auth.Login)
		}
		api.POST("/logout", ctl.Auth.Logout)
		api.GET("/check-auth", ctl.Auth.CheckAuth)

		// 管理员
		admin := api.Group("/admin", requireAdmin)
		{
			admin.GET("/sellers", ctl.Account.ListSellers)
			admin.POST("/sellers", ctl.Account.CreateSeller)
			admin.DELETE("/sellers/:id", ctl.Account.DeleteSeller)

			admin.GET("/products", ctl.Product.ListAll)
			admin.PATCH("/products/:id", ctl.Product.SetStatus)

			admin.GET("/invoices", ctl.Order.ListInvoices)
		}

		// 卖家
		seller := api.Group("/seller", requireSeller)
		{
			seller.GET("/products", ctl.Product.ListMine)
			seller.POST("/products", limitBody, ctl.Product.Create)
			seller.PUT("/products/:id", limitBody, ctl.Product.Update)
			seller.DELETE("/products/:id", ctl.Product.Delete)

			seller.GET("/invoices", ctl.Order.ListSellerInvoices)
		}

		// 公开
		api.GET("/products", ctl.Product.ListActive)
		api.GET("/products/:id", ctl.Product.GetActive)
		api.POST("/orders", ctl.Order.PlaceOrder)
	}
}
