package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodshop/internal/config"
	"foodshop/internal/controller"
	"foodshop/internal/middleware"
	"foodshop/internal/repository"
	"foodshop/internal/router"
	"foodshop/internal/service"
	"foodshop/internal/task"
	"foodshop/pkg/database"
	"foodshop/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Food Shop API
// @version         1.0
// @description     食品商城后端：卖家上架商品，顾客下单，管理员管理卖家与商品
// @BasePath        /api
// @securityDefinitions.apikey SessionCookie
// @in              cookie
// @name            foodshop.sid
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// 2. 初始化依赖
	deps, err := initDependencies(cfg, log)
	if err != nil {
		log.Fatal("初始化依赖失败", zap.Error(err))
	}

	// 3. 启动定时任务
	if err := initTasks(deps); err != nil {
		log.Fatal("定时任务启动失败", zap.Error(err))
	}

	// 4. 初始化路由
	r := setupEngine(deps)

	// 5. 启动服务
	startServer(r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	Config      *config.Config
	Log         *zap.Logger
	Store       repository.RecordStore
	Repos       *Repositories
	Services    *Services
	Controllers router.Controllers
	Codec       *middleware.SessionCodec
	Limiter     *middleware.IPRateLimiter
	Tasks       *Tasks
}

// Repositories 仓库集合
type Repositories struct {
	Account repository.AccountRepository
	Product repository.ProductRepository
	Invoice repository.InvoiceRepository
}

// Services 服务集合
type Services struct {
	Sessions *service.SessionStore
	Auth     *service.AuthService
	Account  *service.AccountService
	Storage  service.StorageProvider
	Upload   *service.UploadService
	Product  *service.ProductService
	Notify   *service.NotifyService
	Order    *service.OrderService
}

// Tasks 定时任务
type Tasks struct {
	SessionSweep *task.SessionSweepTask
}

// ==================== 初始化函数 ====================

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	ctx := context.Background()

	// -------- 存储层 --------
	store, err := initStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	repos := initRepositories(store, log)

	// -------- 服务层 --------
	services, err := initServices(cfg, repos, log)
	if err != nil {
		store.Close()
		return nil, err
	}

	// 首次启动时创建默认管理员
	created, err := services.Account.EnsureDefaultAdmin(ctx, cfg.Admin.Username, cfg.Admin.Password, cfg.Admin.Email)
	if err != nil {
		store.Close()
		return nil, err
	}
	if created {
		log.Info("已创建默认管理员", zap.String("username", cfg.Admin.Username))
	}

	// -------- 中间件依赖 --------
	secret := cfg.Session.Secret
	if secret == "" {
		secret = randomSecret()
		log.Warn("SESSION_SECRET 未设置，使用随机密钥，重启后所有会话失效")
	}
	codec := middleware.NewSessionCodec(middleware.SessionCookieConfig{
		SecretKey: secret,
		TTL:       services.Sessions.TTL(),
		Name:      cfg.Session.CookieName,
		Secure:    cfg.Session.CookieSecure,
	})
	limiter := middleware.NewIPRateLimiter(cfg.Security.LoginRatePerMinute)

	return &Dependencies{
		Config:      cfg,
		Log:         log,
		Store:       store,
		Repos:       repos,
		Services:    services,
		Controllers: initControllers(services, codec),
		Codec:       codec,
		Limiter:     limiter,
	}, nil
}

// initStore 打开记录存储
func initStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (repository.RecordStore, error) {
	dsn := cfg.Store.DSN
	if cfg.Store.Driver == database.DriverSQLite {
		dsn = cfg.SQLiteDSN()
	}
	return database.OpenStore(ctx, database.Options{
		Driver:  cfg.Store.Driver,
		DataDir: cfg.Store.DataDir,
		DSN:     dsn,
		Debug:   cfg.Log.Level == "debug",
	}, log)
}

// initRepositories 初始化所有仓库
func initRepositories(store repository.RecordStore, log *zap.Logger) *Repositories {
	return &Repositories{
		Account: repository.NewAccountRepository(store, log),
		Product: repository.NewProductRepository(store, log),
		Invoice: repository.NewInvoiceRepository(store, log),
	}
}

// initServices 初始化业务服务
func initServices(cfg *config.Config, repos *Repositories, log *zap.Logger) (*Services, error) {
	storage, err := service.NewStorageProvider(service.StorageConfig{
		Provider:  cfg.Storage.Provider,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
		CDNDomain: cfg.Storage.CDNDomain,
		BasePath:  storageBasePath(cfg),
	})
	if err != nil {
		return nil, err
	}

	mailer, err := service.NewMailer(service.MailConfig{
		Driver:   cfg.Mail.Driver,
		From:     cfg.Mail.From,
		Endpoint: cfg.Mail.Endpoint,
		APIKey:   cfg.Mail.APIKey,
		SMTPHost: cfg.Mail.SMTPHost,
		SMTPPort: cfg.Mail.SMTPPort,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		Timeout:  cfg.Mail.Timeout,
		Proxy:    cfg.Mail.Proxy,
	}, log)
	if err != nil {
		return nil, err
	}

	sessions := service.NewSessionStore(cfg.Session.TTL)
	upload := service.NewUploadService(storage, log)
	notify := service.NewNotifyService(mailer, cfg.Mail.Workers, log)

	return &Services{
		Sessions: sessions,
		Auth:     service.NewAuthService(repos.Account, sessions, log),
		Account:  service.NewAccountService(repos.Account, sessions, log),
		Storage:  storage,
		Upload:   upload,
		Product:  service.NewProductService(repos.Product, upload, log),
		Notify:   notify,
		Order:    service.NewOrderService(repos.Product, repos.Invoice, notify, log),
	}, nil
}

// storageBasePath 本地存储用上传目录，S3 用 key 前缀
func storageBasePath(cfg *config.Config) string {
	if cfg.Storage.Provider == "s3" {
		return cfg.Storage.BasePath
	}
	return cfg.Storage.UploadDir
}

// initControllers 初始化所有控制器
func initControllers(svc *Services, codec *middleware.SessionCodec) router.Controllers {
	return router.Controllers{
		Auth:    controller.NewAuthController(svc.Auth, codec),
		Account: controller.NewAccountController(svc.Account),
		Product: controller.NewProductController(svc.Product, svc.Upload),
		Order:   controller.NewOrderController(svc.Order),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) error {
	sweep := task.NewSessionSweepTask(deps.Services.Sessions, deps.Limiter, deps.Log)
	if spec := deps.Config.Session.SweepSpec; spec != "" {
		sweep.SetSpec(spec)
	}
	if err := sweep.Start(); err != nil {
		return err
	}

	deps.Tasks = &Tasks{SessionSweep: sweep}
	deps.Log.Info("定时任务已启动")
	return nil
}

// ==================== 服务启动 ====================

// setupEngine 创建 gin 引擎并注册路由
func setupEngine(deps *Dependencies) *gin.Engine {
	gin.SetMode(deps.Config.Server.Mode)

	r := gin.New()
	r.Use(middleware.Recovery(deps.Log), middleware.RequestLogger(deps.Log))
	// 超出部分落临时文件，总大小由 MaxUploadBody 限制
	r.MaxMultipartMemory = 8 << 20

	opts := router.Options{
		AuthService:   deps.Services.Auth,
		Codec:         deps.Codec,
		LoginLimiter:  deps.Limiter,
		MaxUploadBody: service.MaxUploadBody,
		Swagger:       deps.Config.Server.Swagger,
	}
	if local, ok := deps.Services.Storage.(*service.LocalStorage); ok {
		opts.UploadDir = local.Dir()
		opts.UploadURL = local.URLPrefix()
	}

	router.InitRoutes(r, deps.Controllers, opts)
	return r
}

// startServer 启动服务
func startServer(r *gin.Engine, deps *Dependencies) {
	log := deps.Log
	port := deps.Config.Server.Port

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// 异步启动服务
	go func() {
		log.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("正在关闭服务...")

	ctx, cancel := context.WithTimeout(context.Background(), deps.Config.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("服务强制关闭", zap.Error(err))
	}

	// 已排队的通知发送完再退出
	deps.Services.Notify.Close()
	if deps.Tasks != nil {
		deps.Tasks.SessionSweep.Stop()
	}
	if err := deps.Store.Close(); err != nil {
		log.Error("关闭存储失败", zap.Error(err))
	}

	log.Info("服务已退出")
}

// ==================== 工具函数 ====================

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}
