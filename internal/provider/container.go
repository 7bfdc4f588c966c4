package provider

import (
	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/models"
	"github.com/storefront-next/internal/queue"
	"github.com/storefront-next/internal/repository"
	"github.com/storefront-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository

	// Services
	AuthzService       *authz.Service
	AccountGuard       *service.AccountGuard
	UserAuthService    *service.UserAuthService
	CartService        *service.CartService
	OrderService       *service.OrderService
	OrderStatusMachine *service.OrderStatusMachine
	ReconcileService   *service.ReconcileService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端；未启用时返回禁用状态的客户端，合并任务回退为进程内执行
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.AccountGuard = service.NewAccountGuard(c.UserRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.CartService = service.NewCartService(c.AccountGuard, c.CartRepo, c.ProductRepo, c.Config.Cart.MaxQuantityPerLine)
	c.OrderStatusMachine = service.NewOrderStatusMachine(c.AccountGuard, c.OrderRepo, c.AuthzService)
	c.OrderService = service.NewOrderService(c.AccountGuard, c.CartService, c.CartRepo, c.OrderRepo, c.OrderStatusMachine)
	c.ReconcileService = service.NewReconcileService(c.Config.Reconcile, c.AccountGuard, c.CartService, c.QueueClient)
}

// Close 释放外部连接，等待进程内的合并任务结束
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.ReconcileService != nil {
		c.ReconcileService.Wait()
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
