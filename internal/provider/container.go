package provider

import (
	"time"

	"github.com/ebookstore-next/internal/authz"
	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/config"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/metrics"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/queue"
	"github.com/ebookstore-next/internal/repository"
	"github.com/ebookstore-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Metrics     *metrics.Metrics

	// Repositories
	UserRepo      repository.UserRepository
	BookRepo      repository.BookRepository
	CategoryRepo  repository.CategoryRepository
	OrderRepo     repository.OrderRepository
	FavoriteRepo  repository.FavoriteRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthzService     *authz.Service
	UserAuthService  *service.UserAuthService
	BookService      *service.BookService
	CategoryService  *service.CategoryService
	OrderService     *service.OrderService
	FavoriteService  *service.FavoriteService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.NewDefault()
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Metrics:     m,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

// Close 释放外部连接
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	return cache.Close()
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.BookRepo = repository.NewBookRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.FavoriteRepo = repository.NewFavoriteRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.SeedRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	categoryTTL := time.Duration(c.Config.Catalog.CategoryCacheSeconds) * time.Second
	dashboardTTL := time.Duration(c.Config.Catalog.DashboardCacheSeconds) * time.Second

	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.BookService = service.NewBookService(c.BookRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo, c.BookRepo, categoryTTL)
	c.OrderService = service.NewOrderService(models.DB, c.OrderRepo, c.BookRepo, c.UserRepo, c.QueueClient, c.Config.Order.PendingExpireMinutes)
	c.FavoriteService = service.NewFavoriteService(c.FavoriteRepo, c.BookRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, dashboardTTL)
}
