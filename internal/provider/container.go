package provider

import (
	"github.com/shupin-market/internal/blob"
	"github.com/shupin-market/internal/cache"
	"github.com/shupin-market/internal/config"
	"github.com/shupin-market/internal/logger"
	"github.com/shupin-market/internal/models"
	"github.com/shupin-market/internal/oracle"
	"github.com/shupin-market/internal/queue"
	"github.com/shupin-market/internal/repository"
	"github.com/shupin-market/internal/search"
	"github.com/shupin-market/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Gateways
	Blob  blob.Gateway
	Index search.Index

	// Repositories
	UserRepo     repository.UserRepository
	StoreRepo    repository.StoreRepository
	CategoryRepo repository.CategoryRepository
	ProductRepo  repository.ProductRepository
	ReviewRepo   repository.ReviewRepository

	// Services
	UserAuthService  *service.UserAuthService
	StoreService     *service.StoreService
	CategoryService  *service.CategoryService
	ProductService   *service.ProductService
	ReviewService    *service.ReviewService
	AssetService     *service.AssetService
	CategoryResolver *service.CategoryResolver
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

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化外部网关
	c.initGateways()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initGateways() {
	if c.Config.Storage.Enabled {
		gateway, err := blob.NewS3Gateway(&c.Config.Storage)
		if err != nil {
			logger.Errorw("provider_init_blob_failed", "error", err)
		} else {
			c.Blob = gateway
		}
	}
	if c.Config.Search.Enabled {
		index, err := search.NewAlgoliaIndex(&c.Config.Search)
		if err != nil {
			logger.Errorw("provider_init_search_failed", "error", err)
		} else {
			c.Index = index
		}
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.StoreRepo = repository.NewStoreRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices() {
	var completer oracle.Completer
	if c.Config.Oracle.Enabled {
		client, err := oracle.NewGroqClient(&c.Config.Oracle)
		if err != nil {
			logger.Errorw("provider_init_oracle_failed", "error", err)
		} else {
			completer = client
		}
	}

	c.AssetService = service.NewAssetService(c.Blob, &c.Config.Upload)
	c.CategoryResolver = service.NewCategoryResolver(c.CategoryRepo, completer)
	c.UserAuthService = service.NewUserAuthService(c.UserRepo, &c.Config.JWT)
	c.StoreService = service.NewStoreService(c.StoreRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.StoreRepo, c.CategoryRepo, c.AssetService, c.CategoryResolver, c.Index, c.QueueClient)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo)
}
