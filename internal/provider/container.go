package provider

import (
	"github.com/bonus-office/internal/authz"
	"github.com/bonus-office/internal/cache"
	"github.com/bonus-office/internal/config"
	"github.com/bonus-office/internal/logger"
	"github.com/bonus-office/internal/models"
	"github.com/bonus-office/internal/queue"
	"github.com/bonus-office/internal/repository"
	"github.com/bonus-office/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo            repository.AdminRepository
	BonusRepo            repository.BonusRepository
	RewardRepo           repository.RewardRepository
	BonusTemplateRepo    repository.BonusTemplateRepository
	MarketingRequestRepo repository.MarketingRequestRepository
	DslTagRepo           repository.DslTagRepository
	ProjectRepo          repository.ProjectRepository
	PermanentBonusRepo   repository.PermanentBonusRepository

	// Services
	AuthzService            *authz.Service
	AuthService             *service.AuthService
	BonusService            *service.BonusService
	RewardService           *service.RewardService
	BonusTemplateService    *service.BonusTemplateService
	MarketingRequestService *service.MarketingRequestService
	DslTagService           *service.DslTagService
	ProjectService          *service.ProjectService
	PermanentBonusService   *service.PermanentBonusService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

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

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.BonusRepo = repository.NewBonusRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
	c.BonusTemplateRepo = repository.NewBonusTemplateRepository(db)
	c.MarketingRequestRepo = repository.NewMarketingRequestRepository(db)
	c.DslTagRepo = repository.NewDslTagRepository(db)
	c.ProjectRepo = repository.NewProjectRepository(db)
	c.PermanentBonusRepo = repository.NewPermanentBonusRepository(db)
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

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.BonusService = service.NewBonusService(c.BonusRepo, c.RewardRepo, c.DslTagRepo)
	c.RewardService = service.NewRewardService(c.BonusRepo, c.RewardRepo)
	c.BonusTemplateService = service.NewBonusTemplateService(c.BonusTemplateRepo, c.BonusRepo, c.DslTagRepo)
	c.MarketingRequestService = service.NewMarketingRequestService(c.MarketingRequestRepo)
	c.DslTagService = service.NewDslTagService(c.DslTagRepo)
	c.ProjectService = service.NewProjectService(c.ProjectRepo)
	c.PermanentBonusService = service.NewPermanentBonusService(c.PermanentBonusRepo, c.BonusRepo, c.ProjectRepo)
}
