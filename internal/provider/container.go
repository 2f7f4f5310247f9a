package provider

import (
	"github.com/tripnest/internal/cache"
	"github.com/tripnest/internal/config"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/queue"
	"github.com/tripnest/internal/repository"
	"github.com/tripnest/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	CategoryRepo         repository.CategoryRepository
	TourRepo             repository.TourRepository
	TourLeaderRepo       repository.TourLeaderRepository
	ExpertRepo           repository.ExpertRepository
	BookingRepo          repository.BookingRepository
	ConsultationCodeRepo repository.ConsultationCodeRepository
	NewsletterRepo       repository.NewsletterRepository
	InquiryRepo          repository.InquiryRepository

	// Services
	EmailService            *service.EmailService
	CaptchaService          *service.CaptchaService
	CategoryService         *service.CategoryService
	TourService             *service.TourService
	TourLeaderService       *service.TourLeaderService
	ExpertService           *service.ExpertService
	ConsultationCodeService *service.ConsultationCodeService
	BookingService          *service.BookingService
	NewsletterService       *service.NewsletterService
	InquiryService          *service.InquiryService
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TourRepo = repository.NewTourRepository(db)
	c.TourLeaderRepo = repository.NewTourLeaderRepository(db)
	c.ExpertRepo = repository.NewExpertRepository(db)
	c.BookingRepo = repository.NewBookingRepository(db)
	c.ConsultationCodeRepo = repository.NewConsultationCodeRepository(db)
	c.NewsletterRepo = repository.NewNewsletterRepository(db)
	c.InquiryRepo = repository.NewInquiryRepository(db)
}

func (c *Container) initServices() {
	currency := c.Config.Booking.Currency

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.TourService = service.NewTourService(c.TourRepo, c.CategoryRepo, c.TourLeaderRepo, currency)
	c.TourLeaderService = service.NewTourLeaderService(c.TourLeaderRepo)
	c.ExpertService = service.NewExpertService(c.ExpertRepo, currency)
	c.ConsultationCodeService = service.NewConsultationCodeService(c.ConsultationCodeRepo, c.Config.Consultation)
	c.BookingService = service.NewBookingService(c.BookingRepo, c.TourRepo, c.ExpertRepo, c.ConsultationCodeService, c.QueueClient, c.Config.Booking)
	c.NewsletterService = service.NewNewsletterService(c.NewsletterRepo, c.QueueClient)
	c.InquiryService = service.NewInquiryService(c.InquiryRepo, c.QueueClient)
}
