package router

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/tripnest/internal/cache"
	"github.com/tripnest/internal/config"
	adminhandlers "github.com/tripnest/internal/http/handlers/admin"
	publichandlers "github.com/tripnest/internal/http/handlers/public"
	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/logger"
	"github.com/tripnest/internal/provider"

	"github.com/gin-gonic/gin"
)

const healthPath = "/health"

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	handlershared.RegisterValidators()
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "tn"
	}
	redisClient := cache.Client()
	validateCodeRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:validate_code", redisPrefix),
		WindowSeconds: cfg.Security.ValidateCodeRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.ValidateCodeRateLimit.MaxRequests,
	}
	bookingRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:booking", redisPrefix),
		WindowSeconds: cfg.Security.PublicFormRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PublicFormRateLimit.MaxRequests,
	}
	newsletterRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:newsletter", redisPrefix),
		WindowSeconds: cfg.Security.PublicFormRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PublicFormRateLimit.MaxRequests,
	}
	inquiryRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:inquiry", redisPrefix),
		WindowSeconds: cfg.Security.PublicFormRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.PublicFormRateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/config", publicHandler.GetConfig)
			public.GET("/categories", publicHandler.GetCategories)
			public.GET("/tours", publicHandler.GetTours)
			public.GET("/tours/:slug", publicHandler.GetTour)
			public.GET("/experts", publicHandler.GetExperts)
			public.GET("/experts/:slug", publicHandler.GetExpert)
			public.GET("/tour-leaders/:slug", publicHandler.GetTourLeader)
			public.GET("/captcha/image", publicHandler.GetImageCaptcha)
			public.POST("/consultation-codes/validate", RateLimitMiddleware(redisClient, validateCodeRule, KeyByIP), publicHandler.ValidateConsultationCode)
			public.POST("/bookings", RateLimitMiddleware(redisClient, bookingRule, KeyByIP), publicHandler.CreateBooking)
			public.GET("/bookings/:booking_no", publicHandler.GetBooking)
			public.POST("/newsletter/subscribe", RateLimitMiddleware(redisClient, newsletterRule, KeyByIPAndJSONField("email")), publicHandler.SubscribeNewsletter)
			public.POST("/newsletter/unsubscribe", publicHandler.UnsubscribeNewsletter)
			public.POST("/inquiries", RateLimitMiddleware(redisClient, inquiryRule, KeyByIP), publicHandler.CreateInquiry)
		}

		// 管理端接口（鉴权由部署侧网关负责）
		admin := apiV1.Group("/admin")
		{
			admin.GET("/categories", adminHandler.GetAdminCategories)
			admin.POST("/categories", adminHandler.CreateCategory)
			admin.GET("/categories/:id", adminHandler.GetAdminCategory)
			admin.PUT("/categories/:id", adminHandler.UpdateCategory)
			admin.DELETE("/categories/:id", adminHandler.DeleteCategory)

			admin.GET("/tours", adminHandler.GetAdminTours)
			admin.POST("/tours", adminHandler.CreateTour)
			admin.GET("/tours/:id", adminHandler.GetAdminTour)
			admin.PUT("/tours/:id", adminHandler.UpdateTour)
			admin.PATCH("/tours/:id/status", adminHandler.UpdateTourStatus)
			admin.DELETE("/tours/:id", adminHandler.DeleteTour)

			admin.GET("/tour-leaders", adminHandler.GetAdminTourLeaders)
			admin.POST("/tour-leaders", adminHandler.CreateTourLeader)
			admin.GET("/tour-leaders/:id", adminHandler.GetAdminTourLeader)
			admin.PUT("/tour-leaders/:id", adminHandler.UpdateTourLeader)
			admin.DELETE("/tour-leaders/:id", adminHandler.DeleteTourLeader)

			admin.GET("/experts", adminHandler.GetAdminExperts)
			admin.POST("/experts", adminHandler.CreateExpert)
			admin.GET("/experts/:id", adminHandler.GetAdminExpert)
			admin.PUT("/experts/:id", adminHandler.UpdateExpert)
			admin.DELETE("/experts/:id", adminHandler.DeleteExpert)

			admin.GET("/bookings", adminHandler.GetAdminBookings)
			admin.GET("/bookings/:id", adminHandler.GetAdminBooking)
			admin.PATCH("/bookings/:id/status", adminHandler.UpdateBookingStatus)

			admin.GET("/consultation-codes", adminHandler.GetConsultationCodes)
			admin.POST("/consultation-codes", adminHandler.CreateConsultationCode)
			admin.POST("/consultation-codes/generate", adminHandler.GenerateConsultationCode)
			admin.POST("/consultation-codes/bulk", adminHandler.BulkGenerateConsultationCodes)
			admin.POST("/consultation-codes/export", adminHandler.ExportConsultationCodes)
			admin.POST("/consultation-codes/validate", adminHandler.ValidateConsultationCode)
			admin.GET("/consultation-codes/stats", adminHandler.GetConsultationCodeStats)
			admin.GET("/consultation-codes/:id", adminHandler.GetConsultationCode)
			admin.PUT("/consultation-codes/:id", adminHandler.UpdateConsultationCode)
			admin.DELETE("/consultation-codes/:id", adminHandler.DeleteConsultationCode)

			admin.GET("/newsletter/subscribers", adminHandler.GetNewsletterSubscribers)
			admin.GET("/newsletter/subscribers/export", adminHandler.ExportNewsletterSubscribers)

			admin.GET("/inquiries", adminHandler.GetInquiries)
			admin.GET("/inquiries/:id", adminHandler.GetInquiry)
			admin.PATCH("/inquiries/:id/status", adminHandler.UpdateInquiryStatus)
			admin.DELETE("/inquiries/:id", adminHandler.DeleteInquiry)
		}
	}

	// 健康检查
	r.GET(healthPath, func(c *gin.Context) {
		status := http.StatusOK
		redisStatus := "disabled"
		if cache.Enabled() {
			redisStatus = "ok"
			if err := cache.Ping(c.Request.Context()); err != nil {
				redisStatus = "unavailable"
				status = http.StatusServiceUnavailable
			}
		}
		c.JSON(status, gin.H{"status": "ok", "redis": redisStatus})
	})

	return r
}
