package constants

// 咨询码状态常量
const (
	ConsultationCodeStatusActive   = "active"
	ConsultationCodeStatusInactive = "inactive"
	ConsultationCodeStatusExpired  = "expired"
)

// 咨询码默认参数
const (
	ConsultationCodeDefaultPrefix      = "TC"
	ConsultationCodeGenerateMaxAttempt = 20
	ConsultationCodeBulkMaxCount       = 500
)

// 线路状态常量
const (
	TourStatusDraft     = "draft"
	TourStatusPublished = "published"
)

// 预订类型常量
const (
	BookingTypeTour         = "tour"
	BookingTypeConsultation = "consultation"
)

// 预订状态常量
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCanceled  = "canceled"
	BookingStatusCompleted = "completed"
)

// 订阅状态常量
const (
	SubscriberStatusSubscribed   = "subscribed"
	SubscriberStatusUnsubscribed = "unsubscribed"
)

// 咨询留言状态常量
const (
	InquiryStatusNew     = "new"
	InquiryStatusReplied = "replied"
	InquiryStatusClosed  = "closed"
)

// 站点默认参数
const (
	SiteCurrencyDefault = "USD"
	BookingNoPrefix     = "BK"
)

// 验证码场景常量
const (
	CaptchaSceneInquiry    = "inquiry"
	CaptchaSceneNewsletter = "newsletter"
)

// 验证码提供方常量
const (
	CaptchaProviderNone  = "none"
	CaptchaProviderImage = "image"
)

// 异步队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型常量
const (
	TaskBookingConfirmationEmail = "booking:confirmation_email"
	TaskNewsletterWelcomeEmail   = "newsletter:welcome_email"
	TaskInquiryNotification      = "inquiry:notification"
)
