package service

import "errors"

// 通用错误
var (
	ErrInvalidEmail      = errors.New("invalid email")
	ErrSlugExists        = errors.New("slug already exists")
	ErrExportFormat      = errors.New("unsupported export format")
	ErrQueueUnavailable  = errors.New("queue unavailable")
	ErrNotificationInput = errors.New("invalid notification input")
)

// 咨询码错误
var (
	ErrConsultationCodeInvalid        = errors.New("consultation code invalid")
	ErrConsultationCodeFormatInvalid  = errors.New("consultation code format invalid")
	ErrConsultationCodeNotFound       = errors.New("consultation code not found")
	ErrConsultationCodeExists         = errors.New("consultation code already exists")
	ErrConsultationCodeFetchFailed    = errors.New("consultation code fetch failed")
	ErrConsultationCodeCreateFailed   = errors.New("consultation code create failed")
	ErrConsultationCodeUpdateFailed   = errors.New("consultation code update failed")
	ErrConsultationCodeDeleteFailed   = errors.New("consultation code delete failed")
	ErrConsultationCodeGenerateFailed = errors.New("consultation code generate failed")
	ErrConsultationCodeBulkCount      = errors.New("consultation code bulk count invalid")
	ErrConsultationCodeStatusInvalid  = errors.New("consultation code status invalid")
	ErrConsultationCodeUnavailable    = errors.New("consultation code unavailable")
)

// 目录错误
var (
	ErrCategoryInvalid    = errors.New("category invalid")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryInUse      = errors.New("category in use")
	ErrTourInvalid        = errors.New("tour invalid")
	ErrTourNotFound       = errors.New("tour not found")
	ErrTourUnavailable    = errors.New("tour unavailable")
	ErrTourLeaderInvalid  = errors.New("tour leader invalid")
	ErrTourLeaderNotFound = errors.New("tour leader not found")
	ErrExpertInvalid      = errors.New("expert invalid")
	ErrExpertNotFound     = errors.New("expert not found")
	ErrExpertUnavailable  = errors.New("expert unavailable")
)

// 预订错误
var (
	ErrBookingInvalid          = errors.New("booking invalid")
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingStatusInvalid    = errors.New("booking status transition invalid")
	ErrBookingTravelersInvalid = errors.New("booking travelers invalid")
	ErrBookingCreateFailed     = errors.New("booking create failed")
	ErrBookingUpdateFailed     = errors.New("booking update failed")
	ErrBookingFetchFailed      = errors.New("booking fetch failed")
)

// ConsultationCodeRejectedError 预订时咨询码校验未通过，携带原因
type ConsultationCodeRejectedError struct {
	Reason     string
	ReasonCode string
	Err        error
}

func (e *ConsultationCodeRejectedError) Error() string {
	return "consultation code rejected: " + e.Reason
}

func (e *ConsultationCodeRejectedError) Unwrap() error {
	return e.Err
}

// 订阅与留言错误
var (
	ErrNewsletterTokenInvalid = errors.New("newsletter token invalid")
	ErrInquiryInvalid         = errors.New("inquiry invalid")
	ErrInquiryNotFound        = errors.New("inquiry not found")
	ErrInquiryStatusInvalid   = errors.New("inquiry status invalid")
)

// 验证码错误
var (
	ErrCaptchaRequired      = errors.New("captcha required")
	ErrCaptchaInvalid       = errors.New("captcha invalid")
	ErrCaptchaConfigInvalid = errors.New("captcha config invalid")
)

// 邮件错误
var (
	ErrEmailServiceDisabled      = errors.New("email service disabled")
	ErrEmailServiceNotConfigured = errors.New("email service not configured")
	ErrEmailRecipientRejected    = errors.New("email recipient rejected")
)
