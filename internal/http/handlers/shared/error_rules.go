package shared

import (
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/service"
)

// CommonErrorRules 通用业务错误映射
var CommonErrorRules = []MappedError{
	{Target: service.ErrInvalidEmail, Code: response.CodeBadRequest, Key: "error.email_invalid"},
	{Target: service.ErrSlugExists, Code: response.CodeConflict, Key: "error.slug_exists"},
	{Target: service.ErrExportFormat, Code: response.CodeBadRequest, Key: "error.export_format_invalid"},
	{Target: service.ErrCaptchaRequired, Code: response.CodeBadRequest, Key: "error.captcha_required"},
	{Target: service.ErrCaptchaInvalid, Code: response.CodeBadRequest, Key: "error.captcha_invalid"},
	{Target: service.ErrCaptchaConfigInvalid, Code: response.CodeUnavailable, Key: "error.captcha_unavailable"},
}

// CatalogErrorRules 目录类错误映射
var CatalogErrorRules = []MappedError{
	{Target: service.ErrCategoryInvalid, Code: response.CodeBadRequest, Key: "error.category_invalid"},
	{Target: service.ErrCategoryNotFound, Code: response.CodeNotFound, Key: "error.category_not_found"},
	{Target: service.ErrCategoryInUse, Code: response.CodeConflict, Key: "error.category_in_use"},
	{Target: service.ErrTourInvalid, Code: response.CodeBadRequest, Key: "error.tour_invalid"},
	{Target: service.ErrTourNotFound, Code: response.CodeNotFound, Key: "error.tour_not_found"},
	{Target: service.ErrTourUnavailable, Code: response.CodeUnprocessable, Key: "error.tour_unavailable"},
	{Target: service.ErrTourLeaderInvalid, Code: response.CodeBadRequest, Key: "error.tour_leader_invalid"},
	{Target: service.ErrTourLeaderNotFound, Code: response.CodeNotFound, Key: "error.tour_leader_not_found"},
	{Target: service.ErrExpertInvalid, Code: response.CodeBadRequest, Key: "error.expert_invalid"},
	{Target: service.ErrExpertNotFound, Code: response.CodeNotFound, Key: "error.expert_not_found"},
	{Target: service.ErrExpertUnavailable, Code: response.CodeUnprocessable, Key: "error.expert_unavailable"},
}

// ConsultationCodeErrorRules 咨询码错误映射
var ConsultationCodeErrorRules = []MappedError{
	{Target: service.ErrConsultationCodeInvalid, Code: response.CodeBadRequest, Key: "error.consultation_code_invalid"},
	{Target: service.ErrConsultationCodeFormatInvalid, Code: response.CodeBadRequest, Key: "error.consultation_code_format_invalid"},
	{Target: service.ErrConsultationCodeNotFound, Code: response.CodeNotFound, Key: "error.consultation_code_not_found"},
	{Target: service.ErrConsultationCodeExists, Code: response.CodeConflict, Key: "error.consultation_code_exists"},
	{Target: service.ErrConsultationCodeBulkCount, Code: response.CodeBadRequest, Key: "error.consultation_code_bulk_count_invalid"},
	{Target: service.ErrConsultationCodeStatusInvalid, Code: response.CodeBadRequest, Key: "error.consultation_code_status_invalid"},
	{Target: service.ErrConsultationCodeUnavailable, Code: response.CodeConflict, Key: "error.consultation_code_unavailable"},
	{Target: service.ErrConsultationCodeGenerateFailed, Code: response.CodeInternal, Key: "error.consultation_code_generate_failed"},
}

// BookingErrorRules 预订错误映射
var BookingErrorRules = []MappedError{
	{Target: service.ErrBookingInvalid, Code: response.CodeBadRequest, Key: "error.booking_invalid"},
	{Target: service.ErrBookingNotFound, Code: response.CodeNotFound, Key: "error.booking_not_found"},
	{Target: service.ErrBookingStatusInvalid, Code: response.CodeConflict, Key: "error.booking_status_invalid"},
	{Target: service.ErrBookingTravelersInvalid, Code: response.CodeBadRequest, Key: "error.booking_travelers_invalid"},
}

// EngagementErrorRules 订阅与留言错误映射
var EngagementErrorRules = []MappedError{
	{Target: service.ErrNewsletterTokenInvalid, Code: response.CodeBadRequest, Key: "error.newsletter_token_invalid"},
	{Target: service.ErrInquiryInvalid, Code: response.CodeBadRequest, Key: "error.inquiry_invalid"},
	{Target: service.ErrInquiryNotFound, Code: response.CodeNotFound, Key: "error.inquiry_not_found"},
	{Target: service.ErrInquiryStatusInvalid, Code: response.CodeBadRequest, Key: "error.inquiry_status_invalid"},
}

// AllErrorRules 全部业务错误映射
var AllErrorRules = ConcatMappedErrors(
	CommonErrorRules,
	CatalogErrorRules,
	ConsultationCodeErrorRules,
	BookingErrorRules,
	EngagementErrorRules,
)
