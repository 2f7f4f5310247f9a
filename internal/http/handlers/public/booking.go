package public

import (
	"errors"
	"strings"

	"github.com/tripnest/internal/constants"
	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/models"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateBookingRequest 创建预订请求
// type=tour 时需要 tour_id/travelers，type=consultation 时需要 expert_id/code
type CreateBookingRequest struct {
	Type          string `json:"type" binding:"required,oneof=tour consultation"`
	TourID        uint   `json:"tour_id"`
	Travelers     int    `json:"travelers"`
	TravelDate    string `json:"travel_date"`
	ExpertID      uint   `json:"expert_id"`
	Code          string `json:"code"`
	PreferredTime string `json:"preferred_time" binding:"max=120"`
	CustomerName  string `json:"customer_name" binding:"required,max=120"`
	CustomerEmail string `json:"customer_email" binding:"required,max=255"`
	CustomerPhone string `json:"customer_phone" binding:"max=50"`
	Notes         string `json:"notes" binding:"max=2000"`
}

// CreateBooking 创建线路预订或专家咨询预约
func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	locale := i18n.ResolveLocale(c)
	customer := service.BookingCustomerInput{
		Name:   req.CustomerName,
		Email:  req.CustomerEmail,
		Phone:  req.CustomerPhone,
		Notes:  req.Notes,
		Locale: locale,
	}

	var (
		booking *models.Booking
		err     error
	)
	switch req.Type {
	case constants.BookingTypeTour:
		travelDate, parseErr := parseDate(strings.TrimSpace(req.TravelDate))
		if parseErr != nil {
			respondError(c, response.CodeBadRequest, "error.booking_invalid", nil)
			return
		}
		booking, err = h.BookingService.CreateTourBooking(service.CreateTourBookingInput{
			TourID:     req.TourID,
			Travelers:  req.Travelers,
			TravelDate: travelDate,
			Customer:   customer,
		})
	default:
		booking, err = h.BookingService.CreateConsultationBooking(service.CreateConsultationBookingInput{
			ExpertID:      req.ExpertID,
			Code:          req.Code,
			PreferredTime: req.PreferredTime,
			Customer:      customer,
		})
	}
	if err != nil {
		var rejected *service.ConsultationCodeRejectedError
		if errors.As(err, &rejected) {
			response.ErrorWithData(c, response.CodeUnprocessable,
				handlershared.ConsultationReasonMessage(locale, rejected.ReasonCode, rejected.Reason),
				gin.H{"reason": rejected.Reason, "reason_code": rejected.ReasonCode},
			)
			return
		}
		respondMappedError(c, err, response.CodeInternal, "error.booking_create_failed")
		return
	}
	response.Success(c, booking)
}

// GetBooking 凭预订编号与联系邮箱查询预订
func (h *Handler) GetBooking(c *gin.Context) {
	bookingNo := strings.TrimSpace(c.Param("booking_no"))
	email := strings.TrimSpace(c.Query("email"))
	if bookingNo == "" || email == "" {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return
	}
	booking, err := h.BookingService.GetPublic(bookingNo, email)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.booking_fetch_failed")
		return
	}
	response.Success(c, booking)
}
