package admin

import (
	"strings"

	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/repository"

	"github.com/gin-gonic/gin"
)

// BookingStatusRequest 预订状态变更请求
type BookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetAdminBookings 获取预订列表
func (h *Handler) GetAdminBookings(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	tourID, ok := handlershared.ParseOptionalUintQuery(c, "tour_id")
	if !ok {
		return
	}
	expertID, ok := handlershared.ParseOptionalUintQuery(c, "expert_id")
	if !ok {
		return
	}
	createdFrom, err := parseTimeNullable(c.Query("created_from"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(c.Query("created_to"))
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}

	bookings, total, err := h.BookingService.List(repository.BookingListFilter{
		Page:          page,
		PageSize:      pageSize,
		Type:          c.Query("type"),
		Status:        c.Query("status"),
		BookingNo:     strings.TrimSpace(c.Query("booking_no")),
		CustomerEmail: strings.TrimSpace(c.Query("email")),
		TourID:        tourID,
		ExpertID:      expertID,
		CreatedFrom:   createdFrom,
		CreatedTo:     createdTo,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.booking_fetch_failed")
		return
	}
	response.SuccessWithPage(c, bookings, response.NewPagination(page, pageSize, total))
}

// GetAdminBooking 获取预订详情
func (h *Handler) GetAdminBooking(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	booking, err := h.BookingService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.booking_fetch_failed")
		return
	}
	response.Success(c, booking)
}

// UpdateBookingStatus 更新预订状态
func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req BookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	booking, err := h.BookingService.UpdateStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.booking_update_failed")
		return
	}
	response.Success(c, booking)
}
