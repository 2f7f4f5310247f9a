package public

import (
	"github.com/tripnest/internal/constants"
	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateInquiryRequest 提交留言请求
type CreateInquiryRequest struct {
	Name     string                              `json:"name" binding:"required,max=120"`
	Email    string                              `json:"email" binding:"required,max=255"`
	Phone    string                              `json:"phone" binding:"max=50"`
	Subject  string                              `json:"subject" binding:"max=200"`
	Message  string                              `json:"message" binding:"required"`
	TourID   *uint                               `json:"tour_id"`
	ExpertID *uint                               `json:"expert_id"`
	Captcha  handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// CreateInquiry 提交留言
func (h *Handler) CreateInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneInquiry, req.Captcha.ToServicePayload()); err != nil {
		respondMappedError(c, err, response.CodeBadRequest, "error.captcha_invalid")
		return
	}
	inquiry, err := h.InquiryService.Create(service.CreateInquiryInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Subject:  req.Subject,
		Message:  req.Message,
		TourID:   req.TourID,
		ExpertID: req.ExpertID,
		Locale:   i18n.ResolveLocale(c),
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.inquiry_create_failed")
		return
	}
	response.Success(c, gin.H{"id": inquiry.ID, "status": inquiry.Status})
}
