package public

import (
	"strings"

	"github.com/tripnest/internal/constants"
	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscribeNewsletterRequest 订阅请求
type SubscribeNewsletterRequest struct {
	Email   string                              `json:"email" binding:"required,max=255"`
	Source  string                              `json:"source" binding:"max=60"`
	Captcha handlershared.CaptchaPayloadRequest `json:"captcha"`
}

// UnsubscribeNewsletterRequest 退订请求
type UnsubscribeNewsletterRequest struct {
	Token string `json:"token" binding:"required"`
}

// SubscribeNewsletter 订阅邮件通讯
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req SubscribeNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.CaptchaService.Verify(constants.CaptchaSceneNewsletter, req.Captcha.ToServicePayload()); err != nil {
		respondMappedError(c, err, response.CodeBadRequest, "error.captcha_invalid")
		return
	}
	subscriber, created, err := h.NewsletterService.Subscribe(service.SubscribeInput{
		Email:  req.Email,
		Locale: i18n.ResolveLocale(c),
		Source: strings.TrimSpace(req.Source),
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.newsletter_subscribe_failed")
		return
	}
	response.Success(c, gin.H{
		"email":   subscriber.Email,
		"status":  subscriber.Status,
		"created": created,
	})
}

// UnsubscribeNewsletter 退订邮件通讯
func (h *Handler) UnsubscribeNewsletter(c *gin.Context) {
	var req UnsubscribeNewsletterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	if err := h.NewsletterService.Unsubscribe(req.Token); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.newsletter_subscribe_failed")
		return
	}
	response.Success(c, gin.H{"unsubscribed": true})
}
