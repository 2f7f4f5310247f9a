package admin

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/repository"

	"github.com/gin-gonic/gin"
)

// InquiryStatusRequest 留言状态变更请求
type InquiryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func newsletterFilterFromQuery(c *gin.Context, page, pageSize int) repository.NewsletterListFilter {
	return repository.NewsletterListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	}
}

// GetNewsletterSubscribers 获取订阅者列表
func (h *Handler) GetNewsletterSubscribers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	subscribers, total, err := h.NewsletterService.List(newsletterFilterFromQuery(c, page, pageSize))
	if err != nil {
		respondError(c, response.CodeInternal, "error.newsletter_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, subscribers, response.NewPagination(page, pageSize, total))
}

// ExportNewsletterSubscribers 导出订阅者 CSV，忽略分页
func (h *Handler) ExportNewsletterSubscribers(c *gin.Context) {
	content, err := h.NewsletterService.ExportCSV(newsletterFilterFromQuery(c, 0, 0))
	if err != nil {
		respondError(c, response.CodeInternal, "error.newsletter_fetch_failed", err)
		return
	}
	contentType := "text/csv; charset=utf-8"
	filename := fmt.Sprintf("newsletter_subscribers_%s.csv", time.Now().Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, contentType, content)
}

// GetInquiries 获取留言列表
func (h *Handler) GetInquiries(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
	inquiries, total, err := h.InquiryService.List(repository.InquiryListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   strings.TrimSpace(c.Query("status")),
		Search:   strings.TrimSpace(c.Query("search")),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.inquiry_fetch_failed", err)
		return
	}
	response.SuccessWithPage(c, inquiries, response.NewPagination(page, pageSize, total))
}

// GetInquiry 获取留言详情
func (h *Handler) GetInquiry(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	inquiry, err := h.InquiryService.Get(id)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.inquiry_fetch_failed")
		return
	}
	response.Success(c, inquiry)
}

// UpdateInquiryStatus 更新留言处理状态
func (h *Handler) UpdateInquiryStatus(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	var req InquiryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	inquiry, err := h.InquiryService.UpdateStatus(id, req.Status)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.inquiry_update_failed")
		return
	}
	response.Success(c, inquiry)
}

// DeleteInquiry 删除留言
func (h *Handler) DeleteInquiry(c *gin.Context) {
	id, ok := handlershared.ParseUintParam(c, "id")
	if !ok {
		return
	}
	if err := h.InquiryService.Delete(id); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.inquiry_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}
