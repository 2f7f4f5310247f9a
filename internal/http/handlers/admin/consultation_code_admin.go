package admin

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateConsultationCodeRequest 生成候选咨询码请求
type GenerateConsultationCodeRequest struct {
	Prefix string `json:"prefix" binding:"omitempty,len=2,alpha"`
}

// CreateConsultationCodeRequest 创建咨询码请求
type CreateConsultationCodeRequest struct {
	Code        string  `json:"code" binding:"omitempty,consultation_code"`
	Prefix      string  `json:"prefix" binding:"omitempty,len=2,alpha"`
	Description *string `json:"description"`
	MaxUses     *int    `json:"max_uses"`
	ExpiresAt   string  `json:"expires_at"`
	CreatedBy   *string `json:"created_by"`
}

// BulkGenerateConsultationCodesRequest 批量生成咨询码请求
type BulkGenerateConsultationCodesRequest struct {
	Count       int     `json:"count" binding:"required"`
	Prefix      string  `json:"prefix" binding:"omitempty,len=2,alpha"`
	Description *string `json:"description"`
	MaxUses     *int    `json:"max_uses"`
	ExpiresAt   string  `json:"expires_at"`
	CreatedBy   *string `json:"created_by"`
}

// UpdateConsultationCodeRequest 更新咨询码请求
type UpdateConsultationCodeRequest struct {
	Description    *string `json:"description"`
	MaxUses        *int    `json:"max_uses"`
	ClearMaxUses   bool    `json:"clear_max_uses"`
	ExpiresAt      string  `json:"expires_at"`
	ClearExpiresAt bool    `json:"clear_expires_at"`
	Status         *string `json:"status"`
}

// ExportConsultationCodesRequest 导出咨询码请求，ids 为空时按筛选条件导出
type ExportConsultationCodesRequest struct {
	IDs         []string `json:"ids"`
	Format      string   `json:"format" binding:"required"`
	Code        string   `json:"code"`
	Status      string   `json:"status"`
	CreatedFrom string   `json:"created_from"`
	CreatedTo   string   `json:"created_to"`
}

// ValidateConsultationCodeRequest 后台预览校验请求
type ValidateConsultationCodeRequest struct {
	Code string `json:"code"`
}

// GenerateConsultationCode 生成一个未入库的候选咨询码
func (h *Handler) GenerateConsultationCode(c *gin.Context) {
	var req GenerateConsultationCodeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	code, err := h.ConsultationCodeService.GenerateCode(req.Prefix)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_generate_failed")
		return
	}
	response.Success(c, gin.H{"code": code})
}

// CreateConsultationCode 创建咨询码
func (h *Handler) CreateConsultationCode(c *gin.Context) {
	var req CreateConsultationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	row, err := h.ConsultationCodeService.Create(service.CreateConsultationCodeInput{
		Code:        req.Code,
		Prefix:      req.Prefix,
		Description: req.Description,
		MaxUses:     req.MaxUses,
		ExpiresAt:   expiresAt,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_create_failed")
		return
	}
	response.Success(c, row)
}

// BulkGenerateConsultationCodes 批量生成咨询码
func (h *Handler) BulkGenerateConsultationCodes(c *gin.Context) {
	var req BulkGenerateConsultationCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	rows, err := h.ConsultationCodeService.BulkGenerate(service.BulkGenerateInput{
		Count:       req.Count,
		Prefix:      req.Prefix,
		Description: req.Description,
		MaxUses:     req.MaxUses,
		ExpiresAt:   expiresAt,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_create_failed")
		return
	}
	requestLog(c).Infow("admin_consultation_code_bulk_generated", "count", len(rows))
	response.Success(c, gin.H{
		"count": len(rows),
		"codes": rows,
	})
}

// GetConsultationCodes 获取咨询码列表
func (h *Handler) GetConsultationCodes(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)
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
	rows, total, err := h.ConsultationCodeService.List(service.ConsultationCodeListInput{
		Code:        strings.TrimSpace(c.Query("code")),
		Status:      c.Query("status"),
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_fetch_failed")
		return
	}
	response.SuccessWithPage(c, rows, response.NewPagination(page, pageSize, total))
}

// GetConsultationCode 获取咨询码详情
func (h *Handler) GetConsultationCode(c *gin.Context) {
	row, err := h.ConsultationCodeService.Get(strings.TrimSpace(c.Param("id")))
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_fetch_failed")
		return
	}
	response.Success(c, row)
}

// UpdateConsultationCode 更新咨询码
func (h *Handler) UpdateConsultationCode(c *gin.Context) {
	var req UpdateConsultationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	expiresAt, err := parseTimeNullable(req.ExpiresAt)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	row, err := h.ConsultationCodeService.Update(strings.TrimSpace(c.Param("id")), service.UpdateConsultationCodeInput{
		Description:    req.Description,
		MaxUses:        req.MaxUses,
		ClearMaxUses:   req.ClearMaxUses,
		ExpiresAt:      expiresAt,
		ClearExpiresAt: req.ClearExpiresAt,
		Status:         req.Status,
	})
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_update_failed")
		return
	}
	response.Success(c, row)
}

// DeleteConsultationCode 删除咨询码
func (h *Handler) DeleteConsultationCode(c *gin.Context) {
	if err := h.ConsultationCodeService.Delete(strings.TrimSpace(c.Param("id"))); err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_delete_failed")
		return
	}
	response.Success(c, gin.H{"deleted": true})
}

// GetConsultationCodeStats 咨询码状态统计
func (h *Handler) GetConsultationCodeStats(c *gin.Context) {
	stats, err := h.ConsultationCodeService.Stats()
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_fetch_failed")
		return
	}
	response.Success(c, stats)
}

// ExportConsultationCodes 导出咨询码
func (h *Handler) ExportConsultationCodes(c *gin.Context) {
	var req ExportConsultationCodesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdFrom, err := parseTimeNullable(req.CreatedFrom)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	createdTo, err := parseTimeNullable(req.CreatedTo)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	content, contentType, err := h.ConsultationCodeService.Export(req.IDs, service.ConsultationCodeListInput{
		Code:        req.Code,
		Status:      req.Status,
		CreatedFrom: createdFrom,
		CreatedTo:   createdTo,
	}, req.Format)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_fetch_failed")
		return
	}
	filename := fmt.Sprintf("consultation_codes_%s.%s", time.Now().Format("20060102_150405"), strings.ToLower(strings.TrimSpace(req.Format)))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	c.Data(http.StatusOK, contentType, content)
}

// ValidateConsultationCode 后台预览校验结果，不消耗使用次数
func (h *Handler) ValidateConsultationCode(c *gin.Context) {
	var req ValidateConsultationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.ConsultationCodeService.Validate(req.Code)
	if err != nil {
		respondMappedError(c, err, response.CodeInternal, "error.consultation_code_fetch_failed")
		return
	}
	response.Success(c, handlershared.NewConsultationValidationView(i18n.ResolveLocale(c), result))
}
