package public

import (
	"errors"
	"io"

	handlershared "github.com/tripnest/internal/http/handlers/shared"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"

	"github.com/gin-gonic/gin"
)

// ValidateConsultationCodeRequest 咨询码校验请求
type ValidateConsultationCodeRequest struct {
	Code string `json:"code"`
}

// ValidateConsultationCode 校验咨询码是否可用，不消耗使用次数
// 校验未通过属于正常结果，通过 data.valid=false 返回；空请求体按未填写处理
func (h *Handler) ValidateConsultationCode(c *gin.Context) {
	var req ValidateConsultationCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
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
