package shared

import (
	"time"

	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/service"
)

// ConsultationValidationView 咨询码校验结果响应
type ConsultationValidationView struct {
	Valid         bool       `json:"valid"`
	Reason        string     `json:"reason,omitempty"`
	ReasonCode    string     `json:"reason_code,omitempty"`
	Message       string     `json:"message"`
	Code          string     `json:"code,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	RemainingUses *int       `json:"remaining_uses,omitempty"`
}

// NewConsultationValidationView 构建校验结果视图，reason 保持原文，message 为本地化文案
func NewConsultationValidationView(locale string, result service.ConsultationCodeValidation) ConsultationValidationView {
	view := ConsultationValidationView{
		Valid:      result.Valid,
		Reason:     result.Reason,
		ReasonCode: result.ReasonCode,
	}
	if result.Valid {
		view.Message = i18n.T(locale, "consultation.reason.valid")
		if result.Code != nil {
			view.Code = result.Code.Code
			view.ExpiresAt = result.Code.ExpiresAt
			view.RemainingUses = result.Code.RemainingUses()
		}
		return view
	}
	view.Message = ConsultationReasonMessage(locale, result.ReasonCode, result.Reason)
	return view
}

// ConsultationReasonMessage 本地化拒绝原因，缺少文案时回退原文
func ConsultationReasonMessage(locale, reasonCode, reason string) string {
	key := "consultation.reason." + reasonCode
	if reasonCode == "" || !i18n.Has(key) {
		return reason
	}
	return i18n.T(locale, key)
}
