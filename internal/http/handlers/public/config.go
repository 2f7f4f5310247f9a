package public

import (
	"time"

	"github.com/tripnest/internal/cache"
	"github.com/tripnest/internal/http/response"
	"github.com/tripnest/internal/i18n"
	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin"
)

// PublicConfigView 前台站点配置
type PublicConfigView struct {
	Languages    []string                 `json:"languages"`
	Currency     string                   `json:"currency"`
	MaxTravelers int                      `json:"max_travelers"`
	Captcha      interface{}              `json:"captcha"`
	Consultation PublicConsultationConfig `json:"consultation"`
}

// PublicConsultationConfig 咨询码格式说明
type PublicConsultationConfig struct {
	CodePattern string `json:"code_pattern"`
	Free        bool   `json:"free"`
}

// GetConfig 获取前台配置
func (h *Handler) GetConfig(c *gin.Context) {
	data, err := cache.Remember(c.Request.Context(), cache.PublicKey("config"), h.publicTTL(), func() (PublicConfigView, error) {
		return PublicConfigView{
			Languages:    []string{i18n.LocaleZH, i18n.LocaleTW, i18n.LocaleEN},
			Currency:     h.Config.Booking.Currency,
			MaxTravelers: h.Config.Booking.MaxTravelers,
			Captcha:      h.CaptchaService.PublicSetting(),
			Consultation: PublicConsultationConfig{
				CodePattern: service.ConsultationCodePattern,
				Free:        h.Config.Booking.ConsultationFree,
			},
		}, nil
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.config_fetch_failed", err)
		return
	}
	response.Success(c, data)
}

func (h *Handler) publicTTL() time.Duration {
	if h.Config == nil || h.Config.Cache.PublicTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(h.Config.Cache.PublicTTLSeconds) * time.Second
}
