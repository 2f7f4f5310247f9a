package shared

import (
	"sync"

	"github.com/tripnest/internal/service"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerValidatorsOnce sync.Once

// RegisterValidators 注册自定义 binding 校验标签，可重复调用
func RegisterValidators() {
	registerValidatorsOnce.Do(func() {
		engine, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = engine.RegisterValidation("consultation_code", func(fl validator.FieldLevel) bool {
			return service.MatchesConsultationCodeFormat(service.NormalizeConsultationCode(fl.Field().String()))
		})
	})
}
