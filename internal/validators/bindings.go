package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
)

// RegisterBindings adds the date and clock tags to gin's validator:
//
//	Date string `binding:"required,ymd"`
//	Time string `binding:"omitempty,hhmm"`
func RegisterBindings() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return Register(v)
}

func Register(v *validator.Validate) error {
	if err := v.RegisterValidation("ymd", isDate); err != nil {
		return err
	}
	return v.RegisterValidation("hhmm", isClock)
}

func isDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func isClock(fl validator.FieldLevel) bool {
	_, err := domain.ParseClock(fl.Field().String())
	return err == nil
}
