package validators

import (
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	minPhoneDigits = 8
	maxPhoneDigits = 15
)

// NormalizePhone mantém só os dígitos ASCII: "(11) 99999-0000" e
// "11999990000" identificam o mesmo voluntário.
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func IsPhoneValid(phone string) bool {
	n := len(NormalizePhone(phone))
	return n >= minPhoneDigits && n <= maxPhoneDigits
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsPhoneValid(fl.Field().String())
}

// RegisterGin registra a tag `phone` no validador usado pelo binding do gin.
func RegisterGin() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("phone", validatePhone)
}
