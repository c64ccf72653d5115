package area

import (
	"strings"

	"github.com/BruksfildServices01/escala-voluntarios/internal/httperr"
)

// Validate aplica os invariantes de cadastro de área.
func Validate(name string, maxPeople int) error {
	if strings.TrimSpace(name) == "" || maxPeople < 0 {
		return httperr.ErrBusiness(httperr.CodeInvalidRequest)
	}
	return nil
}
