package serverutils

import (
	"notevault-be/internal/apperror"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs struct-tag validation and converts failures into the
// validation error class so the error handler maps them uniformly.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			f := errs[0]
			return apperror.Validationf("field %s failed on %s", f.Field(), f.Tag())
		}
		return apperror.Validationf("%v", err)
	}
	return nil
}
