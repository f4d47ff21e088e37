package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"invoice-review-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest runs the struct tags of a request DTO and folds failures
// into a single validation error.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		fields := make([]string, 0, len(errs))
		for _, fe := range errs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return apperrors.NewValidation("invalid request: %s", strings.Join(fields, ", "))
	}
	return apperrors.NewValidation("invalid request: %s", err.Error())
}
