package service

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/vbonduro/spotshare/internal/domain"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateDistrict, domain.SpotInput{})
	return v
}

// validateDistrict rejects districts that do not belong to a known city.
func validateDistrict(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.SpotInput)
	if in.City == "" || in.District == "" {
		return
	}
	if !domain.ValidDistrict(in.City, in.District) {
		sl.ReportError(in.District, "district", "District", "district", in.City)
	}
}

// toValidationError reports the first failing field as a
// *domain.ValidationError.
func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return domain.NewValidationError("", err.Error())
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return domain.NewValidationError(fe.Field(), "is required")
	case "max":
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "district":
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("is not a district of %s", fe.Param()))
	default:
		return domain.NewValidationError(fe.Field(), fmt.Sprintf("failed %s", fe.Tag()))
	}
}
