package document

import (
	"errors"
	"reflect"
	"strings"
	"sync"

	"github.com/freightdocs/backend/internal/domain/document"
	"github.com/freightdocs/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func formValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

// validateFormRecord checks the enumerated and formatted fields of r.
// Every field is optional; only present values are checked.
func validateFormRecord(r *document.FormRecord) error {
	err := formValidator().Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return shared.WrapDomainError(shared.CodeValidation, "Invalid form data", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field()+" ("+fe.Tag()+")")
	}
	de := shared.NewDomainError(shared.CodeValidation, "Invalid form data")
	de.Details = strings.Join(fields, ", ")
	return de
}
