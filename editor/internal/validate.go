package internal

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/evfl-tools/go-evfl/editor"
	"github.com/go-playground/validator/v10"
)

var validate = newValidate()

func newValidate() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		return strings.SplitN(f.Tag.Get("json"), ",", 2)[0] // e.g. `json:"caseValue,omitempty"` -> caseValue
	})

	return validate
}

// validateCmd validates a command struct.
// Validation failures are returned as an [editor.Error] of type [editor.ErrorValidation].
func validateCmd(v any, title string) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return editor.Error{
			Type:   editor.ErrorBug,
			Title:  title,
			Detail: fmt.Sprintf("failed to validate command: %v", err),
		}
	}

	causes := make([]editor.ErrorCause, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		// e.g. ReconcileParentsCmd.links[2].parentId -> #/links/2/parentId
		namespace := fieldError.Namespace()
		if i := strings.IndexRune(namespace, '.'); i != -1 {
			namespace = namespace[i+1:]
		}

		pointer := strings.NewReplacer(".", "/", "[", "/", "]", "").Replace(namespace)

		var detail string
		switch fieldError.Tag() {
		case "gt":
			detail = fmt.Sprintf("must be greater than %s", fieldError.Param())
		case "gte":
			detail = fmt.Sprintf("must be greater than or equal to %s", fieldError.Param())
		case "lte":
			detail = fmt.Sprintf("must be less than or equal to %s", fieldError.Param())
		case "max":
			detail = fmt.Sprintf("exceeds a maximum of %s", fieldError.Param())
		case "oneof":
			detail = fmt.Sprintf("must be one of %s", fieldError.Param())
		case "required":
			detail = "is required"
		default:
			detail = "is invalid"
		}

		causes = append(causes, editor.ErrorCause{
			Pointer: "#/" + pointer,
			Type:    fieldError.Tag(),
			Detail:  detail,
		})
	}

	return editor.Error{
		Type:   editor.ErrorValidation,
		Title:  title,
		Detail: "failed to validate command",
		Causes: causes,
	}
}
