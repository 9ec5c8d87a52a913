package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

var (
	templates = map[string]string{
		"required": "{field} is required",
		"gte":      "{field} must be greater than or equal to {param}",
		"lte":      "{field} must be less than or equal to {param}",
		"oneof":    "{field} must be one of {param}",
		"max":      "{field} must be less than or equal to {param}",
		"min":      "{field} must be greater than or equal to {param}",
		"email":    "{field} must be a valid email address",
		"uuid":     "{field} must be a valid UUID",
	}
)

// messages renders every violation, returning the first as the headline
// message and the full list for the response errors array.
func messages(err error) (string, []string) {
	var valErrors val.ValidationErrors

	if !errors.As(err, &valErrors) {
		return err.Error(), nil
	}

	rendered := make([]string, 0, len(valErrors))

	for _, valErr := range valErrors {
		errStr := templates[valErr.Tag()]
		if errStr == "" {
			rendered = append(rendered, valErr.Error())

			continue
		}

		errStr = strings.ReplaceAll(errStr, "{field}", valErr.Field())
		errStr = strings.ReplaceAll(errStr, "{param}", valErr.Param())

		rendered = append(rendered, errStr)
	}

	if len(rendered) == 0 {
		return valErrors.Error(), nil
	}

	return rendered[0], rendered
}
