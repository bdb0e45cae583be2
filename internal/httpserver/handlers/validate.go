package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldMessages maps struct field names to user-facing validation errors,
// preserving the exact wording the frontend matches on.
var fieldMessages = map[string]string{
	"Name":      "Name is required",
	"Task":      "Task is required",
	"URL":       "Link is required",
	"TimeOfDay": "timeOfDay is required",
	"Workspace": "Type must be either 'office' or 'personal'",
	"Secret":    "Secret is required",
}

// validatePayload runs struct validation and converts the first failure
// into its canonical message.
func validatePayload(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		if msg, ok := fieldMessages[fe.StructField()]; ok {
			return errors.New(msg)
		}
		return fmt.Errorf("invalid value for %s", fe.Field())
	}
	return err
}

// validateID checks that id is a well-formed UUID.
func validateID(id string) error {
	if uuid.Validate(id) != nil {
		return errors.New("Invalid ID format")
	}
	return nil
}
