package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SchemaError reports that an assembled or restructured profile violates
// the output schema. It is distinct from transport failures so the API
// boundary can surface it separately.
type SchemaError struct {
	Err error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("profile violates output schema: %v", e.Err)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// ValidateProfile checks a profile against the output schema, returning a
// *SchemaError on violation.
func ValidateProfile(p *BrandProfile) error {
	if err := validate.Struct(p); err != nil {
		return &SchemaError{Err: err}
	}
	return nil
}
