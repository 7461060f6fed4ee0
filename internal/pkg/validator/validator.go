package validator

// Validator validates structs annotated with `validate` tags.
//
// On failure Validate returns a V10ValidationError keyed by the JSON field name.
type Validator interface {
	Validate(data any) error
}
