package validator

// Validator validates an annotated struct against its declared rules.
type Validator interface {
	// Validate returns nil when data passes all rules, otherwise an error
	// describing the failing fields.
	Validate(data any) error
}
