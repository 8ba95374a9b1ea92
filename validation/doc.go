// Package validation checks configuration and blueprint input.
//
// It supports both struct tag validation (using go-playground/validator) and
// programmatic validation with error collection. Both report an
// INVALID_INPUT AppError whose "fields" detail lists the offending fields.
//
// # Struct Tag Validation
//
//	type Step struct {
//	    Segregate string   `yaml:"segregate"`
//	    Labels    []string `yaml:"labels" validate:"unique"`
//	}
//	err := validation.Validate(step)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", def.Name).Custom(len(def.Steps) > 0, "steps", "must not be empty")
//	err := v.Err()
package validation
