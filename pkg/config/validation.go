package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the singleton validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Validate validates the configuration using struct tags and custom rules.
//
// This function uses go-playground/validator for declarative validation
// via struct tags, with additional custom validation for rules that cannot
// be expressed in tags.
//
// Note: Log level normalization is handled in ApplyDefaults, not here.
// Validation accepts both uppercase and lowercase log levels.
//
// Returns an error describing validation failures.
func Validate(cfg *Config) error {
	// Run struct tag validation
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	// Custom validation rules that can't be expressed in tags
	if err := validateCustomRules(cfg); err != nil {
		return err
	}

	return nil
}

// validateCustomRules performs custom validation beyond struct tags.
func validateCustomRules(cfg *Config) error {
	// A persistent session store needs somewhere to put its data
	if cfg.Sessions.Type == "badger" {
		if path, _ := cfg.Sessions.Badger["path"].(string); path == "" {
			if inMemory, _ := cfg.Sessions.Badger["in_memory"].(bool); !inMemory {
				return fmt.Errorf("sessions.badger: path is required unless in_memory is true")
			}
		}
	}

	// Same rule for the metadata store
	if cfg.Metadata.Type == "badger" {
		if path, _ := cfg.Metadata.Badger["path"].(string); path == "" {
			if inMemory, _ := cfg.Metadata.Badger["in_memory"].(bool); !inMemory {
				return fmt.Errorf("metadata.badger: path is required unless in_memory is true")
			}
		}
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		// Return the first validation error with context
		if len(validationErrs) > 0 {
			e := validationErrs[0]
			return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)",
				e.Namespace(), e.Tag(), e.Value())
		}
	}
	return err
}
