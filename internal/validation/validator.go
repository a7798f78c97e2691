package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"tasklist/internal/config"
)

// DefaultTaskNameMaxLength applies when no configuration is supplied
const DefaultTaskNameMaxLength = 255

// Validator provides common validation utilities
type Validator struct {
	config *config.Config
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		config: nil, // Use defaults
	}
}

// NewValidatorWithConfig creates a new validator instance with configuration
func NewValidatorWithConfig(cfg *config.Config) *Validator {
	return &Validator{
		config: cfg,
	}
}

// IsNonEmptyString checks if a string is not empty after trimming whitespace
func (v *Validator) IsNonEmptyString(s string) bool {
	return strings.TrimSpace(s) != ""
}

// IsWithinMaxLength checks the rune length of s against max
func (v *Validator) IsWithinMaxLength(s string, max int) bool {
	return utf8.RuneCountInString(s) <= max
}

// IsValidTaskNameLength checks if a task name length is within configured limits
func (v *Validator) IsValidTaskNameLength(name string) bool {
	return v.IsWithinMaxLength(name, v.TaskNameMaxLength())
}

// HasNoControlCharacters rejects newlines, tabs and other control runes that
// would break a single-line list row
func (v *Validator) HasNoControlCharacters(s string) bool {
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// TaskNameMaxLength returns configured maximum task name length or default
func (v *Validator) TaskNameMaxLength() int {
	if v.config != nil && v.config.Validation.TaskNameMaxLength > 0 {
		return v.config.Validation.TaskNameMaxLength
	}
	return DefaultTaskNameMaxLength
}
