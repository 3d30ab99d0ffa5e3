package validation

import (
	"regexp"
	"strings"
)

// Validation rule patterns
var (
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Phone numbers are free-form but limited to digits, spaces and a leading +
	PhonePattern = `^\+?[0-9 ]{7,20}$`

	// PINs are exactly four digits
	PINPattern = `^\d{4}$`

	// Event times are 24h HH:MM
	EventTimePattern = `^([01]\d|2[0-3]):[0-5]\d$`

	NameMinLength = 1
	NameMaxLength = 100
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email     *regexp.Regexp
	Phone     *regexp.Regexp
	PIN       *regexp.Regexp
	EventTime *regexp.Regexp
}{
	Email:     regexp.MustCompile(EmailPattern),
	Phone:     regexp.MustCompile(PhonePattern),
	PIN:       regexp.MustCompile(PINPattern),
	EventTime: regexp.MustCompile(EventTimePattern),
}

// StringValidation is a chainable check for a single string value
type StringValidation struct {
	Value    string
	MinLen   int
	MaxLen   int
	Required bool
	Pattern  *regexp.Regexp
}

// NewStringValidation creates a new string validation; surrounding whitespace is ignored
func NewStringValidation(value string) *StringValidation {
	return &StringValidation{
		Value:    strings.TrimSpace(value),
		Required: true,
	}
}

// WithMinLength sets minimum length
func (v *StringValidation) WithMinLength(min int) *StringValidation {
	v.MinLen = min
	return v
}

// WithMaxLength sets maximum length
func (v *StringValidation) WithMaxLength(max int) *StringValidation {
	v.MaxLen = max
	return v
}

// WithPattern sets regex pattern
func (v *StringValidation) WithPattern(pattern *regexp.Regexp) *StringValidation {
	v.Pattern = pattern
	return v
}

// WithRequired sets if field is required
func (v *StringValidation) WithRequired(required bool) *StringValidation {
	v.Required = required
	return v
}

// Validate performs validation
func (v *StringValidation) Validate() bool {
	if v.Value == "" {
		return !v.Required
	}

	if v.MinLen > 0 && len([]rune(v.Value)) < v.MinLen {
		return false
	}

	if v.MaxLen > 0 && len([]rune(v.Value)) > v.MaxLen {
		return false
	}

	if v.Pattern != nil && !v.Pattern.MatchString(v.Value) {
		return false
	}

	return true
}

// IsValidName checks a person or entity name
func IsValidName(name string) bool {
	return NewStringValidation(name).
		WithMinLength(NameMinLength).
		WithMaxLength(NameMaxLength).
		Validate()
}

// IsValidEmail checks an email address
func IsValidEmail(email string) bool {
	return NewStringValidation(email).WithPattern(CompiledPatterns.Email).Validate()
}

// IsValidPhone checks an optional phone number
func IsValidPhone(phone *string) bool {
	if phone == nil {
		return true
	}
	return NewStringValidation(*phone).WithRequired(false).WithPattern(CompiledPatterns.Phone).Validate()
}

// IsValidPIN checks a four digit PIN
func IsValidPIN(pin string) bool {
	return NewStringValidation(pin).WithPattern(CompiledPatterns.PIN).Validate()
}

// IsValidEventTime checks an HH:MM time of day
func IsValidEventTime(t string) bool {
	return NewStringValidation(t).WithPattern(CompiledPatterns.EventTime).Validate()
}
