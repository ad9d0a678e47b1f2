package form

import (
	"html"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Sanitizer cleans free-text input before it is stored and validated. A
// *bluemonday.Policy satisfies it.
type Sanitizer interface {
	Sanitize(string) string
}

var (
	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// StrictSanitizer strips all markup from values.
func StrictSanitizer() Sanitizer {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// WithStrictSanitizer is WithSanitizer(StrictSanitizer()).
func WithStrictSanitizer() Option {
	return WithSanitizer(StrictSanitizer())
}

func sanitizes(field model.Field) bool {
	switch field.Type.Normalize() {
	case model.FieldTypeText, model.FieldTypeMultiline, model.FieldTypeName:
		return true
	default:
		return false
	}
}

func sanitizeValue(sanitizer Sanitizer, field model.Field, value string) string {
	if sanitizer == nil || !sanitizes(field) {
		return value
	}
	// The policy strips markup but also escapes plain text; only the
	// stripping is wanted.
	return html.UnescapeString(sanitizer.Sanitize(value))
}
