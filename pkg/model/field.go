package model

import (
	"strings"
	"time"
)

// CustomFunc is a caller-supplied rule run after the built-in checks pass.
// A nil return means the value is acceptable; otherwise the error text is
// reported to the user as-is.
type CustomFunc func(value string) error

// Field declares one form input. Fields are values: copying a Field never
// shares mutable state except the option slice, which Form clones on
// construction.
type Field struct {
	Key             string     `json:"key"`
	Label           string     `json:"label"`
	Type            FieldType  `json:"type"`
	Required        bool       `json:"required"`
	InitialValue    string     `json:"initialValue,omitempty"`
	Hint            string     `json:"hint,omitempty"`
	Placeholder     string     `json:"placeholder,omitempty"`
	DropdownOptions []string   `json:"options,omitempty"`
	DateFormat      string     `json:"dateFormat,omitempty"`
	Validator       string     `json:"validator,omitempty"`
	Custom          CustomFunc `json:"-"`
}

// DisplayLabel returns the label, falling back to the key.
func (f Field) DisplayLabel() string {
	if label := strings.TrimSpace(f.Label); label != "" {
		return label
	}
	return f.Key
}

// DisplayHint returns the declared hint or the type default.
func (f Field) DisplayHint() string {
	if hint := strings.TrimSpace(f.Hint); hint != "" {
		return hint
	}
	return f.Type.DefaultHint()
}

// KeyboardType proxies FieldType.KeyboardType.
func (f Field) KeyboardType() KeyboardType {
	return f.Type.KeyboardType()
}

// Layout returns the time layout for temporal fields, honouring DateFormat.
func (f Field) Layout() string {
	if layout := strings.TrimSpace(f.DateFormat); layout != "" {
		return layout
	}
	return f.Type.DefaultLayout()
}

// FormatTime renders an externally selected time using the field layout.
// Non-temporal fields fall back to RFC 3339.
func (f Field) FormatTime(t time.Time) string {
	layout := f.Layout()
	if layout == "" {
		layout = time.RFC3339
	}
	return t.Format(layout)
}

// HasOption reports whether value is one of the declared dropdown options.
func (f Field) HasOption(value string) bool {
	for _, option := range f.DropdownOptions {
		if option == value {
			return true
		}
	}
	return false
}

func (f Field) clone() Field {
	out := f
	out.Type = f.Type.Normalize()
	if f.DropdownOptions != nil {
		out.DropdownOptions = append([]string(nil), f.DropdownOptions...)
	}
	return out
}
