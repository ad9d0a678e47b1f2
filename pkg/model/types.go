package model

import "strings"

// FieldType is the closed enumeration of supported field semantics.
type FieldType string

const (
	FieldTypeText       FieldType = "text"
	FieldTypeEmail      FieldType = "email"
	FieldTypePassword   FieldType = "password"
	FieldTypeNumber     FieldType = "number"
	FieldTypePhone      FieldType = "phone"
	FieldTypeURL        FieldType = "url"
	FieldTypeMultiline  FieldType = "multiline"
	FieldTypeDecimal    FieldType = "decimal"
	FieldTypeCreditCard FieldType = "creditCard"
	FieldTypeName       FieldType = "name"
	FieldTypeDropdown   FieldType = "dropdown"
	FieldTypeDate       FieldType = "date"
	FieldTypeDateTime   FieldType = "dateTime"
	FieldTypeTime       FieldType = "time"
)

// KeyboardType classifies the input method a renderer should offer for a
// field. It is informational only; validation never consults it.
type KeyboardType string

const (
	KeyboardText              KeyboardType = "text"
	KeyboardEmailAddress      KeyboardType = "emailAddress"
	KeyboardVisiblePassword   KeyboardType = "visiblePassword"
	KeyboardNumber            KeyboardType = "number"
	KeyboardNumberWithDecimal KeyboardType = "numberWithDecimal"
	KeyboardPhone             KeyboardType = "phone"
	KeyboardURL               KeyboardType = "url"
	KeyboardMultiline         KeyboardType = "multiline"
	KeyboardName              KeyboardType = "name"
	KeyboardDatetime          KeyboardType = "datetime"
)

// Go reference layouts applied to temporal fields when no explicit
// DateFormat is declared.
const (
	DefaultDateLayout     = "2006-01-02"
	DefaultDateTimeLayout = "2006-01-02 15:04"
	DefaultTimeLayout     = "15:04"
)

// AllFieldTypes returns every supported field type in declaration order.
func AllFieldTypes() []FieldType {
	return []FieldType{
		FieldTypeText,
		FieldTypeEmail,
		FieldTypePassword,
		FieldTypeNumber,
		FieldTypePhone,
		FieldTypeURL,
		FieldTypeMultiline,
		FieldTypeDecimal,
		FieldTypeCreditCard,
		FieldTypeName,
		FieldTypeDropdown,
		FieldTypeDate,
		FieldTypeDateTime,
		FieldTypeTime,
	}
}

var fieldTypeAliases = map[string]FieldType{
	"creditcard":  FieldTypeCreditCard,
	"credit_card": FieldTypeCreditCard,
	"credit-card": FieldTypeCreditCard,
	"datetime":    FieldTypeDateTime,
	"date_time":   FieldTypeDateTime,
	"date-time":   FieldTypeDateTime,
	"textarea":    FieldTypeMultiline,
	"select":      FieldTypeDropdown,
	"tel":         FieldTypePhone,
	"uri":         FieldTypeURL,
	"integer":     FieldTypeNumber,
}

// ParseFieldType resolves a declared type name. Matching is case-insensitive
// and accepts a few common aliases (credit_card, datetime, select, tel). An
// empty name resolves to text.
func ParseFieldType(raw string) (FieldType, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return FieldTypeText, true
	}
	lower := strings.ToLower(name)
	for _, candidate := range AllFieldTypes() {
		if strings.ToLower(string(candidate)) == lower {
			return candidate, true
		}
	}
	if alias, ok := fieldTypeAliases[lower]; ok {
		return alias, true
	}
	return "", false
}

// Normalize maps the zero value to text and leaves other values untouched.
func (t FieldType) Normalize() FieldType {
	if t == "" {
		return FieldTypeText
	}
	return t
}

// IsValid reports whether the type belongs to the supported set. The zero
// value is valid and treated as text.
func (t FieldType) IsValid() bool {
	switch t.Normalize() {
	case FieldTypeText,
		FieldTypeEmail,
		FieldTypePassword,
		FieldTypeNumber,
		FieldTypePhone,
		FieldTypeURL,
		FieldTypeMultiline,
		FieldTypeDecimal,
		FieldTypeCreditCard,
		FieldTypeName,
		FieldTypeDropdown,
		FieldTypeDate,
		FieldTypeDateTime,
		FieldTypeTime:
		return true
	default:
		return false
	}
}

// IsTemporal reports whether values of this type come from an external
// date/time selection.
func (t FieldType) IsTemporal() bool {
	switch t {
	case FieldTypeDate, FieldTypeDateTime, FieldTypeTime:
		return true
	default:
		return false
	}
}

// String returns the string representation of the field type.
func (t FieldType) String() string {
	return string(t.Normalize())
}

// KeyboardType returns the input classification for the type. Number and
// decimal diverge the same way the validator's integer and float rules do.
func (t FieldType) KeyboardType() KeyboardType {
	switch t.Normalize() {
	case FieldTypeEmail:
		return KeyboardEmailAddress
	case FieldTypePassword:
		return KeyboardVisiblePassword
	case FieldTypeNumber, FieldTypeCreditCard:
		return KeyboardNumber
	case FieldTypeDecimal:
		return KeyboardNumberWithDecimal
	case FieldTypePhone:
		return KeyboardPhone
	case FieldTypeURL:
		return KeyboardURL
	case FieldTypeMultiline:
		return KeyboardMultiline
	case FieldTypeName:
		return KeyboardName
	case FieldTypeDate, FieldTypeDateTime, FieldTypeTime:
		return KeyboardDatetime
	default:
		return KeyboardText
	}
}

// DefaultHint returns the placeholder text shown when a field declares none.
func (t FieldType) DefaultHint() string {
	switch t.Normalize() {
	case FieldTypeEmail:
		return "Enter your email"
	case FieldTypePassword:
		return "Enter your password"
	case FieldTypeNumber:
		return "Enter a number"
	case FieldTypePhone:
		return "Enter your phone number"
	case FieldTypeURL:
		return "Enter a URL"
	case FieldTypeMultiline:
		return "Enter text"
	case FieldTypeDecimal:
		return "Enter a decimal number"
	case FieldTypeCreditCard:
		return "Enter your card number"
	case FieldTypeName:
		return "Enter your name"
	case FieldTypeDropdown:
		return "Select an option"
	case FieldTypeDate:
		return "Select a date"
	case FieldTypeDateTime:
		return "Select a date and time"
	case FieldTypeTime:
		return "Select a time"
	default:
		return "Enter text"
	}
}

// DefaultLayout returns the Go time layout used to format temporal values.
// Non-temporal types return an empty string.
func (t FieldType) DefaultLayout() string {
	switch t {
	case FieldTypeDate:
		return DefaultDateLayout
	case FieldTypeDateTime:
		return DefaultDateTimeLayout
	case FieldTypeTime:
		return DefaultTimeLayout
	default:
		return ""
	}
}
