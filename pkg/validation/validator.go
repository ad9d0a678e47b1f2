package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formfield/pkg/model"
)

// Messages surfaced by the built-in rules.
const (
	MsgInvalidEmail       = "Please enter a valid email address"
	MsgInvalidPhone       = "Please enter a valid phone number"
	MsgInvalidURL         = "Please enter a valid URL"
	MsgInvalidNumber      = "Please enter a valid number"
	MsgInvalidDecimal     = "Please enter a valid decimal number"
	MsgCardLength         = "Credit card number must be between 13 and 19 digits"
	MsgCardDigits         = "Credit card number must contain only digits"
	MsgCardChecksum       = "Please enter a valid credit card number"
	MsgPasswordLength     = "Password must be at least 6 characters long"
	MsgInvalidOption      = "Please select a valid option"
	MsgPlaceholderOption  = "Please select an option"
	requiredMessageFormat = "%s is required"
)

const (
	minPasswordLength = 6
	minCardLength     = 13
	maxCardLength     = 19
)

var (
	emailPattern = regexp.MustCompile(`^[\w\-.]+@([\w\-]+\.)+[\w\-]{2,4}$`)
	urlPattern   = regexp.MustCompile(`^https?://([\w\-]+\.)+[\w\-]{2,}(:\d{1,5})?([/?#]\S*)?$`)
)

// PhoneRule bounds the accepted phone length in characters. Zero disables a
// bound. Historic releases disagreed (at least 10 vs. at most 16), so both
// limits are configurable; DefaultPhoneRule keeps the upper bound only.
type PhoneRule struct {
	MinLength int
	MaxLength int
}

// DefaultPhoneRule accepts up to 16 characters.
var DefaultPhoneRule = PhoneRule{MaxLength: 16}

// MinimumPhoneRule enforces at least 10 characters and no upper bound.
var MinimumPhoneRule = PhoneRule{MinLength: 10}

func (r PhoneRule) accepts(value string) bool {
	length := utf8.RuneCountInString(value)
	if r.MinLength > 0 && length < r.MinLength {
		return false
	}
	if r.MaxLength > 0 && length > r.MaxLength {
		return false
	}
	return true
}

// Option configures a Validator.
type Option func(*Validator)

// WithPhoneRule selects the phone length policy.
func WithPhoneRule(rule PhoneRule) Option {
	return func(v *Validator) {
		v.phone = rule
	}
}

// Validator applies the rule table. It is immutable once constructed and safe
// for concurrent use.
type Validator struct {
	phone PhoneRule
}

// New constructs a Validator with the default phone policy.
func New(options ...Option) *Validator {
	v := &Validator{phone: DefaultPhoneRule}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Validate checks value against field using the default Validator. A nil
// value means the field has no value at all.
func Validate(field model.Field, value *string) *Issue {
	return defaultValidator.Validate(field, value)
}

// ValidateString is Validate for a present value.
func ValidateString(field model.Field, value string) *Issue {
	return defaultValidator.Validate(field, &value)
}

// PhoneRule reports the configured phone policy.
func (v *Validator) PhoneRule() PhoneRule {
	return v.phone
}

// ValidateString is Validate for a present value.
func (v *Validator) ValidateString(field model.Field, value string) *Issue {
	return v.Validate(field, &value)
}

// Validate returns nil when value is acceptable for field, or an Issue
// describing the first failing check.
func (v *Validator) Validate(field model.Field, value *string) *Issue {
	if value == nil || strings.TrimSpace(*value) == "" {
		if field.Required {
			return &Issue{
				Field:   field.Key,
				Kind:    KindRequired,
				Message: fmt.Sprintf(requiredMessageFormat, field.DisplayLabel()),
			}
		}
		return nil
	}

	raw := *value
	if issue := v.typeRule(field, raw); issue != nil {
		return issue
	}

	if field.Custom != nil {
		if err := field.Custom(raw); err != nil {
			return &Issue{Field: field.Key, Kind: KindCustom, Message: err.Error()}
		}
	}
	return nil
}

// ValidateForm validates every field of form. Keys absent from values are
// treated as having no value.
func (v *Validator) ValidateForm(form model.Form, values map[string]string) Report {
	var report Report
	for _, field := range form.Fields() {
		var value *string
		if raw, ok := values[field.Key]; ok {
			value = &raw
		}
		if issue := v.Validate(field, value); issue != nil {
			report.Issues = append(report.Issues, *issue)
		}
	}
	return report
}

func (v *Validator) typeRule(field model.Field, raw string) *Issue {
	fail := func(kind Kind, message string) *Issue {
		return &Issue{Field: field.Key, Kind: kind, Message: message}
	}

	switch field.Type.Normalize() {
	case model.FieldTypeEmail:
		if !emailPattern.MatchString(raw) {
			return fail(KindFormat, MsgInvalidEmail)
		}
	case model.FieldTypePhone:
		if !v.phone.accepts(raw) {
			return fail(KindLength, MsgInvalidPhone)
		}
	case model.FieldTypeURL:
		if !urlPattern.MatchString(raw) {
			return fail(KindFormat, MsgInvalidURL)
		}
	case model.FieldTypeNumber:
		if _, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64); err != nil {
			return fail(KindFormat, MsgInvalidNumber)
		}
	case model.FieldTypeDecimal:
		if _, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err != nil {
			return fail(KindFormat, MsgInvalidDecimal)
		}
	case model.FieldTypeCreditCard:
		if n := utf8.RuneCountInString(raw); n < minCardLength || n > maxCardLength {
			return fail(KindLength, MsgCardLength)
		}
		if !allDigits(raw) {
			return fail(KindFormat, MsgCardDigits)
		}
		if !luhnValid(raw) {
			return fail(KindChecksum, MsgCardChecksum)
		}
	case model.FieldTypePassword:
		if utf8.RuneCountInString(raw) < minPasswordLength {
			return fail(KindLength, MsgPasswordLength)
		}
	case model.FieldTypeDropdown:
		if field.Placeholder != "" && raw == field.Placeholder {
			return fail(KindMembership, MsgPlaceholderOption)
		}
		// No declared options means no membership constraint.
		if len(field.DropdownOptions) > 0 && !field.HasOption(raw) {
			return fail(KindMembership, MsgInvalidOption)
		}
	case model.FieldTypeDate, model.FieldTypeDateTime, model.FieldTypeTime:
		// Formatting belongs to the date/time collaborator.
	case model.FieldTypeText, model.FieldTypeMultiline, model.FieldTypeName:
	}
	return nil
}
