package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyKey is returned when a field declares no key.
	ErrEmptyKey = errors.New("model: field key is required")
	// ErrDuplicateKey is returned when two fields share a key.
	ErrDuplicateKey = errors.New("model: duplicate field key")
	// ErrUnknownFieldType is returned for types outside the supported set.
	ErrUnknownFieldType = errors.New("model: unknown field type")
	// ErrMissingOptions is returned when a dropdown declares no options.
	ErrMissingOptions = errors.New("model: dropdown field requires options")
)

// Form groups field declarations under an identifier. Construct it with
// NewForm so key uniqueness is enforced; the zero value is an empty form.
type Form struct {
	ID     string
	Title  string
	fields []Field
	index  map[string]int
}

// NewForm validates and copies the supplied fields. Keys are trimmed and must
// be unique; dropdown fields must declare at least one option.
func NewForm(id string, fields ...Field) (Form, error) {
	form := Form{
		ID:     strings.TrimSpace(id),
		fields: make([]Field, 0, len(fields)),
		index:  make(map[string]int, len(fields)),
	}
	for idx, field := range fields {
		field.Key = strings.TrimSpace(field.Key)
		if field.Key == "" {
			return Form{}, fmt.Errorf("%w (field #%d)", ErrEmptyKey, idx)
		}
		if _, exists := form.index[field.Key]; exists {
			return Form{}, fmt.Errorf("%w %q", ErrDuplicateKey, field.Key)
		}
		if !field.Type.IsValid() {
			return Form{}, fmt.Errorf("%w %q on field %q", ErrUnknownFieldType, field.Type, field.Key)
		}
		if field.Type == FieldTypeDropdown && len(field.DropdownOptions) == 0 {
			return Form{}, fmt.Errorf("%w: %q", ErrMissingOptions, field.Key)
		}
		form.index[field.Key] = len(form.fields)
		form.fields = append(form.fields, field.clone())
	}
	return form, nil
}

// MustForm is NewForm that panics on error. Intended for static declarations.
func MustForm(id string, fields ...Field) Form {
	form, err := NewForm(id, fields...)
	if err != nil {
		panic(err)
	}
	return form
}

// WithTitle returns a copy of the form carrying the provided title.
func (f Form) WithTitle(title string) Form {
	f.Title = strings.TrimSpace(title)
	return f
}

// Field looks up a field by key.
func (f Form) Field(key string) (Field, bool) {
	idx, ok := f.index[key]
	if !ok {
		return Field{}, false
	}
	return f.fields[idx].clone(), true
}

// Fields returns copies of the declared fields in declaration order.
func (f Form) Fields() []Field {
	out := make([]Field, len(f.fields))
	for i, field := range f.fields {
		out[i] = field.clone()
	}
	return out
}

// Keys returns the field keys in declaration order.
func (f Form) Keys() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = field.Key
	}
	return out
}

// Len reports the number of declared fields.
func (f Form) Len() int {
	return len(f.fields)
}
