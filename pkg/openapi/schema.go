package openapi

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
)

const (
	extensionKey        = "x-formfield"
	multilineLengthHint = 255
)

func fieldsFromSchema(schema *openapi3.Schema) ([]model.Field, error) {
	required := make(map[string]struct{}, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = struct{}{}
	}

	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]model.Field, 0, len(names))
	for _, name := range names {
		ref := schema.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		field, ok, err := fieldFromProperty(name, ref.Value)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		_, field.Required = required[name]
		fields = append(fields, field)
	}
	return fields, nil
}

// fieldFromProperty maps a scalar property; objects and arrays are skipped.
func fieldFromProperty(name string, prop *openapi3.Schema) (model.Field, bool, error) {
	field := model.Field{
		Key:   name,
		Label: prop.Title,
		Hint:  strings.TrimSpace(prop.Description),
	}
	if field.Label == "" {
		field.Label = humanize(name)
	}
	if prop.Default != nil {
		field.InitialValue = fmt.Sprint(prop.Default)
	}

	switch firstSchemaType(prop.Type) {
	case openapi3.TypeString:
		field.Type = typeFromFormat(prop)
	case openapi3.TypeInteger:
		field.Type = model.FieldTypeNumber
	case openapi3.TypeNumber:
		field.Type = model.FieldTypeDecimal
	case openapi3.TypeBoolean:
		field.Type = model.FieldTypeDropdown
		field.DropdownOptions = []string{"true", "false"}
	case "":
		if len(prop.Enum) == 0 {
			return model.Field{}, false, nil
		}
		field.Type = model.FieldTypeText
	default:
		return model.Field{}, false, nil
	}

	if len(prop.Enum) > 0 {
		field.Type = model.FieldTypeDropdown
		field.DropdownOptions = make([]string, 0, len(prop.Enum))
		for _, value := range prop.Enum {
			field.DropdownOptions = append(field.DropdownOptions, fmt.Sprint(value))
		}
	}

	if err := applyExtension(&field, prop.Extensions); err != nil {
		return model.Field{}, false, err
	}
	return field, true, nil
}

func typeFromFormat(prop *openapi3.Schema) model.FieldType {
	switch strings.ToLower(prop.Format) {
	case "email", "idn-email":
		return model.FieldTypeEmail
	case "password":
		return model.FieldTypePassword
	case "uri", "url", "iri":
		return model.FieldTypeURL
	case "date":
		return model.FieldTypeDate
	case "date-time":
		return model.FieldTypeDateTime
	case "time":
		return model.FieldTypeTime
	case "phone", "tel":
		return model.FieldTypePhone
	case "credit-card", "card":
		return model.FieldTypeCreditCard
	case "textarea", "multiline":
		return model.FieldTypeMultiline
	case "name":
		return model.FieldTypeName
	}
	if prop.MaxLength != nil && *prop.MaxLength > multilineLengthHint {
		return model.FieldTypeMultiline
	}
	return model.FieldTypeText
}

func applyExtension(field *model.Field, extensions map[string]any) error {
	raw, ok := extensions[extensionKey].(map[string]any)
	if !ok {
		return nil
	}
	if value, ok := stringValue(raw["type"]); ok {
		parsed, valid := model.ParseFieldType(value)
		if !valid {
			return fmt.Errorf("%s: unknown type %q on %q", extensionKey, value, field.Key)
		}
		field.Type = parsed
	}
	if value, ok := stringValue(raw["label"]); ok {
		field.Label = value
	}
	if value, ok := stringValue(raw["hint"]); ok {
		field.Hint = value
	}
	if value, ok := stringValue(raw["placeholder"]); ok {
		field.Placeholder = value
	}
	if value, ok := stringValue(raw["dateFormat"]); ok {
		field.DateFormat = value
	}
	if value, ok := stringValue(raw["validator"]); ok {
		field.Validator = value
	}
	return nil
}

func stringValue(value any) (string, bool) {
	s, ok := value.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

func firstSchemaType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func humanize(name string) string {
	var b strings.Builder
	prevLower := false
	for i, r := range name {
		switch {
		case r == '_' || r == '-' || r == '.':
			b.WriteRune(' ')
			prevLower = false
			continue
		case unicode.IsUpper(r) && prevLower:
			b.WriteRune(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLower = unicode.IsLower(r) || unicode.IsDigit(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
