package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for declaration loading.
var (
	ErrEmptyDocument     = goerr.New("form declaration is empty")
	ErrUnsupportedFormat = goerr.New("unsupported declaration format")
	ErrMissingFormID     = goerr.New("form id is required")
	ErrDuplicateFormID   = goerr.New("duplicate form id")
	ErrInvalidFieldType  = goerr.New("invalid field type")
	ErrUnknownValidator  = goerr.New("unknown custom validator")
)

// Context keys for error values.
const (
	PathKey      = "path"
	FormIDKey    = "form_id"
	FieldKeyKey  = "field_key"
	FieldTypeKey = "field_type"
	ValidatorKey = "validator"
	FormatKey    = "format"
)
