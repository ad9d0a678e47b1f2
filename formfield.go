// Package formfield is the top-level entry point for declaring forms and
// validating their values. Most callers only need NewForm, NewState and
// LoadForms; the pkg/ subpackages hold the full API.
package formfield

import (
	"context"
	"os"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Field aliases model.Field so callers can declare forms from the root
// package.
type Field = model.Field

// FieldType aliases model.FieldType.
type FieldType = model.FieldType

// Form aliases model.Form.
type Form = model.Form

// Issue aliases validation.Issue; a nil *Issue means the value is valid.
type Issue = validation.Issue

// Report aliases validation.Report.
type Report = validation.Report

// Validator aliases validation.Validator.
type Validator = validation.Validator

// State aliases form.State.
type State = form.State

// Store aliases config.Store.
type Store = config.Store

// NewForm builds a form from field declarations.
func NewForm(id string, fields ...Field) (Form, error) {
	return model.NewForm(id, fields...)
}

// NewValidator exposes the validator constructor from the top-level module.
func NewValidator(options ...validation.Option) *Validator {
	return validation.New(options...)
}

// Validate checks one value with the default validator. A nil value is
// treated like an empty one.
func Validate(field Field, value *string) *Issue {
	return validation.Validate(field, value)
}

// NewState creates a form-state holder seeded with initial values.
func NewState(f Form, options ...form.Option) *State {
	return form.New(f, options...)
}

// LoadForms reads every declaration under dir.
func LoadForms(dir string, options ...config.Option) (*Store, error) {
	return config.NewLoader(options...).LoadFS(os.DirFS(dir))
}

// FormFromOpenAPI derives a form from the request body of operationID in a
// raw OpenAPI document.
func FormFromOpenAPI(ctx context.Context, raw []byte, operationID string) (Form, error) {
	doc, err := openapi.Load(ctx, raw)
	if err != nil {
		return Form{}, err
	}
	return openapi.FormFromOperation(doc, operationID)
}
