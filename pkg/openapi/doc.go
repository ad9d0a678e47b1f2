// Package openapi derives form declarations from OpenAPI 3 documents. The
// request body schema of an operation becomes a model.Form: scalar
// properties map onto field types through their type and format, enums
// become dropdown options and the schema's required list marks required
// fields. Overrides live under the `x-formfield` extension (type, label,
// hint, placeholder, dateFormat, validator).
package openapi
