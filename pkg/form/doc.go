// Package form holds the mutable side of a form: one raw string value per
// field key, the latest validation issue per field and any server-provided
// error messages. It is the caller of the validation engine, running it on
// every change (when enabled) and across all fields before submission.
package form
