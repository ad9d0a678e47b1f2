// Package validation implements the per-type rule table that decides whether
// a field's raw string value is acceptable. Validation is a pure function of
// (model.Field, value): it holds no state between calls, never panics on
// malformed input and reports failures as structured Issue values rather than
// Go errors. Rules run in a fixed order: required-empty check, type rule,
// then the field's custom function.
package validation
