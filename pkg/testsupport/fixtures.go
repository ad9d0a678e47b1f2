// Package testsupport holds fixture and golden-file helpers shared by package
// tests. Goldens are form declarations, so they double as readable examples.
package testsupport

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/openapi"
)

// UpdateGoldensEnv enables golden rewrites when set to any value.
const UpdateGoldensEnv = "UPDATE_GOLDENS"

// LoadDocument reads an OpenAPI fixture, failing the test on error.
func LoadDocument(t *testing.T, path string) *openapi3.T {
	t.Helper()

	doc, err := openapi.LoadFile(Context(), path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// MustLoadForm reads a form declaration fixture. Loader options register the
// custom validators the fixture references.
func MustLoadForm(t *testing.T, path string, options ...config.Option) model.Form {
	t.Helper()

	form, err := config.NewLoader(options...).LoadFile(path)
	if err != nil {
		t.Fatalf("load form: %v", err)
	}
	return form
}

// WriteFormGolden writes form as a YAML declaration when UPDATE_GOLDENS is
// set and reports whether it did, so the caller can skip the comparison.
func WriteFormGolden(t *testing.T, path string, form model.Form) bool {
	t.Helper()

	if os.Getenv(UpdateGoldensEnv) == "" {
		return false
	}
	payload, err := config.Encode(form, config.FormatFromPath(path))
	if err != nil {
		t.Fatalf("encode golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

type formView struct {
	ID     string
	Title  string
	Fields []model.Field
}

// CompareForms returns a diff when the forms differ in id, title or fields.
// Custom funcs only compare equal when both are nil.
func CompareForms(want, got model.Form) string {
	return cmp.Diff(
		formView{ID: want.ID, Title: want.Title, Fields: want.Fields()},
		formView{ID: got.ID, Title: got.Title, Fields: got.Fields()},
	)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
