package formfield_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	formfield "github.com/goliatone/go-formfield"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func TestFacadeValidate(t *testing.T) {
	f, err := formfield.NewForm("login",
		formfield.Field{Key: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
		formfield.Field{Key: "password", Label: "Password", Type: model.FieldTypePassword, Required: true},
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	state := formfield.NewState(f)
	if _, err := state.Set("email", "ada@example.com"); err != nil {
		t.Fatalf("set: %v", err)
	}
	report := state.Validate()
	issue, ok := report.Issue("password")
	if !ok || issue.Kind != validation.KindRequired {
		t.Fatalf("expected required password, got %+v", report)
	}

	value := "12345"
	if got := formfield.Validate(f.Fields()[1], &value); got == nil || got.Message != validation.MsgPasswordLength {
		t.Fatalf("expected length issue, got %v", got)
	}
	if got := formfield.NewValidator().ValidateString(f.Fields()[0], "ada@example.com"); got != nil {
		t.Fatalf("expected valid email, got %v", got)
	}
}

func TestFacadeLoadForms(t *testing.T) {
	dir := t.TempDir()
	decl := "id: contact\nfields:\n  - key: phone\n    type: phone\n"
	if err := os.WriteFile(filepath.Join(dir, "contact.yml"), []byte(decl), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	store, err := formfield.LoadForms(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	f, ok := store.Form("contact")
	if !ok || f.Len() != 1 {
		t.Fatalf("expected contact form, got %v", store.IDs())
	}
}

func TestFacadeFormFromOpenAPI(t *testing.T) {
	raw := []byte(`{"openapi":"3.0.3","info":{"title":"t","version":"1"},"paths":{"/x":{"post":{"operationId":"send","requestBody":{"content":{"application/json":{"schema":{"type":"object","properties":{"to":{"type":"string","format":"email"}}}}}},"responses":{"200":{"description":"ok"}}}}}}`)

	f, err := formfield.FormFromOpenAPI(context.Background(), raw, "send")
	if err != nil {
		t.Fatalf("form: %v", err)
	}
	field, ok := f.Field("to")
	if !ok || field.Type != model.FieldTypeEmail {
		t.Fatalf("unexpected field %+v", field)
	}
}
