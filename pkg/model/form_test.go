package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/model"
)

func TestNewFormRejectsInvalidDeclarations(t *testing.T) {
	cases := []struct {
		name   string
		fields []model.Field
		want   error
	}{
		{
			name:   "empty key",
			fields: []model.Field{{Key: "  ", Label: "Nameless"}},
			want:   model.ErrEmptyKey,
		},
		{
			name: "duplicate key",
			fields: []model.Field{
				{Key: "email", Type: model.FieldTypeEmail},
				{Key: " email ", Type: model.FieldTypeText},
			},
			want: model.ErrDuplicateKey,
		},
		{
			name:   "unknown type",
			fields: []model.Field{{Key: "colour", Type: "color"}},
			want:   model.ErrUnknownFieldType,
		},
		{
			name:   "dropdown without options",
			fields: []model.Field{{Key: "status", Type: model.FieldTypeDropdown}},
			want:   model.ErrMissingOptions,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := model.NewForm("signup", tc.fields...)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestFormCopiesFields(t *testing.T) {
	options := []string{"A", "B"}
	form, err := model.NewForm("status",
		model.Field{Key: "name", Label: "Name"},
		model.Field{Key: "status", Label: "Status", Type: model.FieldTypeDropdown, DropdownOptions: options},
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}

	options[0] = "mutated"

	field, ok := form.Field("status")
	if !ok {
		t.Fatalf("expected status field")
	}
	if diff := cmp.Diff([]string{"A", "B"}, field.DropdownOptions); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}

	field.DropdownOptions[1] = "changed"
	again, _ := form.Field("status")
	if again.DropdownOptions[1] != "B" {
		t.Fatalf("form state leaked through returned field")
	}

	if diff := cmp.Diff([]string{"name", "status"}, form.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}

	name, _ := form.Field("name")
	if name.Type != model.FieldTypeText {
		t.Fatalf("zero type should normalise to text, got %q", name.Type)
	}
}

func TestFieldDerivedProperties(t *testing.T) {
	field := model.Field{Key: "dob", Type: model.FieldTypeDate}
	if got := field.DisplayLabel(); got != "dob" {
		t.Fatalf("label fallback = %q", got)
	}
	if got := field.DisplayHint(); got != "Select a date" {
		t.Fatalf("hint = %q", got)
	}
	moment := time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC)
	if got := field.FormatTime(moment); got != "2024-03-05" {
		t.Fatalf("format = %q", got)
	}

	field.DateFormat = "02/01/2006"
	if got := field.FormatTime(moment); got != "05/03/2024" {
		t.Fatalf("custom format = %q", got)
	}

	clock := model.Field{Key: "at", Type: model.FieldTypeTime}
	if got := clock.FormatTime(moment); got != "14:30" {
		t.Fatalf("time format = %q", got)
	}
}
