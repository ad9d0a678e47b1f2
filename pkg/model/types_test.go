package model_test

import (
	"testing"

	"github.com/goliatone/go-formfield/pkg/model"
)

func TestParseFieldType(t *testing.T) {
	cases := []struct {
		raw  string
		want model.FieldType
		ok   bool
	}{
		{raw: "", want: model.FieldTypeText, ok: true},
		{raw: "email", want: model.FieldTypeEmail, ok: true},
		{raw: "CreditCard", want: model.FieldTypeCreditCard, ok: true},
		{raw: "credit_card", want: model.FieldTypeCreditCard, ok: true},
		{raw: "datetime", want: model.FieldTypeDateTime, ok: true},
		{raw: " select ", want: model.FieldTypeDropdown, ok: true},
		{raw: "checkbox", ok: false},
	}
	for _, tc := range cases {
		got, ok := model.ParseFieldType(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseFieldType(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseFieldType(%q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestFieldTypeValidity(t *testing.T) {
	for _, ft := range model.AllFieldTypes() {
		if !ft.IsValid() {
			t.Fatalf("expected %q to be valid", ft)
		}
	}
	if !model.FieldType("").IsValid() {
		t.Fatalf("zero value should be valid text")
	}
	if model.FieldType("color").IsValid() {
		t.Fatalf("unexpected valid type")
	}
	if got := model.FieldType("").String(); got != "text" {
		t.Fatalf("zero value String() = %q", got)
	}
}

func TestKeyboardTypeMatchesNumericRules(t *testing.T) {
	if got := model.FieldTypeNumber.KeyboardType(); got != model.KeyboardNumber {
		t.Fatalf("number keyboard = %q", got)
	}
	if got := model.FieldTypeDecimal.KeyboardType(); got != model.KeyboardNumberWithDecimal {
		t.Fatalf("decimal keyboard = %q", got)
	}
	if got := model.FieldTypeTime.KeyboardType(); got != model.KeyboardDatetime {
		t.Fatalf("time keyboard = %q", got)
	}
}

func TestDefaultLayouts(t *testing.T) {
	if model.FieldTypeText.DefaultLayout() != "" {
		t.Fatalf("text should not carry a layout")
	}
	if model.FieldTypeDate.DefaultLayout() != model.DefaultDateLayout {
		t.Fatalf("unexpected date layout")
	}
	if !model.FieldTypeDateTime.IsTemporal() || model.FieldTypeDropdown.IsTemporal() {
		t.Fatalf("IsTemporal mismatch")
	}
}
