package form_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func signupForm(t *testing.T) model.Form {
	t.Helper()
	f, err := model.NewForm("signup",
		model.Field{Key: "name", Label: "Name", Type: model.FieldTypeName, Required: true, InitialValue: "Ada"},
		model.Field{Key: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
		model.Field{Key: "bio", Label: "Bio", Type: model.FieldTypeMultiline},
		model.Field{Key: "dob", Label: "Birthday", Type: model.FieldTypeDate},
		model.Field{Key: "plan", Label: "Plan", Type: model.FieldTypeDropdown, DropdownOptions: []string{"free", "pro"}, InitialValue: "free"},
	)
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	return f
}

func TestStateSeedsInitialValues(t *testing.T) {
	state := form.New(signupForm(t), form.WithPrefill(map[string]string{"plan": "pro"}))

	want := map[string]string{"name": "Ada", "plan": "pro"}
	if diff := cmp.Diff(want, state.Values()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if _, ok := state.Get("email"); ok {
		t.Fatalf("email should have no value")
	}
}

func TestStateSetValidatesOnChange(t *testing.T) {
	state := form.New(signupForm(t))

	issue, err := state.Set("email", "nope")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if issue == nil || issue.Kind != validation.KindFormat {
		t.Fatalf("expected format issue, got %+v", issue)
	}
	if got := state.Issue("email"); got == nil || got.Message != validation.MsgInvalidEmail {
		t.Fatalf("issue not recorded: %+v", got)
	}

	issue, err = state.Set("email", "ada@example.com")
	if err != nil || issue != nil {
		t.Fatalf("expected valid set, got %v / %v", issue, err)
	}
	if state.Issue("email") != nil {
		t.Fatalf("issue should be cleared after a valid value")
	}

	if _, err := state.Set("missing", "x"); !errors.Is(err, form.ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
}

func TestStateValidateCoversUntouchedFields(t *testing.T) {
	var observed []string
	state := form.New(signupForm(t),
		form.WithValidateOnChange(false),
		form.WithObserver(form.ObserverFunc(func(formID string, field model.Field, issue *validation.Issue) {
			observed = append(observed, formID+"/"+field.Key)
		})),
	)

	if issue, _ := state.Set("email", "broken"); issue != nil {
		t.Fatalf("validate-on-change disabled, got %v", issue)
	}

	report := state.Validate()
	want := []validation.Issue{
		{Field: "email", Kind: validation.KindFormat, Message: validation.MsgInvalidEmail},
	}
	if diff := cmp.Diff(want, report.Issues); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if state.Valid() {
		t.Fatalf("state should be invalid")
	}
	if len(observed) != 5 || observed[0] != "signup/name" {
		t.Fatalf("unexpected observations: %v", observed)
	}
}

func TestStateClearResetAndUnset(t *testing.T) {
	state := form.New(signupForm(t))
	_, _ = state.Set("email", "ada@example.com")
	_, _ = state.Set("name", "")

	state.Clear()
	if got, ok := state.Get("name"); !ok || got != "" {
		t.Fatalf("clear should empty values, got %q/%v", got, ok)
	}
	report := state.Validate()
	if _, ok := report.Issue("name"); !ok {
		t.Fatalf("cleared required field should fail")
	}

	state.Reset()
	if got, _ := state.Get("name"); got != "Ada" {
		t.Fatalf("reset should restore initial value, got %q", got)
	}
	if len(state.Issues()) != 0 {
		t.Fatalf("reset should drop issues")
	}

	if err := state.Unset("plan"); err != nil {
		t.Fatalf("unset: %v", err)
	}
	if _, ok := state.Get("plan"); ok {
		t.Fatalf("plan should be absent after unset")
	}
}

func TestStateSetTimeUsesFieldLayout(t *testing.T) {
	state := form.New(signupForm(t))
	moment := time.Date(1815, time.December, 10, 9, 0, 0, 0, time.UTC)
	if _, err := state.SetTime("dob", moment); err != nil {
		t.Fatalf("set time: %v", err)
	}
	if got, _ := state.Get("dob"); got != "1815-12-10" {
		t.Fatalf("dob = %q", got)
	}
}

func TestStateStrictSanitizer(t *testing.T) {
	state := form.New(signupForm(t), form.WithStrictSanitizer())
	_, _ = state.Set("bio", "<script>alert(1)</script><b>Hello</b>")
	_, _ = state.Set("email", "ada@example.com")

	values := state.Values()
	if values["bio"] != "Hello" {
		t.Fatalf("bio not sanitised: %q", values["bio"])
	}
	if values["email"] != "ada@example.com" {
		t.Fatalf("email should pass through untouched: %q", values["email"])
	}
	if got, _ := state.Get("bio"); got != values["bio"] {
		t.Fatalf("stored value %q differs from returned value %q", got, values["bio"])
	}
}

func TestStateSanitizerKeepsPlainText(t *testing.T) {
	state := form.New(signupForm(t), form.WithStrictSanitizer())

	issue, err := state.Set("name", "O'Brien & Sons")
	if err != nil || issue != nil {
		t.Fatalf("expected valid set, got %v / %v", issue, err)
	}
	if got := state.Values()["name"]; got != "O'Brien & Sons" {
		t.Fatalf("plain text should survive sanitising, got %q", got)
	}
}

func TestStateSanitizedRequiredValueIsValidated(t *testing.T) {
	state := form.New(signupForm(t), form.WithStrictSanitizer())

	issue, err := state.Set("name", "<b></b>")
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	if issue == nil || issue.Kind != validation.KindRequired {
		t.Fatalf("markup-only value should fail the required check, got %v", issue)
	}
	if state.Valid() {
		t.Fatalf("state should be invalid")
	}
	if got := state.Values()["name"]; got != "" {
		t.Fatalf("stored value = %q", got)
	}
}

func TestStateSetWithoutChangeValidationDropsStaleIssue(t *testing.T) {
	f := model.MustForm("profile", model.Field{Key: "age", Label: "Age", Type: model.FieldTypeNumber})
	state := form.New(f, form.WithValidateOnChange(false))

	_, _ = state.Set("age", "old")
	if report := state.Validate(); report.Valid() {
		t.Fatalf("expected an invalid number")
	}

	if _, err := state.Set("age", "42"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if issue := state.Issue("age"); issue != nil {
		t.Fatalf("stale issue kept after set: %v", issue)
	}
	if !state.Valid() {
		t.Fatalf("state should be valid until the next validation")
	}
}

func TestStateObserversMayReadState(t *testing.T) {
	var state *form.State
	var seen []string
	observer := form.ObserverFunc(func(formID string, field model.Field, issue *validation.Issue) {
		values := state.Values()
		if state.Issue(field.Key) != nil {
			seen = append(seen, field.Key+"!"+values[field.Key])
			return
		}
		seen = append(seen, field.Key+"="+values[field.Key])
	})
	state = form.New(signupForm(t), form.WithObserver(observer))

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = state.Set("email", "nope")
		_, _ = state.ValidateField("name")
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("observer calling back into the state blocked")
	}

	if diff := cmp.Diff([]string{"email!nope", "name=Ada"}, seen); diff != "" {
		t.Fatalf("observations mismatch (-want +got):\n%s", diff)
	}
}

func TestStateApplyErrors(t *testing.T) {
	state := form.New(signupForm(t))
	state.ApplyErrors(map[string][]string{
		"#/body/email":     {"Email already registered", " Email already registered "},
		"data.plan":        {"Plan unavailable"},
		"non_field_errors": {"Try again later"},
		"unknown.path":     {"Lost field"},
		"bio":              {"  "},
	})

	if diff := cmp.Diff([]string{"Email already registered"}, state.ErrorsFor("email")); diff != "" {
		t.Fatalf("email errors mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Plan unavailable"}, state.ErrorsFor("plan")); diff != "" {
		t.Fatalf("plan errors mismatch (-want +got):\n%s", diff)
	}
	formErrs := state.FormErrors()
	if len(formErrs) != 2 {
		t.Fatalf("expected two form-level errors, got %v", formErrs)
	}
	if state.Valid() {
		t.Fatalf("server errors should invalidate the state")
	}

	_, _ = state.Set("email", "new@example.com")
	if got := state.ErrorsFor("email"); got != nil {
		t.Fatalf("set should clear server errors, got %v", got)
	}
}
