package form

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// ErrUnknownField is returned when a key is not declared by the form.
var ErrUnknownField = errors.New("form: unknown field")

// State tracks one raw value per field key together with the latest
// validation issue and any server-provided errors. A key without a value
// (never set, or cleared with Unset) validates as absent.
type State struct {
	mu sync.RWMutex

	form             model.Form
	validator        *validation.Validator
	logger           zerolog.Logger
	observers        []Observer
	sanitizer        Sanitizer
	validateOnChange bool
	prefill          map[string]string

	values     map[string]string
	issues     map[string]validation.Issue
	serverErrs map[string][]string
	formErrs   []string
}

// New constructs a State seeded with initial values (prefill wins over the
// declared InitialValue).
func New(form model.Form, options ...Option) *State {
	s := &State{
		form:             form,
		validator:        validation.New(),
		logger:           zerolog.Nop(),
		validateOnChange: true,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.resetLocked()
	return s
}

// Form returns the form declaration backing the state.
func (s *State) Form() model.Form {
	return s.form
}

// ValidatesOnChange reports whether Set validates immediately.
func (s *State) ValidatesOnChange() bool {
	return s.validateOnChange
}

// Get returns the raw value for key and whether one is present.
func (s *State) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.values[key]
	return value, ok
}

// Set stores value for key. Free-text values pass through the configured
// sanitizer first, so the stored value is the one validated and returned by
// Values. When validate-on-change is enabled the field is validated
// immediately and the resulting issue (nil when valid) returned; otherwise
// any previous issue for key is dropped until the next validation.
func (s *State) Set(key, value string) (*validation.Issue, error) {
	field, ok := s.form.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, key)
	}

	s.mu.Lock()
	s.values[key] = sanitizeValue(s.sanitizer, field, value)
	delete(s.serverErrs, key)
	if !s.validateOnChange {
		delete(s.issues, key)
		s.mu.Unlock()
		return nil, nil
	}
	issue := s.validateLocked(field)
	s.mu.Unlock()

	s.notify(outcome{field: field, issue: issue})
	return issue, nil
}

// SetTime formats t with the field's layout and stores the result. It is the
// entry point for external date/time pickers.
func (s *State) SetTime(key string, t time.Time) (*validation.Issue, error) {
	field, ok := s.form.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	return s.Set(key, field.FormatTime(t))
}

// Unset removes the value for key so it validates as absent.
func (s *State) Unset(key string) error {
	if _, ok := s.form.Field(key); !ok {
		return fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	delete(s.issues, key)
	return nil
}

// Clear empties every field and drops all issues and server errors.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.form.Keys() {
		s.values[key] = ""
	}
	s.issues = make(map[string]validation.Issue)
	s.serverErrs = make(map[string][]string)
	s.formErrs = nil
}

// Reset restores initial values and drops all issues and server errors.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// ValidateField validates a single field and records the outcome.
func (s *State) ValidateField(key string) (*validation.Issue, error) {
	field, ok := s.form.Field(key)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownField, key)
	}
	s.mu.Lock()
	issue := s.validateLocked(field)
	s.mu.Unlock()

	s.notify(outcome{field: field, issue: issue})
	return issue, nil
}

// Validate runs every field through the validator, records the outcomes and
// returns them in declaration order.
func (s *State) Validate() validation.Report {
	fields := s.form.Fields()
	outcomes := make([]outcome, 0, len(fields))

	var report validation.Report
	s.mu.Lock()
	for _, field := range fields {
		issue := s.validateLocked(field)
		if issue != nil {
			report.Issues = append(report.Issues, *issue)
		}
		outcomes = append(outcomes, outcome{field: field, issue: issue})
	}
	s.mu.Unlock()

	s.logger.Debug().
		Str("form", s.form.ID).
		Int("issues", len(report.Issues)).
		Msg("form validated")
	s.notify(outcomes...)
	return report
}

// Valid reports whether the last recorded outcomes contain no issues and no
// server errors. Call Validate first to cover untouched fields.
func (s *State) Valid() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.issues) == 0 && len(s.serverErrs) == 0 && len(s.formErrs) == 0
}

// Issue returns the last recorded issue for key.
func (s *State) Issue(key string) *validation.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	issue, ok := s.issues[key]
	if !ok {
		return nil
	}
	return &issue
}

// Issues returns a copy of the recorded issues keyed by field.
func (s *State) Issues() map[string]validation.Issue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]validation.Issue, len(s.issues))
	for k, v := range s.issues {
		out[k] = v
	}
	return out
}

// Values returns a copy of the present values.
func (s *State) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

func (s *State) resetLocked() {
	s.values = make(map[string]string, s.form.Len())
	s.issues = make(map[string]validation.Issue)
	s.serverErrs = make(map[string][]string)
	s.formErrs = nil
	for _, field := range s.form.Fields() {
		if value, ok := s.prefill[field.Key]; ok {
			s.values[field.Key] = sanitizeValue(s.sanitizer, field, value)
			continue
		}
		if field.InitialValue != "" {
			s.values[field.Key] = sanitizeValue(s.sanitizer, field, field.InitialValue)
		}
	}
}

// outcome is one validation result waiting to be delivered to observers.
type outcome struct {
	field model.Field
	issue *validation.Issue
}

// validateLocked validates field and records the result. Callers hold s.mu
// and deliver the outcome with notify after releasing it.
func (s *State) validateLocked(field model.Field) *validation.Issue {
	var value *string
	if raw, ok := s.values[field.Key]; ok {
		value = &raw
	}
	issue := s.validator.Validate(field, value)
	if issue != nil {
		s.issues[field.Key] = *issue
		s.logger.Debug().
			Str("form", s.form.ID).
			Str("field", field.Key).
			Str("kind", string(issue.Kind)).
			Msg("field rejected")
	} else {
		delete(s.issues, field.Key)
	}
	return issue
}

// notify runs observers without holding s.mu, so they may read the state.
func (s *State) notify(outcomes ...outcome) {
	for _, o := range outcomes {
		for _, observer := range s.observers {
			observer.Observe(s.form.ID, o.field, o.issue)
		}
	}
}
