package form

import (
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Observer receives every validation outcome produced by a State. A nil
// issue means the field passed. Observers run after the State releases its
// lock, so they may call back into it.
type Observer interface {
	Observe(formID string, field model.Field, issue *validation.Issue)
}

// ObserverFunc adapts a function into an Observer.
type ObserverFunc func(formID string, field model.Field, issue *validation.Issue)

// Observe calls the underlying function.
func (fn ObserverFunc) Observe(formID string, field model.Field, issue *validation.Issue) {
	fn(formID, field, issue)
}

// Option configures a State.
type Option func(*State)

// WithValidator overrides the validator (default: validation.New()).
func WithValidator(v *validation.Validator) Option {
	return func(s *State) {
		if v != nil {
			s.validator = v
		}
	}
}

// WithLogger attaches a logger; validation outcomes are logged at debug.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// WithObserver registers an observer. Multiple observers run in order.
func WithObserver(observer Observer) Option {
	return func(s *State) {
		if observer != nil {
			s.observers = append(s.observers, observer)
		}
	}
}

// WithSanitizer applies sanitizer to free-text values as they are stored.
func WithSanitizer(sanitizer Sanitizer) Option {
	return func(s *State) {
		s.sanitizer = sanitizer
	}
}

// WithValidateOnChange toggles validation inside Set. Enabled by default.
func WithValidateOnChange(enabled bool) Option {
	return func(s *State) {
		s.validateOnChange = enabled
	}
}

// WithPrefill seeds values that take precedence over declared initial
// values. Unknown keys are ignored.
func WithPrefill(values map[string]string) Option {
	return func(s *State) {
		if len(values) == 0 {
			return
		}
		s.prefill = make(map[string]string, len(values))
		for k, v := range values {
			s.prefill[k] = v
		}
	}
}
