package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

// Renderer drives a terminal session that fills a form.State one field at a
// time, re-prompting until each value passes validation.
type Renderer struct {
	driver            PromptDriver
	outputFormat      OutputFormat
	submitTransformer SubmitTransformer
	theme             Theme
	stateOptions      []form.Option
	confirmMessage    string
	logger            zerolog.Logger
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		driver:       NewSurveyDriver(),
		outputFormat: OutputFormatJSON,
		theme:        Theme{ErrorPrefix: "✗ "},
		logger:       zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Render prompts every field of f and returns the serialized values.
func (r *Renderer) Render(ctx context.Context, f model.Form, prefill map[string]string) ([]byte, error) {
	options := append([]form.Option{form.WithPrefill(prefill)}, r.stateOptions...)
	state := form.New(f, options...)
	if err := r.Run(ctx, state); err != nil {
		return nil, err
	}

	values := state.Values()
	if r.submitTransformer != nil {
		var err error
		values, err = r.submitTransformer(values)
		if err != nil {
			return nil, fmt.Errorf("tui: submit transformer: %w", err)
		}
	}
	return r.serialize(f, values)
}

// Run prompts every field of state's form in declaration order and finishes
// with a full validation pass.
func (r *Renderer) Run(ctx context.Context, state *form.State) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.driver == nil {
		return errors.New("tui: prompt driver is nil")
	}
	if state == nil {
		return errors.New("tui: state is nil")
	}

	f := state.Form()
	if f.Title != "" {
		_ = r.driver.Info(ctx, r.theme.InfoPrefix+f.Title)
	}
	for _, field := range f.Fields() {
		if err := r.promptField(ctx, state, field); err != nil {
			return err
		}
	}

	report := state.Validate()
	if !report.Valid() {
		return fmt.Errorf("%w: %w", ErrInvalidSubmission, report.Err())
	}
	if r.confirmMessage != "" {
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: r.confirmMessage, Default: true})
		if err != nil {
			return err
		}
		if !ok {
			return ErrAborted
		}
	}
	r.logger.Debug().Str("form", f.ID).Msg("tui session complete")
	return nil
}

func (r *Renderer) promptField(ctx context.Context, state *form.State, field model.Field) error {
	for {
		value, err := r.ask(ctx, state, field)
		if err != nil {
			return err
		}
		issue, err := r.store(state, field, value)
		if err != nil {
			return err
		}
		if issue == nil {
			return nil
		}
		r.logger.Debug().Str("field", field.Key).Str("kind", string(issue.Kind)).Msg("re-prompting")
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+issue.Message)
	}
}

func (r *Renderer) ask(ctx context.Context, state *form.State, field model.Field) (string, error) {
	label := field.DisplayLabel()
	help := field.DisplayHint()
	current, _ := state.Get(field.Key)

	switch field.Type.Normalize() {
	case model.FieldTypePassword:
		return r.driver.Password(ctx, InputConfig{Message: label, Help: help})
	case model.FieldTypeMultiline:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: current, Help: help})
	case model.FieldTypeDropdown:
		return r.askSelect(ctx, field, label, help, current)
	case model.FieldTypeDate, model.FieldTypeDateTime, model.FieldTypeTime:
		layout := field.Layout()
		return r.driver.Input(ctx, InputConfig{
			Message: fmt.Sprintf("%s (%s)", label, layout),
			Default: current,
			Help:    help,
			Validator: func(value string) error {
				if strings.TrimSpace(value) == "" {
					return nil
				}
				_, err := time.Parse(layout, strings.TrimSpace(value))
				return err
			},
		})
	default:
		return r.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
}

func (r *Renderer) askSelect(ctx context.Context, field model.Field, label, help, current string) (string, error) {
	options := field.DropdownOptions
	if len(options) == 0 {
		return r.driver.Input(ctx, InputConfig{Message: label, Default: current, Help: help})
	}
	for {
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      options,
			DefaultIndex: indexOf(options, current),
			Help:         help,
		})
		if err != nil {
			return "", err
		}
		if idx >= 0 && idx < len(options) {
			return options[idx], nil
		}
		_ = r.driver.Info(ctx, r.theme.ErrorPrefix+validation.MsgInvalidOption)
	}
}

// store writes value into state and returns the field's issue. Temporal
// values are parsed with the field layout and re-formatted so the stored
// string is canonical.
func (r *Renderer) store(state *form.State, field model.Field, value string) (*validation.Issue, error) {
	trimmed := strings.TrimSpace(value)
	if field.Type.IsTemporal() && trimmed != "" {
		parsed, err := time.Parse(field.Layout(), trimmed)
		if err != nil {
			return &validation.Issue{
				Field:   field.Key,
				Kind:    validation.KindFormat,
				Message: fmt.Sprintf("Please use the format %s", field.Layout()),
			}, nil
		}
		if _, err := state.SetTime(field.Key, parsed); err != nil {
			return nil, err
		}
	} else if _, err := state.Set(field.Key, value); err != nil {
		return nil, err
	}

	if state.ValidatesOnChange() {
		return state.Issue(field.Key), nil
	}
	return state.ValidateField(field.Key)
}

func (r *Renderer) serialize(f model.Form, values map[string]string) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		encoded := url.Values{}
		for key, value := range values {
			encoded.Set(key, value)
		}
		return []byte(encoded.Encode()), nil
	case OutputFormatPrettyText:
		return []byte(prettyPrint(f, values)), nil
	default:
		return json.Marshal(values)
	}
}

func prettyPrint(f model.Form, values map[string]string) string {
	var b strings.Builder
	seen := make(map[string]struct{}, len(values))
	for _, key := range f.Keys() {
		value, ok := values[key]
		if !ok {
			continue
		}
		seen[key] = struct{}{}
		fmt.Fprintf(&b, "%s=%s\n", key, value)
	}
	// Keys added by a submit transformer come last, sorted.
	var extra []string
	for key := range values {
		if _, ok := seen[key]; !ok {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		fmt.Fprintf(&b, "%s=%s\n", key, values[key])
	}
	return b.String()
}
