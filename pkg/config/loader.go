package config

import (
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/m-mizutani/goerr/v2"

	"github.com/goliatone/go-formfield/pkg/model"
)

type documentFile struct {
	ID     string      `json:"id" yaml:"id" toml:"id"`
	Title  string      `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Fields []fieldFile `json:"fields" yaml:"fields" toml:"fields"`
}

type fieldFile struct {
	Key          string   `json:"key" yaml:"key" toml:"key"`
	Label        string   `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
	Type         string   `json:"type,omitempty" yaml:"type,omitempty" toml:"type,omitempty"`
	Required     bool     `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
	InitialValue string   `json:"initialValue,omitempty" yaml:"initialValue,omitempty" toml:"initialValue,omitempty"`
	Hint         string   `json:"hint,omitempty" yaml:"hint,omitempty" toml:"hint,omitempty"`
	Placeholder  string   `json:"placeholder,omitempty" yaml:"placeholder,omitempty" toml:"placeholder,omitempty"`
	Options      []string `json:"options,omitempty" yaml:"options,omitempty" toml:"options,omitempty"`
	DateFormat   string   `json:"dateFormat,omitempty" yaml:"dateFormat,omitempty" toml:"dateFormat,omitempty"`
	Validator    string   `json:"validator,omitempty" yaml:"validator,omitempty" toml:"validator,omitempty"`
}

// Option configures a Loader.
type Option func(*Loader)

// WithCustomValidator registers fn under name so declarations can reference
// it through the `validator` attribute. Later registrations win.
func WithCustomValidator(name string, fn model.CustomFunc) Option {
	return func(l *Loader) {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" || fn == nil {
			return
		}
		l.validators[trimmed] = fn
	}
}

// Loader parses declaration files into model.Form values.
type Loader struct {
	validators map[string]model.CustomFunc
}

// NewLoader constructs a Loader.
func NewLoader(options ...Option) *Loader {
	l := &Loader{validators: make(map[string]model.CustomFunc)}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	return l
}

// Validators returns the registered validator names in sorted order.
func (l *Loader) Validators() []string {
	names := make([]string, 0, len(l.validators))
	for name := range l.validators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse decodes a single declaration. source is only used in error values.
func (l *Loader) Parse(data []byte, format Format, source string) (model.Form, error) {
	if strings.TrimSpace(string(data)) == "" {
		return model.Form{}, goerr.Wrap(ErrEmptyDocument, "cannot parse declaration", goerr.V(PathKey, source))
	}

	var doc documentFile
	if err := decode(data, format, &doc); err != nil {
		return model.Form{}, goerr.Wrap(err, "failed to decode declaration", goerr.V(PathKey, source))
	}
	return l.build(doc, source)
}

// LoadFile reads and parses the declaration at path.
func (l *Loader) LoadFile(path string) (model.Form, error) {
	// #nosec G304 - path is expected to be provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Form{}, goerr.Wrap(err, "failed to read declaration", goerr.V(PathKey, path))
	}
	return l.Parse(data, FormatFromPath(path), path)
}

// LoadFS walks fsys and parses every .yaml, .yml, .json and .toml file. A nil
// filesystem yields an empty store.
func (l *Loader) LoadFS(fsys fs.FS) (*Store, error) {
	store := NewStore()
	if fsys == nil {
		return store, nil
	}

	err := fs.WalkDir(fsys, ".", func(path string, entry fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if entry.IsDir() || !isDeclarationFile(path) {
			return nil
		}

		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return goerr.Wrap(err, "failed to read declaration", goerr.V(PathKey, path))
		}
		form, err := l.Parse(data, FormatFromPath(path), path)
		if err != nil {
			return err
		}
		return store.Add(form)
	})
	if err != nil {
		return nil, err
	}
	return store, nil
}

func (l *Loader) build(doc documentFile, source string) (model.Form, error) {
	id := strings.TrimSpace(doc.ID)
	if id == "" {
		return model.Form{}, goerr.Wrap(ErrMissingFormID, "declaration has no id", goerr.V(PathKey, source))
	}

	fields := make([]model.Field, 0, len(doc.Fields))
	for _, raw := range doc.Fields {
		fieldType, ok := model.ParseFieldType(raw.Type)
		if !ok {
			return model.Form{}, goerr.Wrap(ErrInvalidFieldType, "unsupported field type",
				goerr.V(PathKey, source),
				goerr.V(FormIDKey, id),
				goerr.V(FieldKeyKey, raw.Key),
				goerr.V(FieldTypeKey, raw.Type))
		}

		field := model.Field{
			Key:             raw.Key,
			Label:           raw.Label,
			Type:            fieldType,
			Required:        raw.Required,
			InitialValue:    raw.InitialValue,
			Hint:            raw.Hint,
			Placeholder:     raw.Placeholder,
			DropdownOptions: raw.Options,
			DateFormat:      raw.DateFormat,
			Validator:       strings.TrimSpace(raw.Validator),
		}
		if field.Validator != "" {
			fn, ok := l.validators[field.Validator]
			if !ok {
				return model.Form{}, goerr.Wrap(ErrUnknownValidator, "validator is not registered",
					goerr.V(PathKey, source),
					goerr.V(FormIDKey, id),
					goerr.V(FieldKeyKey, raw.Key),
					goerr.V(ValidatorKey, field.Validator))
			}
			field.Custom = fn
		}
		fields = append(fields, field)
	}

	form, err := model.NewForm(id, fields...)
	if err != nil {
		return model.Form{}, goerr.Wrap(err, "invalid form declaration",
			goerr.V(PathKey, source),
			goerr.V(FormIDKey, id))
	}
	return form.WithTitle(doc.Title), nil
}

// Encode renders form as a declaration document in the requested format.
// Custom functions are emitted by name only.
func Encode(form model.Form, format Format) ([]byte, error) {
	doc := documentFile{ID: form.ID, Title: form.Title}
	for _, field := range form.Fields() {
		doc.Fields = append(doc.Fields, fieldFile{
			Key:          field.Key,
			Label:        field.Label,
			Type:         field.Type.String(),
			Required:     field.Required,
			InitialValue: field.InitialValue,
			Hint:         field.Hint,
			Placeholder:  field.Placeholder,
			Options:      field.DropdownOptions,
			DateFormat:   field.DateFormat,
			Validator:    field.Validator,
		})
	}
	return encode(doc, format)
}

// Store holds forms keyed by id. It is safe for concurrent use.
type Store struct {
	mu    sync.RWMutex
	forms map[string]model.Form
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{forms: make(map[string]model.Form)}
}

// Add registers form; ids must be unique.
func (s *Store) Add(form model.Form) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.ID]; exists {
		return goerr.Wrap(ErrDuplicateFormID, "form already registered", goerr.V(FormIDKey, form.ID))
	}
	s.forms[form.ID] = form
	return nil
}

// Form returns the form registered under id.
func (s *Store) Form(id string) (model.Form, bool) {
	if s == nil {
		return model.Form{}, false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[id]
	return form, ok
}

// IDs returns the registered ids in sorted order.
func (s *Store) IDs() []string {
	if s == nil {
		return nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Empty reports whether the store holds any forms.
func (s *Store) Empty() bool {
	return s == nil || len(s.IDs()) == 0
}
