package openapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formfield/pkg/model"
)

var (
	// ErrOperationNotFound is returned when no operation matches the id.
	ErrOperationNotFound = errors.New("openapi: operation not found")
	// ErrNoRequestBody is returned when an operation declares no usable body.
	ErrNoRequestBody = errors.New("openapi: operation has no request body schema")
)

// Load parses raw OpenAPI JSON or YAML.
func Load(ctx context.Context, raw []byte) (*openapi3.T, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	return doc, nil
}

// LoadFile parses the OpenAPI document at path, resolving local references.
func LoadFile(ctx context.Context, path string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	loader.IsExternalRefsAllowed = true
	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("openapi: load %s: %w", path, err)
	}
	return doc, nil
}

// Detect reports whether raw looks like an OpenAPI/Swagger document.
func Detect(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}
	if trimmed[0] == '{' {
		var payload map[string]any
		if err := json.Unmarshal(trimmed, &payload); err == nil {
			if _, ok := payload["openapi"]; ok {
				return true
			}
			if _, ok := payload["swagger"]; ok {
				return true
			}
		}
	}
	lower := strings.ToLower(string(trimmed))
	return strings.Contains(lower, "openapi:") || strings.Contains(lower, "swagger:")
}

// OperationIDs lists operations that carry a request body, sorted.
func OperationIDs(doc *openapi3.T) []string {
	var ids []string
	forEachOperation(doc, func(id string, op *openapi3.Operation) {
		if requestSchema(op) != nil {
			ids = append(ids, id)
		}
	})
	sort.Strings(ids)
	return ids
}

// FormFromOperation converts the request body of operationID into a form.
// Operations without an operationId are addressed as "<method>:<path>" in
// lower-case method form.
func FormFromOperation(doc *openapi3.T, operationID string) (model.Form, error) {
	var target *openapi3.Operation
	forEachOperation(doc, func(id string, op *openapi3.Operation) {
		if id == operationID {
			target = op
		}
	})
	if target == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrOperationNotFound, operationID)
	}

	schema := requestSchema(target)
	if schema == nil {
		return model.Form{}, fmt.Errorf("%w: %q", ErrNoRequestBody, operationID)
	}

	fields, err := fieldsFromSchema(schema)
	if err != nil {
		return model.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}

	form, err := model.NewForm(operationID, fields...)
	if err != nil {
		return model.Form{}, fmt.Errorf("openapi: operation %q: %w", operationID, err)
	}
	title := target.Summary
	if title == "" {
		title = schema.Title
	}
	return form.WithTitle(title), nil
}

func forEachOperation(doc *openapi3.T, fn func(id string, op *openapi3.Operation)) {
	if doc == nil || doc.Paths == nil {
		return
	}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			if op == nil {
				continue
			}
			id := op.OperationID
			if id == "" {
				id = strings.ToLower(method) + ":" + path
			}
			fn(id, op)
		}
	}
}

func requestSchema(op *openapi3.Operation) *openapi3.Schema {
	if op == nil || op.RequestBody == nil || op.RequestBody.Value == nil {
		return nil
	}
	content := op.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded", "multipart/form-data"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt != nil && mt.Schema != nil && mt.Schema.Value != nil {
			return mt.Schema.Value
		}
	}
	return nil
}
