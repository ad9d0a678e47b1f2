package form

import (
	"strings"
)

// ApplyErrors merges externally produced error messages (for example a
// backend's 422 payload) into the state. Paths may use JSON pointer or
// dotted notation and common envelope segments (body, data, payload) are
// ignored. Paths that do not resolve to a field key become form-level
// errors so messages are never lost.
func (s *State) ApplyErrors(payload map[string][]string) {
	if len(payload) == 0 {
		return
	}
	keys := make(map[string]struct{}, s.form.Len())
	for _, key := range s.form.Keys() {
		keys[key] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for rawPath, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		key, ok := mapErrorPath(rawPath, keys)
		if !ok {
			s.formErrs = append(s.formErrs, normalized...)
			continue
		}
		s.serverErrs[key] = normalizeMessages(append(s.serverErrs[key], normalized...))
	}
	s.formErrs = normalizeMessages(s.formErrs)
}

// ErrorsFor returns the messages for key: the validation issue first, then
// server-provided messages.
func (s *State) ErrorsFor(key string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []string
	if issue, ok := s.issues[key]; ok {
		out = append(out, issue.Message)
	}
	out = append(out, s.serverErrs[key]...)
	return normalizeMessages(out)
}

// FormErrors returns messages not attached to any field.
func (s *State) FormErrors() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.formErrs...)
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

func mapErrorPath(raw string, keys map[string]struct{}) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if isFormLevelKey(trimmed) {
		return "", false
	}
	if _, ok := keys[trimmed]; ok {
		return trimmed, true
	}

	segments := dropWrapperSegments(parsePathSegments(trimmed))
	if len(segments) == 0 {
		return "", false
	}
	if joined := strings.Join(segments, "."); joined != "" {
		if _, ok := keys[joined]; ok {
			return joined, true
		}
	}
	for _, segment := range segments {
		if _, ok := keys[segment]; ok {
			return segment, true
		}
	}
	return "", false
}

func parsePathSegments(path string) []string {
	clean := strings.TrimSpace(path)
	for strings.HasPrefix(clean, "#") || strings.HasPrefix(clean, "/") || strings.HasPrefix(clean, ".") || strings.HasPrefix(clean, "$") {
		clean = strings.TrimLeft(clean, "#/.$")
	}

	replacer := strings.NewReplacer("[", ".", "]", "", "//", "/")
	clean = strings.Trim(replacer.Replace(clean), "./")
	if clean == "" {
		return nil
	}

	parts := strings.FieldsFunc(clean, func(r rune) bool {
		return r == '.' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		segment := strings.TrimSpace(part)
		if segment == "" {
			continue
		}
		segment = strings.ReplaceAll(segment, "~1", "/")
		segment = strings.ReplaceAll(segment, "~0", "~")
		out = append(out, segment)
	}
	return out
}

func dropWrapperSegments(segments []string) []string {
	wrappers := map[string]struct{}{
		"body":       {},
		"request":    {},
		"payload":    {},
		"data":       {},
		"attributes": {},
		"values":     {},
	}
	out := segments
	for len(out) > 0 {
		if _, ok := wrappers[strings.ToLower(out[0])]; ok {
			out = out[1:]
			continue
		}
		break
	}
	return out
}

func isFormLevelKey(key string) bool {
	switch strings.ToLower(strings.TrimSpace(key)) {
	case "", ".", "/", "#", "$", "form", "base", "__all__", "non_field_errors", "non-field-errors":
		return true
	default:
		return false
	}
}
