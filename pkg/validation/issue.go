package validation

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Kind classifies why a value was rejected so programmatic consumers do not
// need to match on message text.
type Kind string

const (
	KindRequired   Kind = "required"
	KindFormat     Kind = "format"
	KindLength     Kind = "length"
	KindChecksum   Kind = "checksum"
	KindMembership Kind = "membership"
	KindCustom     Kind = "custom"
)

// ErrInvalidForm is the sentinel wrapped by Report.Err.
var ErrInvalidForm = goerr.New("invalid form")

// Context keys attached to Report.Err.
const (
	FieldKeysKey  = "field_keys"
	IssueCountKey = "issue_count"
)

// Issue describes one rejected field value. A nil *Issue means the value is
// valid.
type Issue struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Error returns the user-facing message.
func (i *Issue) Error() string {
	if i == nil {
		return ""
	}
	return i.Message
}

// MessageOf returns the message for an issue, or "" when valid.
func MessageOf(issue *Issue) string {
	if issue == nil {
		return ""
	}
	return issue.Message
}

// Report aggregates per-field outcomes in form declaration order.
type Report struct {
	Issues []Issue `json:"issues,omitempty"`
}

// Valid reports whether no field was rejected.
func (r Report) Valid() bool {
	return len(r.Issues) == 0
}

// Issue returns the issue recorded for key, if any.
func (r Report) Issue(key string) (Issue, bool) {
	for _, issue := range r.Issues {
		if issue.Field == key {
			return issue, true
		}
	}
	return Issue{}, false
}

// Messages maps field keys to their message.
func (r Report) Messages() map[string]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string]string, len(r.Issues))
	for _, issue := range r.Issues {
		out[issue.Field] = issue.Message
	}
	return out
}

// Err converts the report into an error wrapping ErrInvalidForm, or nil when
// the report is valid.
func (r Report) Err() error {
	if r.Valid() {
		return nil
	}
	keys := make([]string, 0, len(r.Issues))
	for _, issue := range r.Issues {
		keys = append(keys, issue.Field)
	}
	return goerr.Wrap(ErrInvalidForm, "form validation failed",
		goerr.V(FieldKeysKey, strings.Join(keys, ",")),
		goerr.V(IssueCountKey, len(r.Issues)))
}
