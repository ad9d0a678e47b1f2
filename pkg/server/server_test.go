package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formfield/pkg/config"
	"github.com/goliatone/go-formfield/pkg/metrics"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/server"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func newStore(t *testing.T) *config.Store {
	t.Helper()
	store := config.NewStore()
	signup := model.MustForm("signup",
		model.Field{Key: "email", Label: "Email", Type: model.FieldTypeEmail, Required: true},
		model.Field{Key: "plan", Label: "Plan", Type: model.FieldTypeDropdown, DropdownOptions: []string{"free", "pro"}, InitialValue: "free"},
		model.Field{Key: "bio", Label: "Bio", Type: model.FieldTypeMultiline},
	).WithTitle("Sign up")
	gt.NoError(t, store.Add(signup)).Required()
	gt.NoError(t, store.Add(model.MustForm("contact", model.Field{Key: "name", Label: "Name", Type: model.FieldTypeName}))).Required()
	return store
}

func newServer(t *testing.T, opts ...server.Option) *server.Server {
	t.Helper()
	srv, err := server.New(newStore(t), opts...)
	gt.NoError(t, err).Required()
	return srv
}

func do(t *testing.T, srv http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestNewRequiresStore(t *testing.T) {
	_, err := server.New(nil)
	gt.Error(t, err).Is(server.ErrNilStore)
}

func TestHealthz(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/healthz", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains(`"ok"`)
}

func TestListForms(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/forms", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got []struct {
		ID     string `json:"id"`
		Title  string `json:"title"`
		Fields int    `json:"fields"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)).Required()
	gt.Array(t, got).Length(2).Required()
	gt.Value(t, got[0].ID).Equal("contact")
	gt.Value(t, got[1].ID).Equal("signup")
	gt.Value(t, got[1].Title).Equal("Sign up")
	gt.Value(t, got[1].Fields).Equal(3)
}

func TestGetForm(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodGet, "/forms/signup", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got struct {
		ID     string `json:"id"`
		Fields []struct {
			Key          string   `json:"key"`
			Type         string   `json:"type"`
			Options      []string `json:"options"`
			KeyboardType string   `json:"keyboardType"`
		} `json:"fields"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)).Required()
	gt.Value(t, got.ID).Equal("signup")
	gt.Array(t, got.Fields).Length(3).Required()
	gt.Value(t, got.Fields[0].KeyboardType).Equal("emailAddress")
	gt.Value(t, got.Fields[1].Options).Equal([]string{"free", "pro"})

	rec = do(t, srv, http.MethodGet, "/forms/missing", "")
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestValidateAccepts(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/forms/signup/validate",
		`{"values":{"email":"ada@example.com","plan":"pro"}}`)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got struct {
		Valid  bool              `json:"valid"`
		Values map[string]string `json:"values"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)).Required()
	gt.Bool(t, got.Valid).True()
	gt.Value(t, got.Values).Equal(map[string]string{"email": "ada@example.com", "plan": "pro"})
}

func TestValidateRejects(t *testing.T) {
	rec := do(t, newServer(t), http.MethodPost, "/forms/signup/validate",
		`{"values":{"plan":"enterprise","email":null}}`)
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)

	var got struct {
		Valid  bool               `json:"valid"`
		Issues []validation.Issue `json:"issues"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)).Required()
	gt.Bool(t, got.Valid).False()
	gt.Value(t, got.Issues).Equal([]validation.Issue{
		{Field: "email", Kind: validation.KindRequired, Message: "Email is required"},
		{Field: "plan", Kind: validation.KindMembership, Message: validation.MsgInvalidOption},
	})
}

func TestValidateBadRequests(t *testing.T) {
	srv := newServer(t)

	rec := do(t, srv, http.MethodPost, "/forms/signup/validate", `{"values":{"nope":"x"}}`)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = do(t, srv, http.MethodPost, "/forms/signup/validate", `not json`)
	gt.Value(t, rec.Code).Equal(http.StatusBadRequest)

	rec = do(t, srv, http.MethodPost, "/forms/missing/validate", `{}`)
	gt.Value(t, rec.Code).Equal(http.StatusNotFound)
}

func TestValidateSanitizesEchoedValues(t *testing.T) {
	srv := newServer(t, server.WithSanitizedValues(true))
	rec := do(t, srv, http.MethodPost, "/forms/signup/validate",
		`{"values":{"email":"ada@example.com","bio":"<b>hi</b>"}}`)
	gt.Value(t, rec.Code).Equal(http.StatusOK)

	var got struct {
		Values map[string]string `json:"values"`
	}
	gt.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got)).Required()
	gt.Value(t, got.Values["bio"]).Equal("hi")
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	gt.NoError(t, err).Required()
	srv := newServer(t, server.WithMetrics(collector, reg))

	rec := do(t, srv, http.MethodPost, "/forms/signup/validate", `{"values":{"email":"bad"}}`)
	gt.Value(t, rec.Code).Equal(http.StatusUnprocessableEntity)

	invalid := testutil.ToFloat64(collector.Validations().WithLabelValues("signup", "email", metrics.ResultInvalid))
	gt.Value(t, invalid).Equal(1.0)

	rec = do(t, srv, http.MethodGet, "/metrics", "")
	gt.Value(t, rec.Code).Equal(http.StatusOK)
	gt.String(t, rec.Body.String()).Contains("formfield_validations_total")
}
