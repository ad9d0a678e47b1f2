package server

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

type formSummary struct {
	ID     string `json:"id"`
	Title  string `json:"title,omitempty"`
	Fields int    `json:"fields"`
}

type formResponse struct {
	ID     string        `json:"id"`
	Title  string        `json:"title,omitempty"`
	Fields []fieldOutput `json:"fields"`
}

type fieldOutput struct {
	model.Field
	KeyboardType model.KeyboardType `json:"keyboardType"`
	DisplayHint  string             `json:"displayHint,omitempty"`
	Layout       string             `json:"layout,omitempty"`
}

type validateRequest struct {
	Values map[string]*string `json:"values"`
}

type validateResponse struct {
	Valid  bool               `json:"valid"`
	Issues []validation.Issue `json:"issues,omitempty"`
	Values map[string]string  `json:"values,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{"status": "ok"})
}

func (s *Server) listForms(w http.ResponseWriter, r *http.Request) {
	ids := s.store.IDs()
	out := make([]formSummary, 0, len(ids))
	for _, id := range ids {
		f, _ := s.store.Form(id)
		out = append(out, formSummary{ID: f.ID, Title: f.Title, Fields: f.Len()})
	}
	render.JSON(w, r, out)
}

func (s *Server) getForm(w http.ResponseWriter, r *http.Request) {
	f, ok := s.lookup(w, r)
	if !ok {
		return
	}

	resp := formResponse{ID: f.ID, Title: f.Title}
	for _, field := range f.Fields() {
		resp.Fields = append(resp.Fields, fieldOutput{
			Field:        field,
			KeyboardType: field.KeyboardType(),
			DisplayHint:  field.DisplayHint(),
			Layout:       field.Layout(),
		})
	}
	render.JSON(w, r, resp)
}

func (s *Server) validateForm(w http.ResponseWriter, r *http.Request) {
	f, ok := s.lookup(w, r)
	if !ok {
		return
	}

	var req validateRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		s.logger.Debug().Err(err).Str("form", f.ID).Msg("decode validate request")
		writeError(w, r, http.StatusBadRequest, "request body must be a JSON object")
		return
	}

	state := form.New(f, s.stateOptions()...)
	for _, key := range f.Keys() {
		if err := state.Unset(key); err != nil {
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
	}
	for key, value := range req.Values {
		if value == nil {
			continue
		}
		if _, err := state.Set(key, *value); err != nil {
			if errors.Is(err, form.ErrUnknownField) {
				writeError(w, r, http.StatusBadRequest, err.Error())
				return
			}
			writeError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
	}

	report := state.Validate()
	resp := validateResponse{
		Valid:  report.Valid(),
		Issues: report.Issues,
		Values: state.Values(),
	}
	if !resp.Valid {
		s.logger.Info().Err(report.Err()).Str("form", f.ID).Msg("submission rejected")
		render.Status(r, http.StatusUnprocessableEntity)
	}
	render.JSON(w, r, resp)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (model.Form, bool) {
	id := chi.URLParam(r, "formID")
	f, ok := s.store.Form(id)
	if !ok {
		writeError(w, r, http.StatusNotFound, "form not found: "+id)
		return model.Form{}, false
	}
	return f, true
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, errorResponse{Error: msg})
}
