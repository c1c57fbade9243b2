package http

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"payslip/internal/core"
	applog "payslip/internal/log"
	"payslip/internal/slip"
)

type (
	slotView struct {
		Company string
		Step    int
		Size    int
		Names   []string
	}

	recordView struct {
		Index  int
		Name   string
		Email  string
		Amount string
	}

	reviewView struct {
		Company string
		Records []recordView
	}

	resultView struct {
		Name    string
		Email   string
		Sent    bool
		Message string
	}

	resultsView struct {
		Company string
		Results []resultView
	}
)

// handleIndex renders the current phase: the next slot form while
// collecting, the review table once the batch is complete.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	records, cursor, size, ready := s.service.Snapshot()
	if !ready {
		s.render(w, r, "slot.html", slotView{
			Company: s.company,
			Step:    cursor + 1,
			Size:    size,
			Names:   s.service.Roster(),
		})
		return
	}

	s.render(w, r, "review.html", reviewView{
		Company: s.company,
		Records: recordViews(records),
	})
}

func (s *Server) handleSubmitSlot(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	name := strings.TrimSpace(r.Form.Get("name"))
	cents, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		s.clientError(w, r, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}

	if err := s.service.SubmitSlot(r.Context(), name, core.Money{Cents: cents}); err != nil {
		s.transitionError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAmend(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	index, err := strconv.Atoi(strings.TrimSpace(r.Form.Get("index")))
	if err != nil {
		s.clientError(w, r, http.StatusUnprocessableEntity, "Invalid record index")
		return
	}
	cents, err := core.ParseDecimalToCents(strings.TrimSpace(r.Form.Get("amount")))
	if err != nil {
		s.clientError(w, r, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}

	if err := s.service.Amend(r.Context(), index, core.Money{Cents: cents}); err != nil {
		s.transitionError(w, r, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDispatch processes the finalized batch and renders one notice
// per record, failures included.
func (s *Server) handleDispatch(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}

	outcomes, err := s.service.Dispatch(r.Context())
	if err != nil {
		s.transitionError(w, r, err)
		return
	}

	s.render(w, r, "results.html", resultsView{
		Company: s.company,
		Results: resultViews(outcomes),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if !requirePost(w, r) {
		return
	}
	s.service.Reset()
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// transitionError maps state machine errors onto HTTP statuses: phase
// violations are conflicts, bad input is unprocessable.
func (s *Server) transitionError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrCollectionComplete):
		s.clientError(w, r, http.StatusConflict, "All slots are already collected")
	case errors.Is(err, core.ErrCollectionIncomplete):
		s.clientError(w, r, http.StatusConflict, "Collection is not complete yet")
	case errors.Is(err, core.ErrUnknownName):
		s.clientError(w, r, http.StatusUnprocessableEntity, "Unknown candidate name")
	case errors.Is(err, core.ErrIndexOutOfRange):
		s.clientError(w, r, http.StatusUnprocessableEntity, "Record index out of range")
	case errors.Is(err, core.ErrInvalidAmount):
		s.clientError(w, r, http.StatusUnprocessableEntity, "Invalid amount")
	default:
		slog.ErrorContext(r.Context(), "Unexpected transition error",
			applog.FieldComponent, applog.ComponentHTTP,
			applog.FieldError, err)
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}

func (s *Server) clientError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	slog.WarnContext(r.Context(), "Rejected request",
		applog.FieldComponent, applog.ComponentHTTP,
		applog.FieldStatusCode, status,
		"reason", msg,
		applog.FieldPath, r.URL.Path)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		http.Error(w, "Templates unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template render failed",
			applog.FieldComponent, applog.ComponentTemplate,
			"template", name,
			applog.FieldError, err)
	}
}

func requirePost(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return false
	}
	return true
}

func recordViews(records []core.Record) []recordView {
	views := make([]recordView, len(records))
	for i, rec := range records {
		views[i] = recordView{
			Index:  i,
			Name:   rec.Name,
			Email:  rec.Email,
			Amount: formatDecimal(rec.Amount.Cents),
		}
	}
	return views
}

func resultViews(outcomes []slip.Outcome) []resultView {
	views := make([]resultView, len(outcomes))
	for i, o := range outcomes {
		v := resultView{Name: o.Record.Name, Email: o.Record.Email, Sent: o.Sent()}
		if o.Sent() {
			v.Message = "Salary slip sent to " + o.Record.Email
		} else {
			v.Message = "Failed to send salary slip for " + o.Record.Name
		}
		views[i] = v
	}
	return views
}

// formatDecimal renders cents as a plain decimal string for form inputs.
func formatDecimal(cents int64) string {
	return strconv.FormatInt(cents/100, 10) + "." + strconv.FormatInt(cents%100/10, 10) + strconv.FormatInt(cents%10, 10)
}
