package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"shifttrack.service/internal/core"
	"shifttrack.service/internal/core/model"
	"shifttrack.service/internal/export"
)

type ShiftHandler struct {
	Service *core.ShiftService
}

type ClockRequest struct {
	Notes string `json:"notes"`
}

type ImportRequest struct {
	Entries []model.TimeEntry `json:"entries"`
}

type SummaryEmailRequest struct {
	Email string `json:"email"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// Clock toggles the open shift: clock-in when none is open, clock-out otherwise.
func (h *ShiftHandler) Clock(w http.ResponseWriter, r *http.Request) {
	var req ClockRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
	}

	entry, err := h.Service.Clock(r.Context(), req.Notes)
	if err != nil {
		http.Error(w, "Service error processing clock event", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *ShiftHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	from, to, err := periodFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.Service.Entries(r.Context(), from, to)
	if err != nil {
		http.Error(w, "Service error listing entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// CreateEntry accepts a manual entry. An omitted clockOut means the shift is
// open; the same validation gate as edits applies.
func (h *ShiftHandler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.SaveEntry(r.Context(), entry); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// UpdateEntry replaces an entry's fields wholesale.
func (h *ShiftHandler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	var entry model.TimeEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	entry.ID = mux.Vars(r)["id"]

	if err := h.Service.SaveEntry(r.Context(), entry); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, entry)
}

func (h *ShiftHandler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteEntry(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ImportEntries bulk-merges a collection into the store, incoming winning on
// id collision. Accepts a JSON body or a CSV export from another device.
func (h *ShiftHandler) ImportEntries(w http.ResponseWriter, r *http.Request) {
	var incoming []model.TimeEntry

	if strings.HasPrefix(r.Header.Get("Content-Type"), "text/csv") {
		entries, err := export.DecodeEntries(r.Body)
		if err != nil {
			http.Error(w, "Invalid CSV body", http.StatusBadRequest)
			return
		}
		incoming = entries
	} else {
		var req ImportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}
		incoming = req.Entries
	}

	merged, err := h.Service.ImportEntries(r.Context(), incoming)
	if err != nil {
		http.Error(w, "Service error importing entries", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"imported": len(incoming), "total": merged})
}

func (h *ShiftHandler) Summary(w http.ResponseWriter, r *http.Request) {
	from, to, err := periodFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.Service.Summary(r.Context(), from, to)
	if err != nil {
		http.Error(w, "Service error computing summary", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func (h *ShiftHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	from, to, err := periodFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.Service.Entries(r.Context(), from, to)
	if err != nil {
		http.Error(w, "Service error exporting entries", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="shifts.csv"`)
	if err := export.EncodeEntries(w, entries); err != nil {
		http.Error(w, "Service error encoding CSV", http.StatusInternalServerError)
	}
}

func (h *ShiftHandler) GetRates(w http.ResponseWriter, r *http.Request) {
	rates, err := h.Service.Rates(r.Context())
	if err != nil {
		http.Error(w, "Service error loading rates", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, rates)
}

func (h *ShiftHandler) UpdateRates(w http.ResponseWriter, r *http.Request) {
	var rates model.PayRateConfig
	if err := json.NewDecoder(r.Body).Decode(&rates); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Service.UpdateRates(r.Context(), rates); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, rates)
}

// EmailSummary queues a pay-summary mail for the given period.
func (h *ShiftHandler) EmailSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Email == "" {
		http.Error(w, "email is required", http.StatusBadRequest)
		return
	}

	from, err := parseStamp(req.From)
	if err != nil {
		http.Error(w, "from must be RFC 3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := parseStamp(req.To)
	if err != nil {
		http.Error(w, "to must be RFC 3339 or YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := h.Service.RequestSummaryEmail(r.Context(), req.Email, from, to); err != nil {
		http.Error(w, "Service error queueing summary email", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]any{"message": "Summary email queued for asynchronous delivery."})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrEntryNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, core.ErrInvalidEntry),
		errors.Is(err, core.ErrOverlappingEntry),
		errors.Is(err, core.ErrOpenEntryNotLatest),
		errors.Is(err, core.ErrInvalidRates):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "Service error", http.StatusInternalServerError)
	}
}

// periodFromQuery reads from/to query params. Either bound may be omitted;
// the defaults cover the whole collection.
func periodFromQuery(r *http.Request) (time.Time, time.Time, error) {
	from := time.Time{}
	to := time.Now().AddDate(100, 0, 0)

	if v := r.URL.Query().Get("from"); v != "" {
		parsed, err := parseStamp(v)
		if err != nil {
			return from, to, errors.New("from must be RFC 3339 or YYYY-MM-DD")
		}
		from = parsed
	}
	if v := r.URL.Query().Get("to"); v != "" {
		parsed, err := parseStamp(v)
		if err != nil {
			return from, to, errors.New("to must be RFC 3339 or YYYY-MM-DD")
		}
		to = parsed
	}
	return from, to, nil
}

// parseStamp accepts RFC 3339 instants or plain dates, interpreted at local
// midnight so day boundaries match the pay computation.
func parseStamp(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02", s, time.Local)
}
