package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"shifttrack.service/internal/api/handler"
	"shifttrack.service/internal/core"
)

// NewRouter sets up the gorilla/mux router and defines all API routes.
func NewRouter(service *core.ShiftService) *mux.Router {

	shiftHandler := handler.ShiftHandler{
		Service: service,
	}

	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/clock", shiftHandler.Clock).Methods(http.MethodPost)
	api.HandleFunc("/entries", shiftHandler.ListEntries).Methods(http.MethodGet)
	api.HandleFunc("/entries", shiftHandler.CreateEntry).Methods(http.MethodPost)
	api.HandleFunc("/entries/import", shiftHandler.ImportEntries).Methods(http.MethodPost)
	api.HandleFunc("/entries/{id}", shiftHandler.UpdateEntry).Methods(http.MethodPut)
	api.HandleFunc("/entries/{id}", shiftHandler.DeleteEntry).Methods(http.MethodDelete)
	api.HandleFunc("/summary", shiftHandler.Summary).Methods(http.MethodGet)
	api.HandleFunc("/summary/email", shiftHandler.EmailSummary).Methods(http.MethodPost)
	api.HandleFunc("/export.csv", shiftHandler.ExportCSV).Methods(http.MethodGet)
	api.HandleFunc("/rates", shiftHandler.GetRates).Methods(http.MethodGet)
	api.HandleFunc("/rates", shiftHandler.UpdateRates).Methods(http.MethodPut)
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Service is operational."))
	}).Methods(http.MethodGet)

	return r
}
