// Package api exposes HTTP handlers for the activity service.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/erikadonato/to-do-list/internal/domain"
)

// Route paths served by Handler.
const (
	RouteSearch = "/activity/search"
	RouteSave   = "/activity/save"
	RouteUpdate = "/activity/update"
	RouteDelete = "/activity/delete"
	RouteHealth = "/healthz"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
	logger  *slog.Logger
}

// NewHandler builds a Handler. A nil logger uses slog.Default.
func NewHandler(service *domain.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc(RouteSearch, h.only(http.MethodGet, h.searchActivity))
	mux.HandleFunc(RouteSave, h.only(http.MethodPost, h.saveActivity))
	mux.HandleFunc(RouteUpdate, h.only(http.MethodPatch, h.updateActivity))
	mux.HandleFunc(RouteDelete, h.only(http.MethodDelete, h.deleteActivity))
	mux.HandleFunc(RouteHealth, healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) only(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			writeMessage(w, http.StatusMethodNotAllowed, "unsupported method")
			return
		}
		next(w, r)
	}
}

func (h *Handler) searchActivity(w http.ResponseWriter, r *http.Request) {
	v := fields{location: "query"}
	id := v.queryInt(r.URL.Query().Get("id"), "id")
	if !v.ok() {
		writeValidation(w, v)
		return
	}

	result, err := h.service.SearchActivityByID(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) saveActivity(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	v := fields{location: "body"}
	title := v.bodyString(body, "title", true)
	subtitle := v.bodyString(body, "subtitle", true)
	pending := v.bodyBool(body, "pending", true)
	if !v.ok() {
		writeValidation(w, v)
		return
	}

	result, err := h.service.SaveActivity(r.Context(), domain.SaveActivityInput{
		Title:    *title,
		Subtitle: *subtitle,
		Pending:  *pending,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) updateActivity(w http.ResponseWriter, r *http.Request) {
	body, ok := decodeBody(w, r)
	if !ok {
		return
	}

	v := fields{location: "body"}
	input := domain.UpdateActivityInput{
		ID:       v.bodyInt(body, "id"),
		Title:    v.bodyString(body, "title", false),
		Subtitle: v.bodyString(body, "subtitle", false),
		Pending:  v.bodyBool(body, "pending", false),
	}
	if !v.ok() {
		writeValidation(w, v)
		return
	}

	result, err := h.service.UpdateActivity(r.Context(), input)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) deleteActivity(w http.ResponseWriter, r *http.Request) {
	v := fields{location: "query"}
	id := v.queryInt(r.URL.Query().Get("id"), "id")
	if !v.ok() {
		writeValidation(w, v)
		return
	}

	result, err := h.service.DeleteActivity(r.Context(), id)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// MessageResponse is the failure body for 404, 405 and 500 responses.
type MessageResponse struct {
	Message string `json:"message"`
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if domain.IsNotFound(err) {
		writeMessage(w, http.StatusNotFound, err.Error())
		return
	}
	h.logger.ErrorContext(r.Context(), "activity request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeMessage(w, http.StatusInternalServerError, err.Error())
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]json.RawMessage, bool) {
	var body map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body == nil {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: []FieldError{{
			Type:     "body",
			Msg:      "request body must be a JSON object",
			Location: "body",
		}}})
		return nil, false
	}
	return body, true
}

func writeValidation(w http.ResponseWriter, v fields) {
	writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: v.errs})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, MessageResponse{Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
