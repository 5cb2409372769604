package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/page"

	"github.com/gorilla/mux"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type LoadHistory interface {
	Recent(ctx context.Context, limit int) ([]domain.LoadEvent, error)
}

type BackendHealth interface {
	Health(ctx context.Context) (domain.Health, error)
}

type Handler struct {
	Pages   *page.Registry
	History LoadHistory
	Backend BackendHealth
	// Proxy serves /api/ when set.
	Proxy  http.Handler
	Logger *slog.Logger
}

func NewHandler(pages *page.Registry, history LoadHistory, backend BackendHealth, proxy http.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		Pages:   pages,
		History: history,
		Backend: backend,
		Proxy:   proxy,
		Logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/", h.home).Methods("GET")
	r.HandleFunc("/drilldown/{page}", h.drilldown).Methods("GET")
	r.HandleFunc("/pages/{id}", h.showPage).Methods("GET")
	r.HandleFunc("/pages/{id}/panels/{panel}", h.showPanel).Methods("GET")
	r.HandleFunc("/pages/{id}/panels/{panel}/refresh", h.refreshPanel).Methods("POST")
	r.HandleFunc("/pages/{id}/search", h.search).Methods("GET")
	r.HandleFunc("/pages/{id}/search/clear", h.clearSearch).Methods("POST")
	r.HandleFunc("/diagnostics/loads", h.recentLoads).Methods("GET")
	r.HandleFunc("/health", h.health).Methods("GET")
	if h.Proxy != nil {
		r.PathPrefix("/api/").Handler(h.Proxy)
	}
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	h.openPage(w, r, page.KindHome)
}

func (h *Handler) drilldown(w http.ResponseWriter, r *http.Request) {
	kind := page.Kind(mux.Vars(r)["page"])
	if kind == page.KindHome {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.openPage(w, r, kind)
}

// openPage creates a fresh page instance and waits for its initial load
// before rendering it.
func (h *Handler) openPage(w http.ResponseWriter, r *http.Request, kind page.Kind) {
	p, err := h.Pages.Open(kind)
	if err != nil {
		h.writeError(w, err)
		return
	}
	p.Load(r.Context())
	h.writePage(w, p)
}

func (h *Handler) showPage(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	h.writePage(w, p)
}

func (h *Handler) showPanel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	pn, err := p.Panel(mux.Vars(r)["panel"])
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Panel-Status", pn.Status().String())
	w.Write([]byte(pn.Container().HTML()))
}

func (h *Handler) refreshPanel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if _, err := p.Refresh(r.Context(), mux.Vars(r)["panel"]); err != nil {
		h.writeError(w, err)
		return
	}
	http.Redirect(w, r, "/pages/"+p.ID, http.StatusSeeOther)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}

	// The mode goes to the API as submitted; rejecting it is the server's call.
	mode := domain.SearchMode(r.URL.Query().Get("mode"))
	if mode == "" {
		mode = domain.ModeName
	}
	if _, err := p.Search(r.Context(), r.URL.Query().Get("q"), mode); err != nil {
		h.writeError(w, err)
		return
	}
	h.writePage(w, p)
}

func (h *Handler) clearSearch(w http.ResponseWriter, r *http.Request) {
	p, ok := h.lookup(w, r)
	if !ok {
		return
	}
	if err := p.ClearSearch(); err != nil {
		h.writeError(w, err)
		return
	}
	http.Redirect(w, r, "/pages/"+p.ID, http.StatusSeeOther)
}

func (h *Handler) recentLoads(w http.ResponseWriter, r *http.Request) {
	if h.History == nil {
		http.Error(w, "load history is not configured", http.StatusNotFound)
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	events, err := h.History.Recent(r.Context(), limit)
	if err != nil {
		h.Logger.Error("failed to read load history", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loads": events,
		"count": len(events),
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	body := map[string]interface{}{
		"status":     "healthy",
		"live_pages": h.Pages.Len(),
	}
	status := http.StatusOK

	if h.Backend != nil {
		backend, err := h.Backend.Health(r.Context())
		if err != nil {
			body["status"] = "degraded"
			body["backend_error"] = err.Error()
			status = http.StatusServiceUnavailable
		} else {
			body["backend"] = backend
		}
	}

	writeJSON(w, status, body)
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (*page.Page, bool) {
	p, ok := h.Pages.Get(mux.Vars(r)["id"])
	if !ok {
		http.Error(w, "page not found", http.StatusNotFound)
		return nil, false
	}
	return p, true
}

func (h *Handler) writePage(w http.ResponseWriter, p *page.Page) {
	var buf bytes.Buffer
	if err := p.WriteHTML(&buf); err != nil {
		h.Logger.Error("failed to render page", "page", p.Kind, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, page.ErrUnknownPage), errors.Is(err, page.ErrUnknownPanel):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, page.ErrNoSearch):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
