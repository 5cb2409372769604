package gateway

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"foodie-dashboard/dashboard-svc/internal/client"
)

// hopHeaders are connection-scoped and must not be forwarded.
var hopHeaders = []string{
	"Connection",
	"Keep-Alive",
	"Proxy-Authenticate",
	"Proxy-Authorization",
	"Te",
	"Trailer",
	"Transfer-Encoding",
	"Upgrade",
}

type Config struct {
	AnalyticsURL string
}

// Gateway passes /api requests through to the analytics backend so browsers
// can reach the API on the dashboard's own origin.
type Gateway struct {
	config Config
	client client.HTTPClient
	logger *slog.Logger
}

func NewGateway(config Config, httpClient client.HTTPClient, logger *slog.Logger) *Gateway {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		config: config,
		client: httpClient,
		logger: logger,
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if !strings.HasPrefix(r.URL.Path, "/api/") {
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}
	g.ProxyRequest(w, r, g.config.AnalyticsURL)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	g.logger.Debug("proxy", "method", r.Method, "path", r.URL.Path, "target", targetURL)

	url := strings.TrimRight(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, nil)
	if err != nil {
		g.logger.Error("failed to create proxy request", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	removeHopHeaders(req.Header)

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error("failed to proxy", "target", targetURL, "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	removeHopHeaders(w.Header())
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Error("failed to copy response", "error", err)
	}
}

func removeHopHeaders(h http.Header) {
	for _, name := range hopHeaders {
		h.Del(name)
	}
}
