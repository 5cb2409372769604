package httpapi_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	httpapi "foodie-dashboard/dashboard-svc/internal/api/http"
	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/mocks"
	"foodie-dashboard/dashboard-svc/internal/page"
	"foodie-dashboard/dashboard-svc/internal/render"
	"foodie-dashboard/dashboard-svc/internal/testutil"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const pizzaBody = `{"success":true,"data":{"query":"pizza","mode":"name","results":[{"name":"Pizza Place","location":"Downtown","restaurant_type":"Italian","rating":4.5,"votes":120}],"total_matches":1}}`

type testEnv struct {
	backend  *testutil.Backend
	registry *page.Registry
	history  *mocks.LoadHistory
	router   *mux.Router
}

func setupTestRouter(t *testing.T) *testEnv {
	backend := testutil.NewBackend(t)
	logger := testutil.NewTestLogger(t)
	api := client.New(client.Config{BaseURL: backend.URL()}, &http.Client{}, logger)
	registry := page.NewRegistry(page.Deps{
		API:      api,
		Renderer: render.NewRenderer(render.NewFormatter("en")),
		Logger:   logger,
	}, 0)
	history := mocks.NewLoadHistory(t)

	handler := httpapi.NewHandler(registry, history, api, nil, logger)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return &testEnv{backend: backend, registry: registry, history: history, router: r}
}

func (e *testEnv) do(method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func TestHandler_Home(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.do(http.MethodGet, "/")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), `id="search-form"`)
	assert.Contains(t, rr.Body.String(), `id="search-results" class="search-results" style="display:none"`)
	assert.Equal(t, 1, env.registry.Len())
	assert.Equal(t, 0, env.backend.Hits("/api/search"))
}

func TestHandler_Drilldown(t *testing.T) {
	tests := []struct {
		name         string
		path         string
		expectedCode int
		expectedBody string
	}{
		{name: "restaurants", path: "/drilldown/restaurants", expectedCode: http.StatusOK, expectedBody: "#1 Truffles"},
		{name: "unknown", path: "/drilldown/reviews", expectedCode: http.StatusNotFound},
		{name: "home_redirects", path: "/drilldown/home", expectedCode: http.StatusSeeOther},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			env := setupTestRouter(t)
			env.backend.Set("/api/top-restaurants", http.StatusOK, `{"success":true,"data":{"top_restaurants":[{"rank":1,"name":"Truffles","votes":10}],"total_restaurants":1}}`)
			env.backend.Set("/api/charts/top-restaurants-bar", http.StatusOK, `{"success":true,"data":{"chart_type":"top-restaurants-bar","title":"Top","width":900,"height":420,"base64_image":"AAAA"}}`)

			rr := env.do(http.MethodGet, testCase.path)

			assert.Equal(t, testCase.expectedCode, rr.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_SearchFlow(t *testing.T) {
	env := setupTestRouter(t)
	env.backend.Set("/api/search", http.StatusOK, pizzaBody)

	p, err := env.registry.Open(page.KindHome)
	require.NoError(t, err)

	rr := env.do(http.MethodGet, "/pages/"+p.ID+"/search?q=pizza&mode=name")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Pizza Place")
	assert.Contains(t, rr.Body.String(), "Search Results (1 match)")

	rr = env.do(http.MethodGet, "/pages/"+p.ID+"/panels/search")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "success", rr.Header().Get("X-Panel-Status"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), `<div id="search-results"`))

	rr = env.do(http.MethodPost, "/pages/"+p.ID+"/search/clear")
	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/pages/"+p.ID, rr.Header().Get("Location"))
	assert.Equal(t, "", p.Text())
}

func TestHandler_SearchPassesModeThrough(t *testing.T) {
	env := setupTestRouter(t)
	env.backend.Set("/api/search", http.StatusBadRequest, `{"success":false,"error":"invalid mode"}`)
	p, err := env.registry.Open(page.KindHome)
	require.NoError(t, err)

	rr := env.do(http.MethodGet, "/pages/"+p.ID+"/search?"+url.Values{"q": {"pizza"}, "mode": {"cuisine"}}.Encode())

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid mode")
	assert.Equal(t, []string{"mode=cuisine&q=pizza"}, env.backend.Queries())
}

func TestHandler_PageErrors(t *testing.T) {
	env := setupTestRouter(t)
	drill, err := env.registry.Open(page.KindRestaurantTypes)
	require.NoError(t, err)

	tests := []struct {
		name         string
		method       string
		path         string
		expectedCode int
	}{
		{name: "unknown_page", method: http.MethodGet, path: "/pages/nope", expectedCode: http.StatusNotFound},
		{name: "unknown_panel", method: http.MethodGet, path: "/pages/" + drill.ID + "/panels/search", expectedCode: http.StatusNotFound},
		{name: "refresh_unknown_panel", method: http.MethodPost, path: "/pages/" + drill.ID + "/panels/search/refresh", expectedCode: http.StatusNotFound},
		{name: "search_on_drilldown", method: http.MethodGet, path: "/pages/" + drill.ID + "/search?q=x", expectedCode: http.StatusBadRequest},
		{name: "clear_on_drilldown", method: http.MethodPost, path: "/pages/" + drill.ID + "/search/clear", expectedCode: http.StatusBadRequest},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			rr := env.do(testCase.method, testCase.path)
			assert.Equal(t, testCase.expectedCode, rr.Code)
		})
	}
}

func TestHandler_RefreshPanel(t *testing.T) {
	env := setupTestRouter(t)
	env.backend.Set("/api/restaurant-types", http.StatusOK, `{"success":true,"data":{"restaurant_types":[{"restaurant_type":"Cafe","count":3,"percentage":100}],"total_types":1}}`)
	p, err := env.registry.Open(page.KindRestaurantTypes)
	require.NoError(t, err)

	rr := env.do(http.MethodPost, "/pages/"+p.ID+"/panels/restaurant-types/refresh")

	assert.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, 1, env.backend.Hits("/api/restaurant-types"))
	assert.Equal(t, 0, env.backend.Hits("/api/charts/restaurant-types-pie"))

	rr = env.do(http.MethodGet, "/pages/"+p.ID)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Cafe")
}

func TestHandler_RecentLoads(t *testing.T) {
	env := setupTestRouter(t)

	tests := []struct {
		name         string
		query        string
		prepareMocks func()
		expectedCode int
		expectedBody string
	}{
		{
			name:  "default_limit",
			query: "",
			prepareMocks: func() {
				env.history.On("Recent", mock.Anything, 50).
					Return([]domain.LoadEvent{{Page: "home", Panel: "search", Outcome: domain.OutcomeSuccess}}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"count":1`,
		},
		{
			name:  "capped_limit",
			query: "?limit=100000",
			prepareMocks: func() {
				env.history.On("Recent", mock.Anything, 500).Return([]domain.LoadEvent{}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: `"count":0`,
		},
		{
			name:         "bad_limit",
			query:        "?limit=-3",
			prepareMocks: func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:  "store_error",
			query: "?limit=5",
			prepareMocks: func() {
				env.history.On("Recent", mock.Anything, 5).Return(nil, errors.New("db down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			testCase.prepareMocks()
			rr := env.do(http.MethodGet, "/diagnostics/loads"+testCase.query)
			assert.Equal(t, testCase.expectedCode, rr.Code)
			if testCase.expectedBody != "" {
				assert.Contains(t, rr.Body.String(), testCase.expectedBody)
			}
		})
	}
}

func TestHandler_RecentLoadsWithoutStore(t *testing.T) {
	registry := page.NewRegistry(page.Deps{}, 0)
	handler := httpapi.NewHandler(registry, nil, nil, nil, testutil.NewTestLogger(t))
	r := mux.NewRouter()
	handler.RegisterRoutes(r)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/diagnostics/loads", nil))

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestHandler_Health(t *testing.T) {
	env := setupTestRouter(t)

	rr := env.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "degraded", body["status"])

	env.backend.Set("/api/health", http.StatusOK, `{"success":true,"data":{"status":"healthy","uptime_seconds":5,"memory_usage_mb":64,"data_loaded":true}}`)
	rr = env.do(http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rr.Code)
	body = nil
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["backend"].(map[string]interface{})["data_loaded"])
}

func TestNewRouter_CORS(t *testing.T) {
	registry := page.NewRegistry(page.Deps{}, 0)
	router := httpapi.NewRouter(httpapi.NewHandler(registry, nil, nil, nil, testutil.NewTestLogger(t)))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://elsewhere.example")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}
