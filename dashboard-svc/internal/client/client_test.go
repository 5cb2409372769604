package client_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"foodie-dashboard/dashboard-svc/internal/client"
	"foodie-dashboard/dashboard-svc/internal/domain"
	"foodie-dashboard/dashboard-svc/internal/mocks"
	"foodie-dashboard/dashboard-svc/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T, baseURL string) *client.Client {
	return client.New(client.Config{BaseURL: baseURL}, &http.Client{}, testutil.NewTestLogger(t))
}

func TestFetch_EnvelopeTaxonomy(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    string
		wantMessage string
	}{
		{
			name:     "success",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"restaurant_types":[{"restaurant_type":"Cafe","count":3,"percentage":50}],"total_types":1}}`,
			wantKind: "",
		},
		{
			name:        "api_error_with_message",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"error":"invalid mode"}`,
			wantKind:    client.KindAPI,
			wantMessage: "invalid mode",
		},
		{
			name:     "success_with_backend_metadata",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"restaurant_types":[{"restaurant_type":"Cafe","count":3,"percentage":50}],"total_types":1},"metadata":{"timestamp":"2024-05-01T10:20:30.123456","processing_time_ms":12,"request_id":"req-1"}}`,
			wantKind: "",
		},
		{
			name:        "api_error_with_backend_metadata",
			status:      http.StatusBadRequest,
			body:        `{"success":false,"error":"invalid mode","metadata":{"timestamp":"2024-05-01T10:20:30.123456","processing_time_ms":0,"request_id":"req-2"}}`,
			wantKind:    client.KindAPI,
			wantMessage: "invalid mode",
		},
		{
			name:     "malformed_metadata_is_ignored",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"restaurant_types":[{"restaurant_type":"Cafe","count":3,"percentage":50}],"total_types":1},"metadata":{"timestamp":1714558830,"request_id":7}}`,
			wantKind: "",
		},
		{
			name:        "api_error_without_body",
			status:      http.StatusInternalServerError,
			body:        `<html>oops</html>`,
			wantKind:    client.KindAPI,
			wantMessage: "request failed (status 500)",
		},
		{
			name:        "success_false_on_200",
			status:      http.StatusOK,
			body:        `{"success":false,"error":"data not loaded"}`,
			wantKind:    client.KindAPI,
			wantMessage: "data not loaded",
		},
		{
			name:        "success_false_without_error",
			status:      http.StatusOK,
			body:        `{"success":false}`,
			wantKind:    client.KindAPI,
			wantMessage: "request failed (status 200)",
		},
		{
			name:     "not_json",
			status:   http.StatusOK,
			body:     `not json`,
			wantKind: client.KindParse,
		},
		{
			name:     "missing_success",
			status:   http.StatusOK,
			body:     `{"data":{"restaurant_types":[],"total_types":0}}`,
			wantKind: client.KindParse,
		},
		{
			name:     "missing_data",
			status:   http.StatusOK,
			body:     `{"success":true}`,
			wantKind: client.KindParse,
		},
		{
			name:     "data_and_error",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"restaurant_types":[],"total_types":0},"error":"boom"}`,
			wantKind: client.KindParse,
		},
		{
			name:     "wrong_data_shape",
			status:   http.StatusOK,
			body:     `{"success":true,"data":{"restaurant_types":"lots"}}`,
			wantKind: client.KindParse,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			backend := testutil.NewBackend(t)
			backend.Set("/api/restaurant-types", testCase.status, testCase.body)

			got, err := client.Fetch[domain.RestaurantTypes](context.Background(), newClient(t, backend.URL()), client.RestaurantTypesRequest())

			assert.Equal(t, testCase.wantKind, client.ErrorKind(err))
			if testCase.wantKind == "" {
				require.NoError(t, err)
				require.Len(t, got.RestaurantTypes, 1)
				assert.Equal(t, "Cafe", got.RestaurantTypes[0].RestaurantType)
				return
			}
			require.Error(t, err)
			if testCase.wantMessage != "" {
				assert.Equal(t, testCase.wantMessage, err.Error())
			}
		})
	}
}

func TestFetch_APIErrorCarriesStatus(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Set("/api/search", http.StatusBadRequest, `{"success":false,"error":"invalid mode"}`)

	_, err := client.Fetch[domain.SearchPayload](context.Background(), newClient(t, backend.URL()), client.SearchRequest("pizza", "cuisine"))

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "invalid mode", apiErr.Message)
	assert.Equal(t, []string{"mode=cuisine&q=pizza"}, backend.Queries())
}

func TestFetch_UnknownSearchModeIsParseError(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Set("/api/search", http.StatusOK, `{"success":true,"data":{"query":"x","mode":"cuisine","results":[],"total_matches":0}}`)

	_, err := client.Fetch[domain.SearchPayload](context.Background(), newClient(t, backend.URL()), client.SearchRequest("x", domain.ModeName))

	var parseErr *client.ParseError
	require.True(t, errors.As(err, &parseErr))
	var modeErr *domain.UnknownModeError
	assert.True(t, errors.As(err, &modeErr))
}

func TestFetch_TransportError(t *testing.T) {
	httpClient := mocks.NewHTTPClient(t)
	httpClient.On("Do", mock.Anything).Return(nil, errors.New("connection refused")).Once()

	c := client.New(client.Config{BaseURL: "http://analytics"}, httpClient, testutil.NewTestLogger(t))
	_, err := client.Fetch[domain.FoodieAreas](context.Background(), c, client.FoodieAreasRequest())

	var transportErr *client.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.False(t, transportErr.Timeout())
	assert.Equal(t, client.KindTransport, client.ErrorKind(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestFetch_Timeout(t *testing.T) {
	backend := testutil.NewBackend(t)
	block := make(chan struct{})
	defer close(block)
	backend.SetResponse("/api/top-restaurants", testutil.Response{Status: http.StatusOK, Body: `{}`, Block: block})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := client.Fetch[domain.TopRestaurants](ctx, newClient(t, backend.URL()), client.TopRestaurantsRequest())

	assert.Equal(t, client.KindTimeout, client.ErrorKind(err))
	assert.Equal(t, "request timed out", err.Error())
}

func TestFetch_RequestShape(t *testing.T) {
	httpClient := mocks.NewHTTPClient(t)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet &&
			req.URL.Path == "/api/charts/foodie-areas-bar" &&
			req.URL.Query().Get("width") == "900" &&
			req.URL.Query().Get("height") == "420" &&
			req.Header.Get("Accept") == "application/json"
	})).Return(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"success":true,"data":{"chart_type":"foodie-areas-bar","title":"Areas","width":900,"height":420,"base64_image":"AAAA"}}`)),
	}, nil).Once()

	c := client.New(client.Config{BaseURL: "http://analytics/"}, httpClient, testutil.NewTestLogger(t))
	chart, err := client.Fetch[domain.ChartArtifact](context.Background(), c, client.ChartRequest(domain.ChartFoodieAreasBar, 900, 420))

	require.NoError(t, err)
	assert.Equal(t, "AAAA", chart.Base64Image)
	assert.Equal(t, 900, chart.Width)
}

func TestClient_Health(t *testing.T) {
	backend := testutil.NewBackend(t)
	backend.Set("/api/health", http.StatusOK, `{"success":true,"data":{"status":"healthy","uptime_seconds":12,"memory_usage_mb":80,"data_loaded":true}}`)

	health, err := newClient(t, backend.URL()).Health(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.True(t, health.DataLoaded)
}
