package gateway_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodie-dashboard/dashboard-svc/internal/gateway"
	"foodie-dashboard/dashboard-svc/internal/mocks"
	"foodie-dashboard/dashboard-svc/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGateway_ProxiesAPI(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{AnalyticsURL: "http://analytics/"}, mockClient, testutil.NewTestLogger(t))

	mockResp := &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(strings.NewReader(`{"success":false,"error":"invalid mode"}`)),
		Header:     make(http.Header),
	}
	mockResp.Header.Set("Content-Type", "application/json")
	mockResp.Header.Set("Connection", "close")

	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.URL.String() == "http://analytics/api/search?q=pizza&mode=cuisine" &&
			req.Header.Get("X-Request-Id") == "abc" &&
			req.Header.Get("Connection") == ""
	})).Return(mockResp, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/search?q=pizza&mode=cuisine", nil)
	req.Header.Set("X-Request-Id", "abc")
	req.Header.Set("Connection", "keep-alive")
	rr := httptest.NewRecorder()

	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Empty(t, rr.Header().Get("Connection"))
	assert.Contains(t, rr.Body.String(), "invalid mode")
}

func TestGateway_RejectsWrites(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{AnalyticsURL: "http://analytics"}, nil, testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodPost, "/api/search", nil)
	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestGateway_UnknownRoute(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{AnalyticsURL: "http://analytics"}, nil, testutil.NewTestLogger(t))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(gateway.Config{AnalyticsURL: "http://invalid"}, mockClient, testutil.NewTestLogger(t))

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	assert.Contains(t, rr.Body.String(), "connection failed")
}
