package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_Tolerant(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    StringList
	}{
		{name: "list", payload: `{"area":"BTM","top_cuisines":["North Indian","Chinese"]}`, want: StringList{"North Indian", "Chinese"}},
		{name: "absent", payload: `{"area":"BTM"}`, want: nil},
		{name: "null", payload: `{"area":"BTM","top_cuisines":null}`, want: nil},
		{name: "string", payload: `{"area":"BTM","top_cuisines":"North Indian"}`, want: nil},
		{name: "object", payload: `{"area":"BTM","top_cuisines":{"a":1}}`, want: nil},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var area FoodieArea
			require.NoError(t, json.Unmarshal([]byte(testCase.payload), &area))
			assert.Equal(t, "BTM", area.Area)
			assert.Equal(t, testCase.want, area.TopCuisines)
		})
	}
}

func TestEnvelope_HasData(t *testing.T) {
	tests := []struct {
		payload string
		want    bool
	}{
		{`{"success":true,"data":{"total_types":0}}`, true},
		{`{"success":true,"data":[]}`, true},
		{`{"success":true,"data":null}`, false},
		{`{"success":true}`, false},
	}

	for _, testCase := range tests {
		var env Envelope
		require.NoError(t, json.Unmarshal([]byte(testCase.payload), &env))
		assert.Equal(t, testCase.want, env.HasData(), testCase.payload)
	}
}

func TestEnvelope_Metadata(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    Metadata
	}{
		{
			name:    "zoneless_timestamp",
			payload: `{"success":true,"data":{},"metadata":{"timestamp":"2024-05-01T10:20:30.123456","processing_time_ms":12,"request_id":"req-1"}}`,
			want:    Metadata{Timestamp: "2024-05-01T10:20:30.123456", ProcessingTimeMS: 12, RequestID: "req-1"},
		},
		{
			name:    "absent",
			payload: `{"success":true,"data":{}}`,
			want:    Metadata{},
		},
		{
			name:    "numeric_timestamp",
			payload: `{"success":true,"data":{},"metadata":{"timestamp":1714558830,"request_id":"req-3"}}`,
			want:    Metadata{Timestamp: "1714558830", RequestID: "req-3"},
		},
		{
			name:    "not_an_object",
			payload: `{"success":true,"data":{},"metadata":"n/a"}`,
			want:    Metadata{},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			var env Envelope
			require.NoError(t, json.Unmarshal([]byte(testCase.payload), &env))
			assert.True(t, env.HasData())
			assert.Equal(t, testCase.want, env.Metadata())
		})
	}
}
