package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryInt32Gte(t *testing.T) {
	testCases := []struct {
		name     string
		query    string
		expected int32
		errMsg   string
	}{
		{name: "Absent uses default", query: "", expected: 10},
		{name: "Empty uses default", query: "?limit=", expected: 10},
		{name: "Valid value", query: "?limit=25", expected: 25},
		{name: "Minimum value", query: "?limit=1", expected: 1},
		{name: "Below minimum", query: "?limit=0", errMsg: "Invalid limit number: 0"},
		{name: "Negative", query: "?limit=-3", errMsg: "Invalid limit number: -3"},
		{name: "Not a number", query: "?limit=abc", errMsg: "Invalid limit number: abc"},
		{name: "Fraction", query: "?limit=2.5", errMsg: "Invalid limit number: 2.5"},
		{name: "Out of int32 range", query: "?limit=4294967296", errMsg: "Invalid limit number: 4294967296"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			req := httptest.NewRequest(http.MethodGet, "/api/products"+tc.query, nil)
			// when
			value, err := QueryInt32Gte(req, "limit", 10, 1)
			// then
			if tc.errMsg != "" {
				var paramErr *ParamError
				require.ErrorAs(t, err, &paramErr)
				assert.Equal(t, "limit", paramErr.Key)
				assert.EqualError(t, err, tc.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, value)
		})
	}
}
