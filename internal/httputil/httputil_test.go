// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequest_SetsUserAgent(t *testing.T) {
	req, err := NewRequest(context.Background(), http.MethodGet, "http://example.com/", nil, "inn-lookup-test")
	require.NoError(t, err)
	assert.Equal(t, "inn-lookup-test", req.Header.Get("User-Agent"))
}

func TestNewRequest_InvalidURL(t *testing.T) {
	_, err := NewRequest(context.Background(), http.MethodGet, "://bad", nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating request")
}

func TestDo_Non2xx(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("captcha required"))
	}))
	defer ts.Close()

	req, err := NewRequest(context.Background(), http.MethodGet, ts.URL, nil, "")
	require.NoError(t, err)

	resp, err := Do(ts.Client(), req)
	assert.Nil(t, resp)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusForbidden, se.StatusCode)
	assert.Equal(t, "captcha required", se.Body)
}

func TestDoJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    map[string]string
		wantErr string
	}{
		{
			name: "valid object",
			body: `{"t":"ABC123"}`,
			want: map[string]string{"t": "ABC123"},
		},
		{
			name:    "html instead of json",
			body:    `<html>blocked</html>`,
			wantErr: "decoding JSON",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			req, err := NewRequest(context.Background(), http.MethodGet, ts.URL, nil, "")
			require.NoError(t, err)

			var got map[string]string
			err = DoJSON(ts.Client(), req, &got)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req, err := NewRequest(ctx, http.MethodGet, ts.URL, nil, "")
	require.NoError(t, err)

	_, err = Do(ts.Client(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
