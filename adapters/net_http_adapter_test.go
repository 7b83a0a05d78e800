package adapters

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetHTTPAdapter_Do(t *testing.T) {
	var gotMethod, gotAuth, gotContentType, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	adapter := NewNetHTTPAdapter()
	resp, err := adapter.Do(server.URL+"/api/track", []byte(`{"events":[]}`), map[string]string{
		"Content-Type":  "application/json",
		"Authorization": "test-key",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "test-key", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, `{"events":[]}`, gotBody)

	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, `{"status":"ok"}`, resp.Body)
}

func TestNetHTTPAdapter_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	adapter := NewNetHTTPAdapter()
	resp, err := adapter.Do(server.URL, nil, nil)
	require.NoError(t, err, "a completed HTTP exchange is not a transport error")

	assert.False(t, resp.OK)
	assert.Equal(t, http.StatusForbidden, resp.Status)
	assert.Contains(t, resp.Body, "nope")
}

func TestNetHTTPAdapter_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	adapter := NewNetHTTPAdapter()
	resp, err := adapter.Do(server.URL, []byte("{}"), nil)
	assert.Error(t, err)
	assert.Nil(t, resp)
}

func TestNetHTTPAdapter_WithClient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	adapter := NewNetHTTPAdapterWithClient(server.Client())
	resp, err := adapter.Do(server.URL, nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.OK)
	assert.Equal(t, http.StatusCreated, resp.Status)
}
