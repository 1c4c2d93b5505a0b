package pkg

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNamedClient(name, serverURL string) *HostClient {
	cfg := HostConfig{
		Name:          name,
		BaseURL:       serverURL,
		UploadPath:    "/upload/url",
		PlayerBaseURL: "https://" + name + ".com/e",
		Timeout:       2 * time.Second,
	}
	return NewHostClient(cfg, "clave-test")
}

// El fallo de una sonda no puede abortar las demás: cada resultado se recoge aparte
func TestProbeHostsCollectsEachResult(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"msg":"OK","result":{"email":"test@test"}}`))
	}))
	defer okServer.Close()

	deniedServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer deniedServer.Close()

	downServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>mantenimiento</html>"))
	}))
	defer downServer.Close()

	clients := []*HostClient{
		newNamedClient("streamhg", okServer.URL),
		newNamedClient("earnvids", deniedServer.URL),
		newNamedClient("filemoon", downServer.URL),
	}

	results := ProbeHosts(clients)
	require.Len(t, results, 3)

	assert.Equal(t, "streamhg", results[0].Host)
	assert.True(t, results[0].Alive)
	assert.NoError(t, results[0].Err)

	assert.Equal(t, "earnvids", results[1].Host)
	assert.False(t, results[1].Alive)
	assert.ErrorIs(t, results[1].Err, ErrHostUnauthorized)

	assert.Equal(t, "filemoon", results[2].Host)
	assert.False(t, results[2].Alive)
	assert.ErrorIs(t, results[2].Err, ErrHostUnavailable)
}

func TestUploadToHostsIndependentFailures(t *testing.T) {
	okServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"msg":"OK","result":{"filecode":"xyz789"}}`))
	}))
	defer okServer.Close()

	brokenServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer brokenServer.Close()

	clients := []*HostClient{
		newNamedClient("streamhg", okServer.URL),
		newNamedClient("earnvids", brokenServer.URL),
	}

	results := UploadToHosts(clients, "https://origen/video.mp4")
	require.Len(t, results, 2)

	assert.Equal(t, "xyz789", results[0].FileCode)
	assert.NoError(t, results[0].Err)

	assert.Empty(t, results[1].FileCode)
	assert.ErrorIs(t, results[1].Err, ErrHostServerError)
}
