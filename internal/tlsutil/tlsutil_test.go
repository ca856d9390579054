package tlsutil

import (
	"crypto/tls"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientConfig(t *testing.T) {
	cfg := ClientConfig("models.example.com")
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	assert.Equal(t, "models.example.com", cfg.ServerName)
	assert.ElementsMatch(t, aeadSuites, cfg.CipherSuites)

	cfg.CipherSuites[0] = tls.TLS_RSA_WITH_AES_128_CBC_SHA
	assert.NotEqual(t, cfg.CipherSuites[0], aeadSuites[0], "callers get their own copy")
}

func TestHTTPClient(t *testing.T) {
	client := HTTPClient(15 * time.Second)
	assert.Equal(t, 15*time.Second, client.Timeout)

	tr, ok := client.Transport.(*http.Transport)
	require.True(t, ok)
	require.NotNil(t, tr.TLSClientConfig)
	assert.Equal(t, uint16(tls.VersionTLS12), tr.TLSClientConfig.MinVersion)
	assert.True(t, tr.ForceAttemptHTTP2)
}

func TestRedisConfig(t *testing.T) {
	assert.Nil(t, RedisConfig(false, "cache.internal:6380"))

	cfg := RedisConfig(true, "cache.internal:6380")
	require.NotNil(t, cfg)
	assert.Equal(t, "cache.internal", cfg.ServerName)

	assert.Equal(t, "bare-host", RedisConfig(true, "bare-host").ServerName)
}
