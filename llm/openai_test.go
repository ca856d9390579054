package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

func TestOpenAICompatible_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"c1","model":"m","choices":[{"index":0,"message":{"role":"assistant","content":"{\"ok\":true}"}}]}`))
	}))
	defer server.Close()

	c := NewOpenAICompatible(Config{APIKey: "sk-test", BaseURL: server.URL + "/", Model: "m", MaxTokens: 100}, nil)
	out, err := c.Complete(context.Background(), "sys", "user")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "user", got.Messages[1].Content)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
}

func TestOpenAICompatible_HTTPErrors(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		code      types.ErrorCode
		retryable bool
	}{
		{"rate limited", http.StatusTooManyRequests, types.ErrAIUnavailable, true},
		{"server error", http.StatusInternalServerError, types.ErrAIUnavailable, true},
		{"gateway timeout", http.StatusGatewayTimeout, types.ErrAITimeout, true},
		{"unauthorized", http.StatusUnauthorized, types.ErrAIUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"error":{"message":"nope","type":"test"}}`))
			}))
			defer server.Close()

			c := NewOpenAICompatible(Config{BaseURL: server.URL}, nil)
			_, err := c.Complete(context.Background(), "s", "u")
			require.Error(t, err)
			assert.Equal(t, tt.code, types.GetErrorCode(err))
			assert.Equal(t, tt.retryable, types.IsRetryable(err))
			assert.Contains(t, err.Error(), "nope (type: test)")
		})
	}
}

func TestOpenAICompatible_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	_, err := NewOpenAICompatible(Config{BaseURL: server.URL}, nil).Complete(context.Background(), "s", "u")
	assert.True(t, types.IsErrorCode(err, types.ErrAIInvalidResponse))
}

func TestOpenAICompatible_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewOpenAICompatible(Config{BaseURL: server.URL}, nil).Complete(ctx, "s", "u")
	assert.True(t, types.IsErrorCode(err, types.ErrAITimeout))
}

func TestCompleterFunc(t *testing.T) {
	var c Completer = CompleterFunc(func(_ context.Context, s, u string) (string, error) {
		return s + "|" + u, nil
	})
	out, err := c.Complete(context.Background(), "a", "b")
	require.NoError(t, err)
	assert.Equal(t, "a|b", out)
}
