package healthtip

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientGenerateTipReadsFirstCandidate(t *testing.T) {
	var received generateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"  Drink water.  "},{"text":"ignored"}]}},{"content":{"parts":[{"text":"second"}]}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "secret-key", time.Second, nil)
	tip, err := client.GenerateTip(context.Background(), "give a tip")
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", tip)
	require.Len(t, received.Contents, 1)
	require.Len(t, received.Contents[0].Parts, 1)
	assert.Equal(t, "give a tip", received.Contents[0].Parts[0].Text)
}

func TestClientGenerateTipRequiresKey(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", "", time.Second, nil)
	_, err := client.GenerateTip(context.Background(), "tip")
	assert.True(t, errors.Is(err, ErrAPIKeyMissing))
}

func TestClientGenerateTipReportsUpstreamStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", time.Second, nil)
	_, err := client.GenerateTip(context.Background(), "tip")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamFailure))
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestClientGenerateTipRejectsEmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "key", time.Second, nil)
	_, err := client.GenerateTip(context.Background(), "tip")
	assert.True(t, errors.Is(err, ErrEmptyCandidate))
}

func TestClientGenerateTipHonoursContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewClient(server.URL, "key", 5*time.Second, nil)
	_, err := client.GenerateTip(ctx, "tip")
	assert.True(t, errors.Is(err, ErrUpstreamFailure))
}
