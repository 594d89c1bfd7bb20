package model

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscribeExtractsTranscript(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "audio/wav", r.Header.Get("Content-Type"))

		w.Write([]byte(`{"results":{"channels":[{"alternatives":[{"transcript":" what is inertia "}]}]}}`))
	}))
	defer srv.Close()

	client := NewTranscribeClient(srv.URL, "test-key")
	transcript, err := client.Transcribe(context.Background(), []byte("RIFF...."))
	require.NoError(t, err)
	assert.Equal(t, "what is inertia", transcript)
}

func TestTranscribeEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results":{"channels":[]}}`))
	}))
	defer srv.Close()

	client := NewTranscribeClient(srv.URL, "test-key")
	transcript, err := client.Transcribe(context.Background(), []byte("RIFF...."))
	require.NoError(t, err)
	assert.Empty(t, transcript)
}

func TestTranscribeErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad audio", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewTranscribeClient(srv.URL, "test-key")
	_, err := client.Transcribe(context.Background(), []byte("junk"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}
