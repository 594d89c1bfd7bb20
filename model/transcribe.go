package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TranscribeClient submits recorded audio to the speech-to-text service.
// Single attempt, no retry: failures go straight back to the user.
type TranscribeClient struct {
	apiURL string
	apiKey string
	client *http.Client
}

func NewTranscribeClient(apiURL, apiKey string) *TranscribeClient {
	return &TranscribeClient{
		apiURL: apiURL,
		apiKey: apiKey,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

type transcribeResponse struct {
	Results struct {
		Channels []struct {
			Alternatives []struct {
				Transcript string `json:"transcript"`
			} `json:"alternatives"`
		} `json:"channels"`
	} `json:"results"`
}

// Transcribe sends a WAV body and extracts
// results.channels[0].alternatives[0].transcript. An empty transcript is
// returned as "", not an error; the caller decides how to surface it.
func (c *TranscribeClient) Transcribe(ctx context.Context, audio []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(audio))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Token "+c.apiKey)
	req.Header.Set("Content-Type", "audio/wav")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach transcription API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("transcription API error: status %d, body: %s", resp.StatusCode, string(errBody))
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var parsed transcribeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(parsed.Results.Channels) == 0 || len(parsed.Results.Channels[0].Alternatives) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Results.Channels[0].Alternatives[0].Transcript), nil
}
