package model

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"sahayak/types"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"
)

const noAnswerFallback = "I was unable to find an answer right now."

// StreamClient talks to the remote assistant endpoint and decodes its
// event-stream response into one aggregated chat message.
type StreamClient struct {
	apiURL string
	token  string
	client *http.Client
}

func NewStreamClient(apiURL, token string) *StreamClient {
	return &StreamClient{
		apiURL: apiURL,
		token:  token,
		client: &http.Client{Timeout: 120 * time.Second},
	}
}

type ChatOptions struct {
	IncludeYouTube     bool `json:"includeYouTube"`
	IncludeImageSearch bool `json:"includeImageSearch"`
}

type chatRequest struct {
	Prompt  string      `json:"prompt"`
	Options ChatOptions `json:"options"`
}

// Ask sends the prompt and consumes the streamed records until EOF. A non-2xx
// status is a hard failure surfaced with the response body; per-record JSON
// problems are logged and skipped. All accumulator state lives in the local
// decoder, so concurrent calls never share partial results.
func (c *StreamClient) Ask(ctx context.Context, prompt string, opts ChatOptions) (*types.ChatMessage, error) {
	body, err := json.Marshal(chatRequest{Prompt: prompt, Options: opts})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	if count, err := countPromptTokens(body); err == nil {
		log.Printf("[STREAM] prompt size: %d tokens, %d bytes", count, len(body))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach assistant API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		errBody, _ := io.ReadAll(resp.Body)
		if len(bytes.TrimSpace(errBody)) == 0 {
			return nil, fmt.Errorf("assistant API error: status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("assistant API error: status %d, body: %s", resp.StatusCode, string(errBody))
	}

	dec := newStreamDecoder()
	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			dec.feed(buf[:n])
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("failed to read stream: %w", readErr)
		}
	}
	dec.finish()

	return dec.message(), nil
}

// countPromptTokens sizes the outgoing request with a gpt-3.5 compatible
// encoding, for logging only.
func countPromptTokens(data []byte) (int, error) {
	enc, err := tiktoken.EncodingForModel("gpt-3.5-turbo")
	if err != nil {
		return 0, err
	}
	return len(enc.Encode(string(data), nil, nil)), nil
}

// streamDecoder accumulates one response worth of records. The buffer holds
// raw bytes between feeds so multi-byte runes split across chunk boundaries
// are reassembled before any text handling.
type streamDecoder struct {
	buffer  []byte
	text    strings.Builder
	images  []types.OnlineImage
	videos  []types.OnlineVideo
	sources []types.OnlineSource
}

func newStreamDecoder() *streamDecoder {
	return &streamDecoder{}
}

func (d *streamDecoder) feed(chunk []byte) {
	records, rest := splitRecords(d.buffer, chunk)
	d.buffer = rest
	for _, record := range records {
		d.applyRecord(record)
	}
}

// finish drains a trailing record that arrived without its closing delimiter.
func (d *streamDecoder) finish() {
	if remainder := strings.TrimSpace(string(d.buffer)); remainder != "" {
		d.applyRecord(remainder)
	}
	d.buffer = nil
}

// splitRecords appends a chunk to the carried buffer and cuts out every
// complete blank-line-delimited record, returning the remainder for the next
// call. CRLF is normalized to LF; a lone trailing CR stays in the remainder in
// case its LF is still in flight.
func splitRecords(buffer, chunk []byte) (records []string, rest []byte) {
	combined := append(buffer, chunk...)
	combined = bytes.ReplaceAll(combined, []byte("\r\n"), []byte("\n"))

	var carry []byte
	if n := len(combined); n > 0 && combined[n-1] == '\r' {
		combined, carry = combined[:n-1], []byte("\r")
	}

	for {
		boundary := bytes.Index(combined, []byte("\n\n"))
		if boundary < 0 {
			break
		}
		record := strings.TrimSpace(string(combined[:boundary]))
		combined = combined[boundary+2:]
		if record != "" {
			records = append(records, record)
		}
	}

	return records, append(combined, carry...)
}

// applyRecord parses one record: an "event:" line selects the type (default
// "message") and the "data:" lines concatenate into the JSON payload.
func (d *streamDecoder) applyRecord(record string) {
	eventType := "message"
	var data strings.Builder

	for _, line := range strings.Split(record, "\n") {
		line = strings.TrimRight(line, "\r")
		if value, ok := strings.CutPrefix(line, "event:"); ok {
			eventType = strings.TrimSpace(value)
		} else if value, ok := strings.CutPrefix(line, "data:"); ok {
			data.WriteString(strings.TrimSpace(value))
		}
	}

	d.applyEvent(eventType, data.String())
}

func (d *streamDecoder) applyEvent(eventType, data string) {
	if data == "" {
		return
	}

	switch eventType {
	case "message":
		var payload struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			log.Printf("[STREAM] event parse error: %v", err)
			return
		}
		d.text.WriteString(payload.Text)

	case "images":
		var payload struct {
			Images []types.OnlineImage `json:"images"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			log.Printf("[STREAM] event parse error: %v", err)
			return
		}
		if payload.Images != nil {
			d.images = payload.Images
		}

	case "youtubeResults":
		var payload struct {
			Videos []struct {
				VideoID      string `json:"videoId"`
				Title        string `json:"title"`
				URL          string `json:"url"`
				ChannelTitle string `json:"channelTitle"`
				PublishedAt  string `json:"publishedAt"`
			} `json:"videos"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			log.Printf("[STREAM] event parse error: %v", err)
			return
		}
		if payload.Videos == nil {
			return
		}
		videos := make([]types.OnlineVideo, len(payload.Videos))
		for i, v := range payload.Videos {
			url := v.URL
			if url == "" {
				url = "https://www.youtube.com/watch?v=" + v.VideoID
			}
			videos[i] = types.OnlineVideo{
				VideoID:      v.VideoID,
				Title:        v.Title,
				URL:          url,
				ChannelTitle: v.ChannelTitle,
				PublishedAt:  v.PublishedAt,
			}
		}
		d.videos = videos

	case "sources":
		var payload struct {
			Sources []types.OnlineSource `json:"sources"`
		}
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			log.Printf("[STREAM] event parse error: %v", err)
			return
		}
		if payload.Sources != nil {
			d.sources = payload.Sources
		}
	}
}

// message finalizes the aggregate: whitespace-only text falls back to a fixed
// sentence, and empty attachment lists are left out entirely.
func (d *streamDecoder) message() *types.ChatMessage {
	text := strings.TrimSpace(d.text.String())
	if text == "" {
		text = noAnswerFallback
	}

	msg := &types.ChatMessage{
		ID:        uuid.New(),
		Role:      types.RoleAssistant,
		Text:      text,
		Timestamp: time.Now(),
	}

	if len(d.images) > 0 || len(d.videos) > 0 || len(d.sources) > 0 {
		msg.Attachments = &types.Attachments{
			Images:  d.images,
			Videos:  d.videos,
			Sources: d.sources,
		}
	}

	return msg
}
