package daemon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"videocolors/internal/colortrack"
)

// SinkClient pushes finished color tracks to a remote collector.
type SinkClient struct {
	baseURL string
	http    *http.Client
}

// TrackUpload is the body of a push.
type TrackUpload struct {
	VideoID   string                `json:"video_id"`
	VideoPath string                `json:"video_path"`
	FPS       int                   `json:"fps"`
	Colors    colortrack.ColorTrack `json:"colors"`
}

func NewSinkClient(baseURL string) *SinkClient {
	return &SinkClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// PushTrack posts the track to /tracks and returns the ID the sink assigned.
func (c *SinkClient) PushTrack(ctx context.Context, token string, upload TrackUpload) (string, error) {
	if c == nil {
		return "", fmt.Errorf("sink client not configured")
	}
	if c.baseURL == "" {
		return "", fmt.Errorf("sink base URL is empty")
	}
	if upload.Colors == nil {
		upload.Colors = colortrack.ColorTrack{}
	}

	buf, err := json.Marshal(upload)
	if err != nil {
		return "", fmt.Errorf("encode track: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/tracks", bytes.NewReader(buf))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("sink request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		errBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sink push failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(errBody)))
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode sink response: %w", err)
	}
	if payload.ID == "" {
		return "", fmt.Errorf("sink returned empty id")
	}
	return payload.ID, nil
}
