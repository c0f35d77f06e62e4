package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// FilterInvalidChars removes every character outside the ASCII range.
func FilterInvalidChars(value string) string {
	return strings.Map(func(r rune) rune {
		if r > 0x7F {
			return -1
		}
		return r
	}, value)
}

// sendRequest is the only transport primitive. It returns immediately; the
// request runs on its own goroutine and any failure is dropped.
func (tc *Client) sendRequest(ctx context.Context, payload Payload, eventType EventType) {
	if !tc.enabled {
		return
	}

	body, err := json.Marshal(requestBody{Type: eventType, Payload: payload})
	if err != nil {
		tc.logger.Debug("Failed to marshal telemetry payload", "error", err, "event_type", eventType)
		return
	}

	if tc.logger.Enabled(ctx, slog.LevelDebug) {
		tc.logger.Debug("Sending telemetry event", "event_type", eventType, "payload", string(body))
	}

	// In-flight requests outlive the caller's context.
	ctx = context.WithoutCancel(ctx)

	tc.mu.Lock()
	defer tc.mu.Unlock()
	if tc.closed {
		tc.logger.Debug("Dropping telemetry event, client closed", "event_type", eventType)
		return
	}
	tc.inflight.Go(func() {
		if err := tc.performHTTPRequest(ctx, body); err != nil {
			tc.logger.Debug("Failed to send telemetry event", "error", err, "event_type", eventType)
		}
	})
}

func (tc *Client) performHTTPRequest(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tc.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create HTTP request: %w", err)
	}

	tc.mu.Lock()
	ua, cache := tc.userAgent, tc.cache
	tc.mu.Unlock()

	req.Header.Set("Content-Type", "application/json")
	if ua != "" {
		req.Header.Set("User-Agent", ua)
	}
	if cache != "" {
		// net/http rejects header values with surrounding newlines.
		req.Header.Set(cacheHeader, strings.TrimSpace(FilterInvalidChars(cache)))
	}

	resp, err := tc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	tc.storeCache(string(data))
	return nil
}

// storeCache keeps the first non-empty response body; later bodies are ignored.
func (tc *Client) storeCache(value string) {
	tc.mu.Lock()
	defer tc.mu.Unlock()

	if tc.cache != "" || value == "" {
		return
	}
	tc.cache = value
	tc.logger.Info("Umami cache", "cache", value)
}
