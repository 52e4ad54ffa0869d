package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"finaily/outcome"

	"github.com/google/uuid"
)

// maxBodyBytes caps how much of a response is read
const maxBodyBytes = 4 << 20

// Request describes one backend call
type Request struct {
	Method     string
	Path       string
	Query      url.Values
	Body       any
	Credential string
}

// Do performs a JSON request and classifies the result. It never returns a Go
// error: transport failures, HTTP errors and bad payloads are all outcomes.
func Do[T any](ctx context.Context, c *Client, r Request) outcome.Outcome[T] {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		jsonData, err := json.Marshal(r.Body)
		if err != nil {
			return requestError[T](c, method, r.Path, fmt.Errorf("failed to marshal request: %w", err))
		}
		body = bytes.NewReader(jsonData)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return requestError[T](c, method, r.Path, fmt.Errorf("failed to create request: %w", err))
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if r.Credential != "" {
		req.Header.Set("Authorization", "Bearer "+r.Credential)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", r.Path, "request_id", requestID,
			"duration", time.Since(start), "error", err)
		return outcome.FromTransportError[T](err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		// The status line arrived but the body did not.
		c.logger.Debug("reading body failed", "method", method, "path", r.Path, "request_id", requestID,
			"status", resp.StatusCode, "error", err)
		return outcome.FromTransportError[T](fmt.Errorf("failed to read response: %w", err))
	}

	c.logger.Debug("request done", "method", method, "path", r.Path, "request_id", requestID,
		"status", resp.StatusCode, "duration", time.Since(start), "bytes", len(raw))

	return outcome.FromResponse[T](resp.StatusCode, raw)
}

// requestError reports a request that could not be built. Nothing was sent;
// the cause is the client's own setup (base URL, body type), not user input.
func requestError[T any](c *Client, method, path string, err error) outcome.Outcome[T] {
	c.logger.Error("cannot build request", "method", method, "base_url", c.baseURL, "path", path, "error", err)
	return outcome.Fail[T](&outcome.Error{
		Class:   outcome.ValidationError,
		Code:    outcome.CodeRequest,
		Message: err.Error(),
	})
}
