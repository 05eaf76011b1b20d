package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	http "github.com/bogdanfinn/fhttp"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	apierrors "github.com/sanchai/sanchai/internal/errors"
	"github.com/sanchai/sanchai/internal/models"
)

// maxResponseSize caps the body read from the collaborator
const maxResponseSize = 4 << 20

// Chat posts message to the chat endpoint and returns the decoded reply.
// A 2xx answer without a usable "response" field is not an error: the
// returned reply simply has an empty Response.
func (c *Client) Chat(ctx context.Context, message string) (*models.ChatReply, error) {
	if c.IsClosed() {
		return nil, apierrors.NewNetworkError("chat request", apierrors.ErrClientClosed)
	}

	payload, err := json.Marshal(models.ChatRequest{Message: message})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, models.EndpointChat, "chat request", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}

	return parseChatReply(body)
}

// Status queries the collaborator's status endpoint
func (c *Client) Status(ctx context.Context) (*models.Status, error) {
	if c.IsClosed() {
		return nil, apierrors.NewNetworkError("status request", apierrors.ErrClientClosed)
	}

	body, err := c.do(ctx, http.MethodGet, models.EndpointStatus, "status request", nil)
	if err != nil {
		return nil, err
	}

	return parseStatus(body)
}

// do performs a request and returns the body of a 2xx answer
func (c *Client) do(ctx context.Context, method, path, operation string, reqBody io.Reader) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for key, value := range models.DefaultHeaders() {
		if reqBody == nil && key == "Content-Type" {
			continue
		}
		req.Header.Set(key, value)
	}

	c.logger.Debug("sending request",
		zap.String("method", method),
		zap.String("endpoint", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr == context.DeadlineExceeded {
			return nil, apierrors.NewTimeoutError(fmt.Sprintf("%s after %v", operation, c.timeout))
		}
		c.logger.Warn("request failed", zap.String("endpoint", path), zap.Error(err))
		return nil, apierrors.NewNetworkErrorWithEndpoint(operation, path, err)
	}
	defer func() {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
	}()

	body, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))

	c.logger.Debug("received response",
		zap.String("endpoint", path),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if readErr != nil || len(body) == 0 {
			return nil, apierrors.NewAPIError(resp.StatusCode, path)
		}
		return nil, apierrors.NewAPIErrorWithBody(resp.StatusCode, path, string(body))
	}

	if readErr != nil {
		return nil, apierrors.NewNetworkErrorWithEndpoint(operation, path, readErr)
	}

	return body, nil
}

// parseChatReply extracts the "response" field from a chat answer.
// Invalid JSON and a JSON null are hard failures; any other JSON value
// without a string-able "response" yields an empty reply.
func parseChatReply(body []byte) (*models.ChatReply, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("invalid JSON in chat response", models.EndpointChat)
	}

	parsed := gjson.ParseBytes(body)
	if parsed.Type == gjson.Null {
		return nil, apierrors.NewParseError("chat response is null", models.EndpointChat)
	}

	return &models.ChatReply{
		Response: responseText(parsed.Get("response")),
		Raw:      parsed.Raw,
	}, nil
}

// responseText converts the "response" field to display text. Falsy JSON
// values (missing, null, false, 0, "") all collapse to "".
func responseText(field gjson.Result) string {
	switch field.Type {
	case gjson.String:
		return field.Str
	case gjson.Number:
		if field.Num == 0 {
			return ""
		}
		return field.Raw
	case gjson.True:
		return "true"
	case gjson.JSON:
		return field.Raw
	default:
		return ""
	}
}

// parseStatus decodes the status endpoint answer
func parseStatus(body []byte) (*models.Status, error) {
	if !gjson.ValidBytes(body) {
		return nil, apierrors.NewParseError("invalid JSON in status response", models.EndpointStatus)
	}

	parsed := gjson.ParseBytes(body)
	if !parsed.IsObject() {
		return nil, apierrors.NewParseError("status response is not an object", models.EndpointStatus)
	}

	status := &models.Status{
		Status:     parsed.Get("status").String(),
		KeysLoaded: make(map[string]bool),
	}
	parsed.Get("keys_loaded").ForEach(func(key, value gjson.Result) bool {
		status.KeysLoaded[key.String()] = value.Bool()
		return true
	})

	return status, nil
}
