package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// TokenSource supplies the bearer token for authenticated operations.
// It is consulted on every call so a cleared session is observed
// immediately. An empty token means "not authenticated".
type TokenSource interface {
	Token() string
}

// Client talks to the news aggregation backend. All operations accept
// a context; cancelling it aborts the in-flight request. The client
// imposes no timeouts of its own.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource
}

// NormalizeBaseURL makes a configured base address usable: a bare
// host or host:port gets an http scheme, trailing slashes are
// stripped.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("base address is empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base address %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("base address %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("base address %q: missing host", raw)
	}
	return strings.TrimRight(u.String(), "/"), nil
}

// New builds a client for the given base address. Normalization
// happens once here; the address is used verbatim afterwards.
func New(baseURL string, tokens TokenSource) (*Client, error) {
	normalized, err := NormalizeBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: normalized,
		httpc:   &http.Client{},
		tokens:  tokens,
	}, nil
}

// BaseURL returns the normalized base address.
func (c *Client) BaseURL() string { return c.baseURL }

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

type request struct {
	op     string // per-operation fallback error message
	method string
	path   string
	query  url.Values
	body   any
	authed bool
}

// do executes one request and decodes the envelope's data field into
// out (when out is non-nil and data is present). It returns the
// envelope message for operations that surface it to the user.
func (c *Client) do(ctx context.Context, r request, out any) (string, error) {
	var token string
	if r.authed {
		token = c.tokens.Token()
		if token == "" {
			return "", ErrUnauthorized
		}
	}

	u := c.baseURL + r.path
	if len(r.query) > 0 {
		u += "?" + r.query.Encode()
	}

	var body *bytes.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return "", fmt.Errorf("%s: encoding request: %w", r.op, err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, u, body)
	if err != nil {
		return "", fmt.Errorf("%s: building request: %w", r.op, err)
	}
	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.httpc.Do(req)
	if err != nil {
		// Let cancellation surface as-is so callers can discard the
		// result without mistaking it for a backend failure.
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", ctx.Err()
		}
		return "", &Error{Op: r.op, Message: "request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := r.op + " failed"
		var env envelope
		if json.NewDecoder(resp.Body).Decode(&env) == nil && env.Message != "" {
			msg = env.Message
		}
		return "", &Error{Op: r.op, Status: resp.StatusCode, Message: msg}
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return "", &Error{Op: r.op, Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
	}
	if out != nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return "", &Error{Op: r.op, Status: resp.StatusCode, Message: "malformed response data: " + err.Error()}
		}
	}
	return env.Message, nil
}
