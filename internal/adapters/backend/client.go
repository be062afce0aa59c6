// Package backend implements the resource clients for the remote ticketing REST API.
// Every call returns a model.Result envelope; failures never escape as Go errors.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/target/boxoffice/internal/domain/model"
	apperrors "github.com/target/boxoffice/internal/errors"
	"github.com/target/boxoffice/internal/observability/metrics"
	"github.com/target/boxoffice/internal/observability/statsd"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is used when no override is configured.
const DefaultBaseURL = "https://api.boxoffice.example.com"

// Options configures a Client.
type Options struct {
	BaseURL string
	// HTTPClient is the base client; its transport is wrapped to attach bearer tokens.
	// No timeout is applied beyond what it carries.
	HTTPClient *http.Client
	Logger     *slog.Logger
	// Metrics receives one sample per exchange; nil disables metrics.
	Metrics statsd.Sink
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	base    *http.Client
	logger  *slog.Logger
	metrics statsd.Sink
}

// New constructs a Client.
func New(opts Options) *Client {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		base:    hc,
		logger:  logger.With("component", "backend_client"),
		metrics: opts.Metrics,
	}
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// Events returns the events client.
func (c *Client) Events() *EventsClient { return &EventsClient{c: c} }

// Venues returns the venues client.
func (c *Client) Venues() *VenuesClient { return &VenuesClient{c: c} }

// Sections returns the sections client.
func (c *Client) Sections() *SectionsClient { return &SectionsClient{c: c} }

// Tickets returns the tickets client.
func (c *Client) Tickets() *TicketsClient { return &TicketsClient{c: c} }

// Foods returns the menu client.
func (c *Client) Foods() *FoodsClient { return &FoodsClient{c: c} }

// Upload returns the image upload client.
func (c *Client) Upload() *UploadClient { return &UploadClient{c: c} }

// Auth returns the login/logout client.
func (c *Client) Auth() *AuthClient { return &AuthClient{c: c} }

// httpClient returns a client that attaches token as a bearer credential when present.
func (c *Client) httpClient(token string) *http.Client {
	if token == "" {
		return c.base
	}
	base := c.base.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   base,
		},
		CheckRedirect: c.base.CheckRedirect,
		Jar:           c.base.Jar,
		Timeout:       c.base.Timeout,
	}
}

// request describes one backend call.
type request struct {
	method      string
	path        string
	token       string
	body        io.Reader
	contentType string
	// keys are the response fields the payload may live under, in preference order.
	keys []string
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return bytes.NewReader(b), nil
}

// response is a completed exchange with a decoded body.
type response struct {
	status int
	fields map[string]json.RawMessage
	raw    []byte
}

// do performs the exchange. A returned error is a transport failure; non-2xx responses are not errors.
func (c *Client) do(ctx context.Context, r request) (*response, error) {
	req, err := http.NewRequestWithContext(ctx, r.method, c.baseURL+r.path, r.body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}

	start := time.Now()
	resp, err := c.httpClient(r.token).Do(req)
	call := metrics.BackendCall{Method: r.method, Path: r.path, Duration: time.Since(start), Err: err}
	if err != nil {
		metrics.EmitBackendCall(c.metrics, call)
		return nil, err
	}
	call.Status = resp.StatusCode
	metrics.EmitBackendCall(c.metrics, call)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	out := &response{status: resp.StatusCode, raw: raw}
	if len(bytes.TrimSpace(raw)) > 0 {
		// Non-object bodies are tolerated; callers fall back to the raw bytes.
		_ = json.Unmarshal(raw, &out.fields)
	}
	return out, nil
}

func (r *response) ok() bool { return r.status >= 200 && r.status < 300 }

// failureMessage picks the server's message, then its error field, then a generic message.
func (r *response) failureMessage() string {
	for _, key := range []string{"message", "error"} {
		if v, ok := r.fields[key]; ok {
			var s string
			if json.Unmarshal(v, &s) == nil && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return apperrors.Upstream(r.status, "").Message
}

// payload locates the resource in a success body: the first present key, then "data",
// then the whole body.
func (r *response) payload(keys []string) []byte {
	for _, k := range append(append([]string{}, keys...), "data") {
		if v, ok := r.fields[k]; ok {
			return v
		}
	}
	return r.raw
}

// call performs r and maps the outcome into the envelope.
func call[T any](ctx context.Context, c *Client, r request) model.Result[T] {
	resp, err := c.do(ctx, r)
	if err != nil {
		appErr := apperrors.Transport(err)
		c.logger.DebugContext(ctx, "backend request failed", "method", r.method, "path", r.path, "error", err)
		return model.Fail[T](appErr.Message)
	}
	if !resp.ok() {
		res := model.Fail[T](resp.failureMessage())
		res.Status = resp.status
		c.logger.DebugContext(ctx, "backend returned failure",
			"method", r.method, "path", r.path, "status", resp.status, "message", res.Error)
		return res
	}

	var data T
	if body := resp.payload(r.keys); len(bytes.TrimSpace(body)) > 0 && len(r.keys) > 0 {
		if err := json.Unmarshal(body, &data); err != nil {
			res := model.Fail[T](fmt.Sprintf("invalid response from server: %v", err))
			res.Status = resp.status
			return res
		}
	}
	res := model.OK(data)
	res.Status = resp.status
	return res
}

// Err converts a failed envelope into an AppError for callers that need Go error semantics.
// It returns nil for successful envelopes.
func Err[T any](res model.Result[T]) error {
	if res.Success {
		return nil
	}
	if res.Status == 0 {
		return apperrors.Transport(errors.New(res.Error))
	}
	return apperrors.Upstream(res.Status, res.Error)
}
