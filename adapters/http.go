package adapters

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/finmcp/pkg/metricskey"
	"github.com/effective-security/xlog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/finmcp", "adapters")

var tracer = otel.Tracer("github.com/effective-security/finmcp/adapters")

// Timeout classes
const (
	// ShortTimeout is used for lightweight lookups
	ShortTimeout = 10 * time.Second
	// LongTimeout is used for generation style calls
	LongTimeout = 2 * time.Minute
)

// maxBodySize limits the size of a response body
const maxBodySize = 8 << 20

// maxMessageSize limits the remote text kept in an Error
const maxMessageSize = 256

// Config is the endpoint of an external service
type Config struct {
	BaseURL string        `json:"base_url" yaml:"base_url" validate:"required,url"`
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Option configures an adapter
type Option func(*caller)

// WithHTTPClient sets the HTTP client, its own Timeout is ignored
// in favor of the adapter timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(c *caller) {
		c.client = client
	}
}

// WithMaxBodySize overrides the response body limit,
// a larger successful response fails as DecodeFailed.
func WithMaxBodySize(n int64) Option {
	return func(c *caller) {
		c.maxBody = n
	}
}

// WithTimeout overrides the configured timeout
func WithTimeout(d time.Duration) Option {
	return func(c *caller) {
		c.timeout = d
	}
}

// caller performs one bounded HTTP exchange and classifies its failure.
type caller struct {
	name    string
	baseURL string
	timeout time.Duration
	maxBody int64
	client  *http.Client
}

func newCaller(name string, cfg Config, def time.Duration, opts ...Option) *caller {
	c := &caller{
		name:    name,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		timeout: cfg.Timeout,
		maxBody: maxBodySize,
		client:  http.DefaultClient,
	}
	if c.timeout <= 0 {
		c.timeout = def
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	method      string
	url         string
	body        []byte
	contentType string
}

// do sends the request and returns the body of a 2xx response.
func (c *caller) do(ctx context.Context, req request) (body []byte, err error) {
	started := time.Now()

	ctx, span := tracer.Start(ctx, "adapter."+c.name,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("adapter", c.name),
			attribute.String("http.method", req.method),
		))
	defer func() {
		metricskey.PerfAdapterCall.MeasureSince(started, c.name)
		if err != nil {
			kind, _ := KindOf(err)
			metricskey.StatsAdapterCallsFailed.IncrCounter(1, c.name, string(kind))
			span.RecordError(err)
			span.SetStatus(codes.Error, string(kind))
			logger.ContextKV(ctx, xlog.ERROR,
				"status", "adapter_failed",
				"adapter", c.name,
				"kind", kind,
				"elapsed", time.Since(started).String(),
				"err", err.Error(),
			)
		} else {
			metricskey.StatsAdapterCallsSucceeded.IncrCounter(1, c.name)
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var rd io.Reader
	if req.body != nil {
		rd = bytes.NewReader(req.body)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.method, req.url, rd)
	if err != nil {
		return nil, &Error{Adapter: c.name, Kind: KindNetwork, Message: "invalid request", Err: errors.WithStack(err)}
	}
	if req.contentType != "" {
		hreq.Header.Set("Content-Type", req.contentType)
	}
	hreq.Header.Set("Accept", "application/json, text/plain")

	logger.ContextKV(ctx, xlog.DEBUG, "adapter", c.name, "method", req.method, "url", req.url)

	resp, err := c.client.Do(hreq)
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, c.classify(ctx, err)
	}
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return nil, &Error{Adapter: c.name, Kind: KindRemoteRejected, Status: resp.StatusCode, Message: truncate(msg, maxMessageSize)}
	}
	if int64(len(body)) > c.maxBody {
		return nil, c.decodeFailed("response body exceeds "+strconv.FormatInt(c.maxBody, 10)+" bytes", nil)
	}

	logger.ContextKV(ctx, xlog.DEBUG, "adapter", c.name, "response", string(body))
	return body, nil
}

func (c *caller) classify(ctx context.Context, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return &Error{Adapter: c.name, Kind: KindTimeout, Message: "exceeded " + c.timeout.String(), Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &Error{Adapter: c.name, Kind: KindTimeout, Message: "exceeded " + c.timeout.String(), Err: err}
	}
	return &Error{Adapter: c.name, Kind: KindNetwork, Message: err.Error(), Err: err}
}

func (c *caller) decodeFailed(msg string, err error) error {
	return &Error{Adapter: c.name, Kind: KindDecodeFailed, Message: msg, Err: err}
}

// truncate cuts s to at most n bytes on a rune boundary
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
