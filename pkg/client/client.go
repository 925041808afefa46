package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/reefdb/reefdb-go/pkg/query"
	"github.com/reefdb/reefdb-go/pkg/values"
)

const defaultTimeout = 60 * time.Second

// QueryRunner executes one query expression against the database and returns
// the decoded response value. The pagination engine depends on this seam, so
// tests can drive it without a server.
type QueryRunner interface {
	Query(ctx context.Context, expr query.Expr) (values.Value, error)
}

// Config carries the connection settings for a Client. Secrets can be
// injected from the environment by the caller; the client itself never reads
// env vars.
type Config struct {
	Endpoint string        `json:"endpoint" yaml:"endpoint"`
	Secret   string        `json:"secret" yaml:"secret"`
	Timeout  time.Duration `json:"timeout" yaml:"timeout"`

	// HTTPClient overrides the default http.Client, e.g. for custom TLS.
	HTTPClient *http.Client `json:"-" yaml:"-"`
}

// Client speaks the wire protocol: it POSTs the encoded expression tree and
// decodes the response envelope back into values.
type Client struct {
	config     Config
	httpClient *http.Client
}

func NewClient(config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{config: config, httpClient: httpClient}
}

// Query executes one expression. Construction and arity errors deferred by
// the query builders surface here, before anything goes on the wire.
func (c *Client) Query(ctx context.Context, expr query.Expr) (values.Value, error) {
	body, err := json.Marshal(expr)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		slog.Error("unexpected error in preparing query request", slog.String("error", err.Error()))
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.config.Secret != "" {
		req.Header.Set("Api-Key", c.config.Secret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("unexpected error in query call", slog.String("error", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Error("error reading query response", slog.String("error", err.Error()))
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var envelope struct {
		Resource json.RawMessage `json:"resource"`
	}
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return nil, values.DecodeError{Reason: "malformed response envelope: " + err.Error()}
	}
	if len(envelope.Resource) == 0 {
		return nil, values.DecodeError{Reason: "response envelope missing resource"}
	}
	return values.FromJSON(envelope.Resource)
}

// Paginate starts a cursor over the given set, executed through this client.
func (c *Client) Paginate(set query.Expr, opts ...PagesOpt) *Pages {
	return NewPages(c, set, opts...)
}
