// Package notion queries Notion databases over the public REST API.
package notion

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"notion-config-tool/internal/domain"
	"notion-config-tool/internal/domain/entity"
	"notion-config-tool/internal/domain/property"
	"notion-config-tool/pkg/contextx"
	"notion-config-tool/pkg/errcodes"
	"notion-config-tool/pkg/httpx"
	"notion-config-tool/pkg/logx"
	"notion-config-tool/pkg/metrics"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

const (
	DefaultBaseURL = "https://api.notion.com/v1"
	APIVersion     = "2022-06-28"

	pageSize       = 100
	errorBodyLimit = 4096
)

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*options)

type options struct {
	baseURL        string
	transport      http.RoundTripper
	timeout        time.Duration
	logFieldMaxLen int
}

func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

func WithTransport(transport http.RoundTripper) Option {
	return func(o *options) {
		o.transport = transport
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

func WithLogFieldMaxLen(n int) Option {
	return func(o *options) {
		o.logFieldMaxLen = n
	}
}

// NewClient builds a client authenticating with an integration token. The
// token is masked in request logs.
func NewClient(token string, opts ...Option) *Client {
	o := options{
		baseURL:   DefaultBaseURL,
		transport: http.DefaultTransport,
		timeout:   time.Minute,
	}

	for _, opt := range opts {
		opt(&o)
	}

	transport := httpx.NewAuthBearerRoundTripper(
		httpx.NewLoggingRoundTripper(
			o.transport,
			httpx.WithSensitiveDataMasker(logx.NewSensitiveDataMasker()),
			httpx.WithLogFieldMaxLen(o.logFieldMaxLen),
		),
		staticToken(token),
	)

	return &Client{
		baseURL:    o.baseURL,
		httpClient: &http.Client{Transport: transport, Timeout: o.timeout},
	}
}

// staticToken never refreshes. Authenticate is only called when the token is
// empty or was rejected.
type staticToken string

func (t staticToken) Authenticate(context.Context) error {
	if t == "" {
		return domain.NewError(errcodes.NotionTokenMissing, "notion token is not configured")
	}

	return domain.NewError(errcodes.NotionUnauthorized, "notion token was rejected")
}

func (t staticToken) BearerToken() string {
	return string(t)
}

type queryRequest struct {
	Filter      map[string]any `json:"filter,omitempty"`
	Sorts       []entity.Sort  `json:"sorts,omitempty"`
	StartCursor string         `json:"start_cursor,omitempty"`
	PageSize    int            `json:"page_size"`
}

type queryResponse struct {
	Results    []property.Page `json:"results"`
	HasMore    bool            `json:"has_more"`
	NextCursor string          `json:"next_cursor"`
}

// QueryAll runs a database query and follows the cursor until every page is
// fetched.
func (c *Client) QueryAll(ctx context.Context, databaseID string, query entity.Query) ([]property.Page, error) {
	start := time.Now()
	pages := make([]property.Page, 0)
	cursor := ""

	for {
		resp, err := c.query(ctx, databaseID, queryRequest{
			Filter:      query.Filter,
			Sorts:       query.Sorts,
			StartCursor: cursor,
			PageSize:    pageSize,
		})
		if err != nil {
			return nil, err
		}

		pages = append(pages, resp.Results...)

		if !resp.HasMore || resp.NextCursor == "" {
			break
		}

		cursor = resp.NextCursor
	}

	metrics.NotionPagesFetched.WithLabelValues(databaseID).Add(float64(len(pages)))
	metrics.NotionQueryDuration.WithLabelValues(databaseID).Observe(time.Since(start).Seconds())

	logger(ctx).Debug("notion database queried",
		slog.String("database", databaseID),
		slog.Int("pages", len(pages)),
		slog.Int64(logx.FieldDurationMs, time.Since(start).Milliseconds()),
	)

	return pages, nil
}

func (c *Client) query(ctx context.Context, databaseID string, body queryRequest) (queryResponse, error) {
	payload, err := jsoniter.Marshal(body)
	if err != nil {
		return queryResponse{}, fmt.Errorf("jsoniter.Marshal: %w", err)
	}

	url := c.baseURL + "/databases/" + databaseID + "/query"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return queryResponse{}, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	req.Header.Set("Notion-Version", APIVersion)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return queryResponse{}, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))

		code := errcodes.NotionUnavailable
		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			code = errcodes.NotionUnauthorized
		}

		return queryResponse{}, domain.NewError(code, fmt.Sprintf("Notion API Error %d: %s", resp.StatusCode, text))
	}

	var out queryResponse
	if err := jsoniter.NewDecoder(resp.Body).Decode(&out); err != nil {
		return queryResponse{}, fmt.Errorf("decode query response: %w", err)
	}

	return out, nil
}
