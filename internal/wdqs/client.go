// Package wdqs is a small client for the Wikidata Query Service SPARQL
// endpoint. Every query is written to the wikidata_query log before it is
// sent and completed afterwards with its end time, HTTP status, row count and
// error text, so slow or failing queries can be inspected later.
//
// Outbound traffic is throttled with a token bucket; WDQS enforces per-agent
// limits and asks clients to send a descriptive User-Agent.
package wdqs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/tbourn/depicts-backend/internal/config"
	"github.com/tbourn/depicts-backend/internal/domain"
	"github.com/tbourn/depicts-backend/internal/repo"
)

// ErrEmptyQuery is returned by Run for a blank query.
var ErrEmptyQuery = errors.New("sparql query is empty")

// maxErrorBody caps how much of a failed response body is kept.
const maxErrorBody = 4 << 10

// StatusError is returned when the endpoint answers with a non-200 status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("wdqs: status %d: %s", e.Code, e.Body)
}

// Request describes one query and the context it was issued from.
type Request struct {
	Query     string
	Template  string // e.g. "query/artwork.sparql"
	Path      string // request path that triggered the query
	PageTitle string
}

// Value is one RDF term in a result binding.
type Value struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	Lang     string `json:"xml:lang,omitempty"`
	Datatype string `json:"datatype,omitempty"`
}

// Result is a decoded application/sparql-results+json document.
type Result struct {
	QueryID  uint
	Vars     []string
	Bindings []map[string]Value
	Boolean  *bool
}

type resultsDoc struct {
	Head struct {
		Vars []string `json:"vars"`
	} `json:"head"`
	Results struct {
		Bindings []map[string]Value `json:"bindings"`
	} `json:"results"`
	Boolean *bool `json:"boolean"`
}

// Client sends SPARQL queries to a WDQS endpoint.
type Client struct {
	Endpoint  string
	UserAgent string
	HTTP      *http.Client
	// DB receives the query log. Nil disables logging.
	DB *gorm.DB

	limiter *rate.Limiter
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.HTTP = h
		}
	}
}

// WithClock overrides the time source used for the query log.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New builds a Client from cfg. rps <= 0 disables throttling.
func New(cfg config.WDQSConfig, db *gorm.DB, opts ...Option) *Client {
	lim := rate.NewLimiter(rate.Inf, 1)
	if cfg.RPS > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(cfg.RPS), burst)
	}
	c := &Client{
		Endpoint:  cfg.Endpoint,
		UserAgent: cfg.UserAgent,
		HTTP:      &http.Client{Timeout: cfg.Timeout},
		DB:        db,
		limiter:   lim,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Run sends req and decodes the result. The query log row is completed even
// when the call fails; a failure to write the log is reported but does not
// hide the query error.
func (c *Client) Run(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, ErrEmptyQuery
	}

	tr := otel.Tracer("wdqs/Client")
	ctx, span := tr.Start(ctx, "Run",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("wdqs.endpoint", c.Endpoint),
			attribute.String("wdqs.template", req.Template),
		),
	)
	defer span.End()

	if err := c.limiter.Wait(ctx); err != nil {
		span.RecordError(err)
		return nil, err
	}

	entry, err := c.start(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("wdqs: log query: %w", err)
	}

	began := time.Now()
	res, status, runErr := c.do(ctx, req.Query)
	queryDuration.Observe(time.Since(began).Seconds())
	queriesTotal.WithLabelValues(outcome(status, runErr)).Inc()

	if ferr := c.finish(ctx, entry, status, res, runErr); ferr != nil {
		log.Ctx(ctx).Warn().Err(ferr).Uint("query_id", idOf(entry)).Msg("wdqs: could not complete query log")
	}

	if status != 0 {
		span.SetAttributes(attribute.Int("http.status_code", status))
	}
	if runErr != nil {
		span.RecordError(runErr)
		span.SetStatus(codes.Error, runErr.Error())
		return nil, runErr
	}
	res.QueryID = idOf(entry)
	span.SetAttributes(attribute.Int("wdqs.rows", len(res.Bindings)))
	return res, nil
}

func (c *Client) do(ctx context.Context, query string) (*Result, int, error) {
	form := url.Values{"query": {query}}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, 0, err
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	httpReq.Header.Set("Accept", "application/sparql-results+json")
	if c.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.HTTP.Do(httpReq)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, resp.StatusCode, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var doc resultsDoc
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, resp.StatusCode, fmt.Errorf("wdqs: decode results: %w", err)
	}
	return &Result{
		Vars:     doc.Head.Vars,
		Bindings: doc.Results.Bindings,
		Boolean:  doc.Boolean,
	}, resp.StatusCode, nil
}

func (c *Client) start(ctx context.Context, req Request) (*domain.WikidataQuery, error) {
	if c.DB == nil {
		return nil, nil
	}
	q := &domain.WikidataQuery{
		StartTime:     c.now(),
		SPARQLQuery:   req.Query,
		Path:          optional(req.Path),
		QueryTemplate: optional(req.Template),
		PageTitle:     optional(req.PageTitle),
		Endpoint:      optional(c.Endpoint),
	}
	if err := repo.StartQuery(ctx, c.DB, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (c *Client) finish(ctx context.Context, q *domain.WikidataQuery, status int, res *Result, runErr error) error {
	if q == nil {
		return nil
	}
	out := repo.QueryOutcome{EndTime: c.now()}
	if status != 0 {
		out.StatusCode = &status
	}
	if res != nil {
		n := len(res.Bindings)
		out.RowCount = &n
	}
	if runErr != nil {
		msg := runErr.Error()
		out.ErrorText = &msg
	}
	// The caller's context may already be cancelled; the log row must still
	// be closed.
	return repo.FinishQuery(context.WithoutCancel(ctx), c.DB, q.ID, out)
}

func outcome(status int, err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &se):
		return "http_error"
	case status == http.StatusOK:
		return "decode_error"
	}
	return "transport_error"
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func idOf(q *domain.WikidataQuery) uint {
	if q == nil {
		return 0
	}
	return q.ID
}
