// Package api is the HTTP/JSON gateway to the project-management backend.
//
// Identifiers travel as domain.EntityID, which never passes through float64,
// so 64-bit snowflake IDs survive both directions. Identical concurrent GETs
// are coalesced into one network call.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/equilibra/eqboard/internal/domain"
)

// Options configures a Client.
// Fields are ordered to minimize memory padding.
type Options struct {
	HTTPClient  *http.Client  // nil = a client with Timeout
	Logger      domain.Logger // nil = discard
	BaseURL     string
	Token       string        // Bearer token; empty = no Authorization header
	Timeout     time.Duration // Per request; 0 = none
	DedupWindow time.Duration // Linger after a GET settles; 0 = in-flight only
	RateLimit   float64       // Requests per second; 0 = unlimited
	Burst       int
}

// OptionsFromConfig maps the [api] section onto Options.
func OptionsFromConfig(cfg domain.APIConfig, logger domain.Logger) Options {
	return Options{
		Logger:      logger,
		BaseURL:     cfg.BaseURL,
		Token:       cfg.Token,
		Timeout:     cfg.Timeout,
		DedupWindow: cfg.DedupWindow,
		RateLimit:   cfg.RateLimit,
		Burst:       cfg.Burst,
	}
}

// Client talks to the backend. It is safe for concurrent use.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	reads   *readGroup
	logger  domain.Logger
	baseURL string
	token   string
	timeout time.Duration
}

// New creates a Client.
func New(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = domain.NopLogger{}
	}
	var limiter *rate.Limiter
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	return &Client{
		http:    httpClient,
		limiter: limiter,
		reads:   newReadGroup(opts.DedupWindow),
		logger:  logger,
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		token:   opts.Token,
		timeout: opts.Timeout,
	}
}

// resolve joins the base URL and endpoint.
func (c *Client) resolve(endpoint string) string {
	return c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
}

// Do sends a request and decodes the JSON response into out (which may be
// nil). body, when non-nil, is encoded as JSON. GET requests go through the
// read de-duplication; other methods start a new read generation both
// before they are sent and after they complete.
func (c *Client) Do(ctx context.Context, method, endpoint string, body, out any) error {
	url := c.resolve(endpoint)

	var resp response
	var err error
	if method == http.MethodGet {
		var shared bool
		resp, shared, err = c.reads.do(ctx, url, func(ctx context.Context) (response, error) {
			return c.send(ctx, method, url, nil)
		})
		if shared {
			c.logger.Debug("", "api", fmt.Sprintf("GET %s joined a shared request", endpoint))
		}
	} else {
		var payload []byte
		if body != nil {
			payload, err = json.Marshal(body)
			if err != nil {
				return &Error{Method: method, URL: url, Err: fmt.Errorf("encode request: %w", err)}
			}
		}
		c.reads.invalidate()
		resp, err = c.send(ctx, method, url, payload)
		c.reads.invalidate()
	}
	if err != nil {
		return err
	}
	return decode(method, url, resp, out)
}

// response is the status and body of a 2xx exchange.
type response struct {
	body   []byte
	status int
}

// send performs one HTTP exchange and returns the response of a 2xx.
func (c *Client) send(ctx context.Context, method, url string, payload []byte) (response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return response{}, &Error{Method: method, URL: url, Err: fmt.Errorf("rate limit: %w", err)}
		}
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return response{}, &Error{Method: method, URL: url, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if id := domain.RequestIDFrom(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	httpResp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("", "api", fmt.Sprintf("%s %s: %v", method, url, err))
		return response{}, &Error{Method: method, URL: url, Err: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return response{}, &Error{Method: method, URL: url, StatusCode: httpResp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}
	c.logger.Debug("", "api", fmt.Sprintf("%s %s -> %d (%s)", method, url, httpResp.StatusCode, time.Since(start).Round(time.Millisecond)))

	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return response{}, newStatusError(method, url, httpResp, respBody)
	}
	return response{body: respBody, status: httpResp.StatusCode}, nil
}

// decode unmarshals a response body. Numbers in untyped targets stay
// json.Number so no identifier is rounded.
func decode(method, url string, resp response, out any) error {
	if out == nil || len(bytes.TrimSpace(resp.body)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(resp.body))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		return &Error{Method: method, URL: url, StatusCode: resp.status, Err: fmt.Errorf("decode response: %w", err), Message: "malformed response from " + url}
	}
	return nil
}
