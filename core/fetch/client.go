// Package fetch implements the fetch collaborators: the Socorro API client
// and the correlations CDN client. Failures map onto the typed outcomes in
// core (not-found, rate-limited, parse error with payload preview); the
// normalization core never sees a failed fetch.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/crashtools/socorro-cli/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "socorro-cli/1.0 (https://github.com/crashtools/socorro-cli)"
)

// searchColumns is the fixed set of public columns requested per hit.
var searchColumns = []string{
	"uuid", "date", "signature", "product", "version",
	"platform", "build_id", "release_channel",
}

// Client talks to the Socorro API.
type Client struct {
	baseURL string
	client  *http.Client
	token   func() string
	log     *zap.Logger
}

// NewClient creates a Client for the given API base URL. tokenFn supplies
// the API token for authenticated requests, or "" when none is stored; a
// nil tokenFn disables authentication entirely.
func NewClient(baseURL string, tokenFn func() string, log *zap.Logger) *Client {
	if tokenFn == nil {
		tokenFn = func() string { return "" }
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		token:   tokenFn,
		log:     log,
	}
}

// FetchCrash retrieves one processed crash record. When useAuth is false
// the API token is skipped even if one is stored, so the server strips
// protected fields from the response.
func (c *Client) FetchCrash(ctx context.Context, crashID string, useAuth bool) (*core.CrashFetchResult, error) {
	if !validCrashID(crashID) {
		return nil, &core.InvalidCrashIDError{ID: crashID}
	}

	endpoint := c.baseURL + "/ProcessedCrash/?" + url.Values{"crash_id": {crashID}}.Encode()
	body, status, err := c.get(ctx, endpoint, useAuth)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		record, err := decodeJSON[core.RawCrashRecord](body)
		if err != nil {
			return nil, err
		}
		return &core.CrashFetchResult{Record: record, Payload: body}, nil
	case http.StatusNotFound:
		return nil, &core.NotFoundError{What: "crash " + crashID}
	case http.StatusTooManyRequests:
		return nil, core.ErrRateLimited
	default:
		return nil, fmt.Errorf("unexpected status %d fetching crash %s", status, crashID)
	}
}

// Search runs a Super Search query.
func (c *Client) Search(ctx context.Context, params core.SearchParams) (*core.RawSearchResponse, error) {
	endpoint := c.baseURL + "/SuperSearch/?" + searchQuery(params).Encode()
	body, status, err := c.get(ctx, endpoint, true)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return decodeJSON[core.RawSearchResponse](body)
	case http.StatusTooManyRequests:
		return nil, core.ErrRateLimited
	default:
		return nil, fmt.Errorf("unexpected status %d from search", status)
	}
}

// get performs one request and returns the body and status code. Transport
// failures are returned as-is; status handling is the caller's job.
func (c *Client) get(ctx context.Context, endpoint string, useAuth bool) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "application/json")
	if useAuth {
		if token := c.token(); token != "" {
			req.Header.Set("Auth-Token", token)
		}
	}

	c.log.Debug("fetching", zap.String("url", endpoint), zap.Bool("auth", useAuth))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}

	c.log.Debug("fetched", zap.Int("status", resp.StatusCode), zap.Int("bytes", len(body)))
	return body, resp.StatusCode, nil
}

// searchQuery builds the Super Search query string from the parameter set.
func searchQuery(params core.SearchParams) url.Values {
	q := url.Values{}
	q.Set("product", params.Product)
	q.Set("_results_number", fmt.Sprintf("%d", params.Limit))
	q.Set("_sort", params.Sort)
	for _, col := range searchColumns {
		q.Add("_columns", col)
	}

	since := time.Now().UTC().AddDate(0, 0, -params.Days)
	q.Set("date", ">="+since.Format("2006-01-02"))

	optional := map[string]string{
		"signature":        params.Signature,
		"version":          params.Version,
		"platform":         params.Platform,
		"cpu_arch":         params.CPUArch,
		"release_channel":  params.Channel,
		"platform_version": params.PlatformVersion,
		"process_type":     params.ProcessType,
	}
	for key, value := range optional {
		if value != "" {
			q.Set(key, value)
		}
	}

	for _, facet := range params.Facets {
		q.Add("_facets", facet)
	}
	if params.FacetsSize > 0 {
		q.Set("_facets_size", fmt.Sprintf("%d", params.FacetsSize))
	}
	return q
}

// validCrashID reports whether the ID contains only hex digits and dashes.
// Anything else is rejected before it can reach the query string.
func validCrashID(id string) bool {
	if id == "" {
		return false
	}
	for _, c := range id {
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
