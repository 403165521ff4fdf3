package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/crashtools/socorro-cli/core"
)

// CorrelationsClient fetches pre-computed correlation documents from the
// CDN. Documents are published per channel, keyed by the SHA-1 of the
// crash signature. No API token is involved.
type CorrelationsClient struct {
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

// NewCorrelationsClient creates a CorrelationsClient for the given CDN
// base URL.
func NewCorrelationsClient(baseURL string, log *zap.Logger) *CorrelationsClient {
	if log == nil {
		log = zap.NewNop()
	}
	return &CorrelationsClient{
		baseURL: baseURL,
		client:  &http.Client{Timeout: defaultTimeout},
		log:     log,
	}
}

// FetchTotals retrieves the per-channel crash totals document.
func (c *CorrelationsClient) FetchTotals(ctx context.Context) (*core.RawCorrelationTotals, error) {
	body, status, err := c.get(ctx, c.baseURL+"/all.json.gz")
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching correlation totals", status)
	}
	return decodeJSON[core.RawCorrelationTotals](body)
}

// FetchSignature retrieves the correlation document for one signature on
// one channel. Only the top ~200 signatures per channel are published, so
// a missing document is an expected not-found outcome, not a server fault.
func (c *CorrelationsClient) FetchSignature(ctx context.Context, signature, channel string) (*core.RawCorrelationResponse, error) {
	endpoint := fmt.Sprintf("%s/%s/%s.json.gz", c.baseURL, channel, SignatureHash(signature))
	body, status, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusOK:
		return decodeJSON[core.RawCorrelationResponse](body)
	case http.StatusNotFound:
		return nil, &core.NotFoundError{
			What: fmt.Sprintf("correlation data for signature %q on channel %q (only the top ~200 signatures per channel are published)", signature, channel),
		}
	default:
		return nil, fmt.Errorf("unexpected status %d fetching correlations", status)
	}
}

func (c *CorrelationsClient) get(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)

	c.log.Debug("fetching", zap.String("url", endpoint))

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("fetching %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("reading response body: %w", err)
	}

	body, err = maybeGunzip(body)
	if err != nil {
		return nil, 0, fmt.Errorf("decompressing response: %w", err)
	}
	return body, resp.StatusCode, nil
}

// SignatureHash returns the hex SHA-1 of a signature, which addresses its
// correlation document on the CDN.
func SignatureHash(signature string) string {
	sum := sha1.Sum([]byte(signature))
	return hex.EncodeToString(sum[:])
}

var gzipMagic = []byte{0x1f, 0x8b}

// maybeGunzip decompresses the payload if the transport did not already do
// so. The CDN serves .gz files whose Content-Encoding varies, so the body
// may arrive either way.
func maybeGunzip(body []byte) ([]byte, error) {
	if !bytes.HasPrefix(body, gzipMagic) {
		return body, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

// decodeJSON decodes a payload into T, wrapping failures in a ParseError
// that carries a bounded preview of the payload.
func decodeJSON[T any](body []byte) (*T, error) {
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, core.NewParseError(err, body)
	}
	return &v, nil
}
