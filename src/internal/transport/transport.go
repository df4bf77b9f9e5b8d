// Package transport implements the document-fetch collaborator over HTTP.
package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/fogz-io/fogz/src/internal/xmldoc"
)

// HTTPFetcher issues GET requests against the tracker's api.asp endpoint
// and parses the XML body. It injects the auth token into every request;
// callers never see or pass it.
type HTTPFetcher struct {
	baseURL string
	token   string
	client  *http.Client
	log     *zap.Logger
}

// New builds an HTTPFetcher for the given endpoint, e.g.
// "https://tracker.example.com/fogbugz/".
func New(baseURL, token string, logger *zap.Logger) *HTTPFetcher {
	return &HTTPFetcher{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 30 * time.Second},
		log:     logger,
	}
}

// FetchDocument performs one API call. Each request carries a fresh
// X-Request-Id so client and server logs can be correlated.
func (f *HTTPFetcher) FetchDocument(ctx context.Context, params url.Values) (*xmldoc.Document, error) {
	requestID := uuid.New().String()
	cmd := params.Get("cmd")

	query := url.Values{}
	for key, vals := range params {
		query[key] = vals
	}
	query.Set("token", f.token)

	endpoint := f.baseURL + "/api.asp?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("X-Request-Id", requestID)

	start := time.Now()
	f.log.Debug("request started", zap.String("cmd", cmd), zap.String("request_id", requestID))

	resp, err := f.client.Do(req)
	if err != nil {
		f.log.Error("request failed", zap.String("cmd", cmd), zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("call %s: %w", cmd, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			f.log.Error("close response body failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}()

	if resp.StatusCode != http.StatusOK {
		f.log.Error("unexpected status", zap.String("cmd", cmd), zap.String("request_id", requestID), zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("call %s: unexpected status %d", cmd, resp.StatusCode)
	}

	doc, err := xmldoc.Parse(resp.Body)
	if err != nil {
		f.log.Error("parse response failed", zap.String("cmd", cmd), zap.String("request_id", requestID), zap.Error(err))
		return nil, fmt.Errorf("parse %s response: %w", cmd, err)
	}

	f.log.Debug("request completed", zap.String("cmd", cmd), zap.String("request_id", requestID), zap.Duration("took", time.Since(start)))
	return doc, nil
}
