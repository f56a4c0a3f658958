package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"esade-news/pkg/models"
)

const (
	DefaultNodePath     = "/contentasjson/node/"
	DefaultMaxBodyBytes = int64(4 << 20)
)

// Fetcher loads a single node from the content backend.
type Fetcher interface {
	FetchNode(ctx context.Context, nid string) (*models.Article, error)
}

// ContentClient talks to the content-as-JSON endpoint of the CMS backend.
type ContentClient struct {
	baseURL    string
	nodePath   string
	timeout    time.Duration
	maxBody    int64
	httpClient *http.Client
	log        *slog.Logger
}

func NewContentClient(baseURL, nodePath string, timeout time.Duration, maxBody int64, log *slog.Logger) *ContentClient {
	return NewContentClientWithHTTPClient(baseURL, nodePath, timeout, maxBody, log, nil)
}

// NewContentClientWithHTTPClient uses hc for transport; nil means a client
// with no overall timeout, since deadlines come from the request context.
func NewContentClientWithHTTPClient(baseURL, nodePath string, timeout time.Duration, maxBody int64, log *slog.Logger, hc *http.Client) *ContentClient {
	if hc == nil {
		hc = &http.Client{}
	}
	if log == nil {
		log = slog.Default()
	}
	if nodePath == "" {
		nodePath = DefaultNodePath
	}
	if !strings.HasPrefix(nodePath, "/") {
		nodePath = "/" + nodePath
	}
	if !strings.HasSuffix(nodePath, "/") {
		nodePath += "/"
	}
	if maxBody <= 0 {
		maxBody = DefaultMaxBodyBytes
	}
	return &ContentClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		nodePath:   nodePath,
		timeout:    timeout,
		maxBody:    maxBody,
		httpClient: hc,
		log:        log,
	}
}

func (c *ContentClient) NodeURL(nid string) string {
	return c.baseURL + c.nodePath + url.PathEscape(nid)
}

func (c *ContentClient) FetchNode(ctx context.Context, nid string) (*models.Article, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.NodeURL(nid)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for node %s: %w", nid, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch node %s: %w", nid, err)
	}
	defer resp.Body.Close()

	c.log.Debug("node fetched", "nid", nid, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, c.maxBody))
		return nil, &UpstreamError{URL: target, StatusCode: resp.StatusCode}
	}

	// One byte past the limit tells an oversized document from one that fits exactly.
	limit := c.maxBody
	if limit < math.MaxInt64 {
		limit++
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read node %s: %w", nid, err)
	}
	if int64(len(data)) > c.maxBody {
		return nil, &DecodeError{Field: "document", Err: fmt.Errorf("larger than %d bytes", c.maxBody)}
	}

	article, err := DecodeNode(nid, data)
	if err != nil {
		return nil, err
	}
	article.Body = SanitizeBody(article.Body)
	return article, nil
}
