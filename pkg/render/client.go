// Package render ships FinalReports to the external document renderer.
package render

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/synaptica-ai/scribe/pkg/gateway/httpclient"
	"github.com/synaptica-ai/scribe/pkg/report"
)

type Format string

const (
	FormatPDF  Format = "pdf"
	FormatHTML Format = "html"
)

var (
	ErrNotConfigured     = errors.New("renderer not configured")
	ErrUnsupportedFormat = errors.New("unsupported render format")
)

// ParseFormat accepts "pdf" or "html"; empty means pdf.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case "", FormatPDF:
		return FormatPDF, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

type Document struct {
	ContentType string
	Body        []byte
}

type Client struct {
	baseURL  string
	http     *http.Client
	attempts int
	backoff  time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     httpclient.New(timeout),
		attempts: 3,
		backoff:  200 * time.Millisecond,
	}
}

// Render posts the report to {base}/render/{format} and returns the body.
// 5xx and 429 responses are retried.
func (c *Client) Render(ctx context.Context, final report.FinalReport, format Format) (*Document, error) {
	if c == nil || c.baseURL == "" {
		return nil, ErrNotConfigured
	}
	payload, err := json.Marshal(final)
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	url := fmt.Sprintf("%s/render/%s", c.baseURL, format)

	var doc *Document
	err = httpclient.Retry(ctx, c.attempts, c.backoff, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return httpclient.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			statusErr := fmt.Errorf("renderer returned %d: %s", resp.StatusCode, truncate(string(body), 200))
			if httpclient.IsRetriableStatus(resp.StatusCode) {
				return statusErr
			}
			return httpclient.Permanent(statusErr)
		}
		doc = &Document{ContentType: resp.Header.Get("Content-Type"), Body: body}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if doc.ContentType == "" {
		doc.ContentType = defaultContentType(format)
	}
	return doc, nil
}

func defaultContentType(format Format) string {
	if format == FormatHTML {
		return "text/html; charset=utf-8"
	}
	return "application/pdf"
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
