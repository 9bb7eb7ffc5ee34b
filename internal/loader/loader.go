// Package loader retrieves simulation logs from local files or HTTP(S) URLs.
// Gzip-compressed logs are detected by their magic bytes and inflated.
package loader

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/internal/simlog"
)

// Loader errors.
var (
	ErrEmptyURL          = errors.New("empty simulation url")
	ErrUnsupportedScheme = errors.New("unsupported url scheme")
	ErrHTTPStatus        = errors.New("unexpected http status")
)

// Fetcher retrieves and decodes one simulation log.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*simlog.Document, error)
}

// Loader is the default Fetcher.
type Loader struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a loader. A zero timeout means no deadline beyond ctx.
func New(timeout time.Duration) *Loader {
	return &Loader{client: http.DefaultClient, timeout: timeout}
}

// WithClient sets the HTTP client used for remote logs.
func (l *Loader) WithClient(c *http.Client) *Loader {
	l.client = c
	return l
}

// Fetch opens rawURL, which is a file path, a file:// URL or an http(s) URL,
// and decodes the log it names.
func (l *Loader) Fetch(ctx context.Context, rawURL string) (*simlog.Document, error) {
	if rawURL == "" {
		return nil, ErrEmptyURL
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	start := time.Now()
	rc, err := l.open(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	r, err := decompress(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rawURL, err)
	}

	doc, err := simlog.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", rawURL, err)
	}

	logger.Debug("simulation log fetched",
		zap.String("url", rawURL),
		zap.Duration("elapsed", time.Since(start)))
	return doc, nil
}

func (l *Loader) open(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil || len(u.Scheme) <= 1 {
		// Plain paths, including Windows drive letters.
		return openFile(rawURL)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(u.Path)
	case "http", "https":
		return l.get(ctx, rawURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening simulation file: %w", err)
	}
	return f, nil
}

func (l *Loader) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s returned %s", ErrHTTPStatus, rawURL, resp.Status)
	}
	return resp.Body, nil
}

// decompress wraps r in a gzip reader when the stream starts with the gzip magic.
func decompress(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(2)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if len(magic) == 2 && magic[0] == 0x1f && magic[1] == 0x8b {
		return gzip.NewReader(br)
	}
	return br, nil
}
