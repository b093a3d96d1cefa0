// Package land acquires land outline rings for the globe from a file or
// an HTTP endpoint, with a built-in fallback.
package land

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/litescript/ls-globe/internal/globe"
	"github.com/litescript/ls-globe/internal/logging"
)

const (
	// DefaultTimeout for HTTP requests.
	DefaultTimeout = 15 * time.Second

	// EmbeddedSource selects the built-in rings without any I/O.
	EmbeddedSource = "embedded"

	// maxBodyBytes bounds a downloaded land document.
	maxBodyBytes = 64 << 20
)

// Loader reads land documents.
type Loader struct {
	client  *http.Client
	timeout time.Duration
	log     *logging.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithTimeout sets the HTTP request timeout.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithLogger sets the logger used by Resolve.
func WithLogger(log *logging.Logger) Option {
	return func(l *Loader) {
		l.log = log
	}
}

// NewLoader creates a land loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{
			Timeout: l.timeout,
		}
	}
	if l.log == nil {
		l.log = logging.Discard()
	}

	return l
}

// Load reads and parses rings from source: an http(s) URL, the literal
// "embedded", or a file path.
func (l *Loader) Load(ctx context.Context, source string) ([]globe.Ring, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case source == EmbeddedSource:
		return Embedded(), nil
	case isURL(source):
		data, err = l.fetch(ctx, source)
	default:
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("read land file: %w", err)
		}
	}
	if err != nil {
		return nil, err
	}

	rings, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse land data: %w", err)
	}
	return rings, nil
}

// Resolve turns a source into a land state. No source means no land data
// is coming; a failed load falls back to the embedded rings. A document
// that parses but holds no rings is loaded as empty, which draws the
// continent blobs.
func (l *Loader) Resolve(ctx context.Context, source string) globe.LandState {
	source = strings.TrimSpace(source)
	if source == "" {
		l.log.Info("no land source configured")
		return globe.UnavailableLand()
	}

	start := time.Now()
	rings, err := l.Load(ctx, source)
	if errors.Is(err, ErrNoRings) {
		l.log.Warn("land source %s has no rings", source)
		return globe.LoadedLand(nil)
	}
	if err != nil {
		l.log.Warn("land load failed, using fallback: %v", err)
		return globe.FailedLand(Embedded())
	}

	l.log.Info("loaded %d land rings from %s in %v", len(rings), source, time.Since(start).Round(time.Millisecond))
	return globe.LoadedLand(rings)
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ls-globe/1.0 (Globe Visualization Tool)")
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch land data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	return body, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
