// Package httpsync implements remote.Transport over plain HTTP: the list
// file is fetched with GET and replaced with PUT at the origin URL.
package httpsync

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"

	"tasked/internal/codec"
	"tasked/internal/remote"
	"tasked/internal/stream"
	"tasked/internal/todo"
)

// maxSizeHint caps the initial body buffer taken from Content-Length.
const maxSizeHint = 64 << 10

// Client syncs one list file with an HTTP origin.
type Client struct {
	origin string
	http   *http.Client
	log    *log.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds each request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		hc := *c.http
		hc.Timeout = d
		c.http = &hc
	}
}

// WithLogger sets the logger for request tracing. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// New returns a client for origin, which must be an http or https URL.
func New(origin string, opts ...Option) (*Client, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("invalid origin %q: %w", origin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid origin %q: expected an http(s) URL", origin)
	}

	c := &Client{
		origin: origin,
		http:   &http.Client{},
		log:    log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Pull downloads and parses the list at the origin. Any status other than
// 200 is a failure.
func (c *Client) Pull(ctx context.Context) (*todo.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.origin, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrTransport, err)
	}
	c.log.Debug("pull", "origin", c.origin)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: server returned %d", remote.ErrTransport, resp.StatusCode)
	}

	// Content-Length only sizes the first allocation; the buffer grows as
	// the body arrives.
	body := stream.NewBuffer(int(min(max(resp.ContentLength, 0), maxSizeHint)))
	defer body.Close()
	if _, err := io.Copy(body, resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", remote.ErrTransport, err)
	}
	c.log.Debug("pulled", "origin", c.origin, "bytes", body.Len())

	return codec.Parse(body)
}

// Push uploads doc to the origin. Any status other than 200 is a failure.
func (c *Client) Push(ctx context.Context, doc *todo.Document) error {
	body := codec.NewReader(doc)
	defer body.Close()

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.origin, body)
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrTransport, err)
	}
	req.ContentLength = int64(body.Len())
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	c.log.Debug("push", "origin", c.origin, "bytes", body.Len())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", remote.ErrTransport, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: server returned %d", remote.ErrTransport, resp.StatusCode)
	}
	return nil
}
