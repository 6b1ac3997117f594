// Package httpsession implements ports.PageSession over plain HTTP, for directories
// that render server-side and for offline runs against recorded pages.
package httpsession

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"bizharvest/internal/adapters/htmlrules"
	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	maxPageBytes     = 8 << 20
)

// ErrNoPage is returned when the session is queried before a page was opened.
var ErrNoPage = eris.New("no page loaded")

// Factory opens HTTP sessions sharing one client.
type Factory struct {
	client    *http.Client
	userAgent string
}

var _ ports.SessionFactory = (*Factory)(nil)

// NewFactory creates a new Factory. A nil client uses a fresh one.
func NewFactory(client *http.Client, userAgent string) *Factory {
	if client == nil {
		client = &http.Client{}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &Factory{client: client, userAgent: userAgent}
}

// Open returns a new session with no current page.
func (f *Factory) Open(ctx context.Context) (ports.PageSession, error) {
	return &Session{client: f.client, userAgent: f.userAgent}, nil
}

// Session implements ports.PageSession using standard HTTP.
type Session struct {
	client    *http.Client
	userAgent string

	doc *goquery.Document
	url string
}

// Open fetches url and parses it as the current page.
func (s *Session) Open(ctx context.Context, url string, timeout time.Duration) error {
	s.doc, s.url = nil, ""

	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return eris.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "failed to load page")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return eris.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return eris.Wrap(err, "failed to parse page")
	}
	s.doc = doc
	s.url = resp.Request.URL.String()
	return nil
}

// WaitFor checks that selector is present. Static pages do not change after
// loading, so there is nothing to wait for.
func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if s.doc == nil {
		return ErrNoPage
	}
	if s.doc.Find(selector).Length() == 0 {
		return eris.Errorf("selector %q not present on %s", selector, s.url)
	}
	return nil
}

// ExtractAll evaluates rules against the current page.
func (s *Session) ExtractAll(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error) {
	if s.doc == nil {
		return nil, ErrNoPage
	}
	return htmlrules.Apply(s.doc, rules), nil
}

// Close drops the current page.
func (s *Session) Close() error {
	s.doc, s.url = nil, ""
	return nil
}
