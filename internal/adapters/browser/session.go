// Package browser implements ports.PageSession on a headless Chrome driven by chromedp.
package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"bizharvest/internal/adapters/htmlrules"
	"bizharvest/internal/core/domain"
	"bizharvest/internal/core/ports"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"

// DefaultBlockedURLs keeps heavy assets and ad/analytics hosts out of every page load.
var DefaultBlockedURLs = []string{
	"*.png", "*.jpg", "*.jpeg", "*.gif", "*.webp", "*.svg", "*.ico",
	"*.css", "*.woff", "*.woff2", "*.ttf",
	"*doubleclick.net*", "*google-analytics*", "*facebook*",
}

// Options configures the browser behind each session.
type Options struct {
	Headless    bool
	UserAgent   string
	BlockedURLs []string
	// ActionTimeout bounds DOM reads that have no caller-supplied timeout.
	ActionTimeout time.Duration
}

// Factory starts one browser per session.
type Factory struct {
	opts Options
}

var _ ports.SessionFactory = (*Factory)(nil)

// NewFactory creates a new Factory.
func NewFactory(opts Options) *Factory {
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.BlockedURLs == nil {
		opts.BlockedURLs = DefaultBlockedURLs
	}
	if opts.ActionTimeout <= 0 {
		opts.ActionTimeout = 30 * time.Second
	}
	return &Factory{opts: opts}
}

// Open launches a browser and returns a session bound to its first tab.
func (f *Factory) Open(ctx context.Context) (ports.PageSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(f.opts.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)

	// The first Run starts the browser process.
	if err := chromedp.Run(browserCtx,
		network.Enable(),
		network.SetBlockedURLS(f.opts.BlockedURLs),
	); err != nil {
		cancelBrowser()
		cancelAlloc()
		return nil, eris.Wrap(err, "failed to start browser")
	}

	return &Session{
		ctx:           browserCtx,
		actionTimeout: f.opts.ActionTimeout,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
		},
	}, nil
}

// Session is one browser tab.
type Session struct {
	ctx           context.Context
	actionTimeout time.Duration

	cancel    func()
	closeOnce sync.Once
}

// run executes actions on the tab, bounded by timeout and by the caller's ctx.
func (s *Session) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	if timeout <= 0 {
		timeout = s.actionTimeout
	}
	tctx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	return chromedp.Run(tctx, actions...)
}

// Open navigates the tab to url and waits for the load event.
func (s *Session) Open(ctx context.Context, url string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.Navigate(url)); err != nil {
		return eris.Wrapf(err, "failed to navigate to %s", url)
	}
	return nil
}

// WaitFor waits until selector is present in the DOM.
func (s *Session) WaitFor(ctx context.Context, selector string, timeout time.Duration) error {
	if err := s.run(ctx, timeout, chromedp.WaitReady(selector, chromedp.ByQuery)); err != nil {
		return eris.Wrapf(err, "selector %q never appeared", selector)
	}
	return nil
}

// ExtractAll snapshots the rendered DOM and evaluates rules against it.
func (s *Session) ExtractAll(ctx context.Context, rules []domain.FieldRule) (domain.Extracted, error) {
	var page string
	if err := s.run(ctx, 0, chromedp.OuterHTML("html", &page, chromedp.ByQuery)); err != nil {
		return nil, eris.Wrap(err, "failed to read page")
	}
	return htmlrules.Evaluate(page, rules)
}

// Close shuts the tab and the browser process down.
func (s *Session) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}
