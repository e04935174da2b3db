// Package fetch - browser.go provides headless browser rendering for pages whose
// headings are injected by JavaScript.
package fetch

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Renderer returns the fully rendered HTML of a page.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// BrowserRenderer renders pages with a headless Chrome via chromedp.
type BrowserRenderer struct {
	Timeout time.Duration
	// Settle is how long to wait after the body is ready for scripts to run.
	Settle time.Duration
}

// NewBrowserRenderer creates a renderer with the harvester's request timeout.
func NewBrowserRenderer(timeout time.Duration) *BrowserRenderer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &BrowserRenderer{Timeout: timeout, Settle: 2 * time.Second}
}

// Render implements Renderer.
func (b *BrowserRenderer) Render(ctx context.Context, url string) (string, error) {
	return WithBrowser(ctx, url, b.Timeout, b.Settle)
}

// WithBrowser renders a page in a headless browser and returns the rendered HTML.
// Requires Chrome/Chromium to be installed on the system.
func WithBrowser(ctx context.Context, url string, timeout, settle time.Duration) (string, error) {
	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
			chromedp.UserAgent(DefaultUserAgent),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	if html == "" {
		return "", &Error{URL: url, Message: fmt.Sprintf("browser returned empty document after %v", timeout)}
	}

	return html, nil
}
