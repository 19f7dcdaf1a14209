package scraper

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"talent-scraper/config"
	"talent-scraper/utils"
)

// Renderer is the page-rendering capability the extraction pipeline depends
// on: navigate to a URL and hand back a queryable document. The production
// implementation drives headless Chrome; tests substitute documents built
// from HTML strings.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (*Document, error)
}

// Document wraps a rendered page for selector queries.
type Document struct {
	doc *goquery.Document
	url string
}

// NewDocumentFromHTML parses rendered HTML into a queryable Document.
// pageURL is the final (post-redirect) location, kept for resolving
// relative hrefs.
func NewDocumentFromHTML(html, pageURL string) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse rendered html: %w", err)
	}
	return &Document{doc: doc, url: pageURL}, nil
}

// Select returns all elements matching a CSS selector.
func (d *Document) Select(selector string) []*Element {
	return wrapSelection(d.doc.Find(selector))
}

// URL is the final location of the rendered page.
func (d *Document) URL() string { return d.url }

// FullText is the text content of the whole page.
func (d *Document) FullText() string { return d.doc.Text() }

// Element is one DOM node from a rendered document.
type Element struct {
	sel *goquery.Selection
}

func (e *Element) Text() string { return e.sel.Text() }

func (e *Element) HTML() string {
	h, err := e.sel.Html()
	if err != nil {
		return ""
	}
	return h
}

func (e *Element) Attr(name string) string {
	v, _ := e.sel.Attr(name)
	return v
}

// Find returns descendants of this element matching a CSS selector.
func (e *Element) Find(selector string) []*Element {
	return wrapSelection(e.sel.Find(selector))
}

// Next returns the immediately following sibling, or nil.
func (e *Element) Next() *Element {
	next := e.sel.Next()
	if next.Length() == 0 {
		return nil
	}
	return &Element{sel: next}
}

// Parent returns the parent element, or nil at the document root.
func (e *Element) Parent() *Element {
	parent := e.sel.Parent()
	if parent.Length() == 0 {
		return nil
	}
	return &Element{sel: parent}
}

func wrapSelection(sel *goquery.Selection) []*Element {
	elements := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		elements = append(elements, &Element{sel: s})
	})
	return elements
}

// ChromeRenderer renders pages with headless Chrome via chromedp.
type ChromeRenderer struct {
	allocCtx    context.Context
	cancelAlloc context.CancelFunc
	settleWait  time.Duration
	logger      *utils.Logger
}

// NewChromeRenderer starts a browser allocator shared by all renders.
func NewChromeRenderer(cfg *config.Config, logger *utils.Logger) *ChromeRenderer {
	chromeBin := findChromeBinary(cfg.ChromeBin)
	logger.Info("[renderer] Using browser binary: %s", chromeBin)

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)

	// Suppress chromedp log noise
	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	cancel := func() {
		cancelSilent()
		cancelAlloc()
	}

	return &ChromeRenderer{
		allocCtx:    silentCtx,
		cancelAlloc: cancel,
		settleWait:  time.Duration(cfg.SettleWaitMs) * time.Millisecond,
		logger:      logger,
	}
}

// Render navigates to the URL in a fresh tab, waits for the page to settle,
// and returns the rendered document. The timeout covers navigation plus the
// settle wait; on expiry the render counts as failed but only for this URL.
func (r *ChromeRenderer) Render(ctx context.Context, url string, timeout time.Duration) (*Document, error) {
	tabCtx, cancelTab := chromedp.NewContext(r.allocCtx)
	defer cancelTab()

	tabCtx, cancelTimeout := context.WithTimeout(tabCtx, timeout)
	defer cancelTimeout()

	// Session-level cancellation must tear down an in-flight navigation.
	stop := context.AfterFunc(ctx, cancelTab)
	defer stop()

	var html, finalURL string
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.Sleep(r.settleWait),
		chromedp.Location(&finalURL),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", url, err)
	}
	if finalURL == "" {
		finalURL = url
	}

	return NewDocumentFromHTML(html, finalURL)
}

// Close shuts down the shared browser allocator.
func (r *ChromeRenderer) Close() {
	r.cancelAlloc()
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
