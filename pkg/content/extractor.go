package content

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"github.com/marlendd/News-Aggregator/pkg/sanitize"
)

// Options configures Extractor
type Options struct {
	Timeout          time.Duration // page fetch timeout, 10s if not set
	UserAgent        string        // DefaultUserAgent if not set
	MaxContentLength int           // extracted text is truncated to this many characters, 50000 if not set
	Readability      bool          // try trafilatura after the generic strategy
	Registry         *Registry     // DefaultRegistry if not set
}

// Result is the outcome of a page extraction. Empty Text means no strategy found the body.
type Result struct {
	URL      string
	Text     string
	Image    string
	Strategy string
}

// Extractor fetches article pages and derives body text and the main image
type Extractor struct {
	client    *resty.Client
	registry  *Registry
	images    ImageResolver
	maxLength int
}

// truncation marker appended to cut texts
const truncationMarker = "..."

// NewExtractor makes an extractor with the given options
func NewExtractor(opts Options) *Extractor {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxContentLength <= 0 {
		opts.MaxContentLength = 50000
	}
	if opts.Registry == nil {
		var extra []Strategy
		if opts.Readability {
			extra = append(extra, ReadabilityStrategy{})
		}
		opts.Registry = DefaultRegistry(extra...)
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10)).
		SetHeader("User-Agent", opts.UserAgent)

	return &Extractor{
		client:    client,
		registry:  opts.Registry,
		maxLength: opts.MaxContentLength,
	}
}

// Extract fetches the page once and derives both body text and image.
// An error is returned only when the page could not be fetched or parsed,
// a page without recognizable body gives a Result with empty Text.
func (e *Extractor) Extract(ctx context.Context, pageURL string) (res *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			res, err = nil, fmt.Errorf("extract %s: panic: %v", pageURL, r)
		}
	}()

	page, err := e.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	res = &Result{URL: page.URL.String()}
	text, strategy := e.registry.Extract(page)
	if text = sanitize.Clean(text); text != "" {
		res.Text = sanitize.Truncate(text, e.maxLength, truncationMarker)
		res.Strategy = strategy
	}
	res.Image = e.images.FromDocument(page.Doc, page.URL)

	lgr.Printf("[DEBUG] extracted %d chars from %s with %q strategy, image %q", len(res.Text), pageURL, res.Strategy, res.Image)
	return res, nil
}

// FullText returns the article body of the page or empty string. Failures are logged, never returned.
func (e *Extractor) FullText(ctx context.Context, pageURL string) string {
	res, err := e.Extract(ctx, pageURL)
	if err != nil {
		lgr.Printf("[WARN] can't extract content from %s: %v", pageURL, err)
		return ""
	}
	return res.Text
}

// Image returns the main image of the page or empty string. Failures are logged, never returned.
func (e *Extractor) Image(ctx context.Context, pageURL string) string {
	res, err := e.Extract(ctx, pageURL)
	if err != nil {
		lgr.Printf("[WARN] can't extract image from %s: %v", pageURL, err)
		return ""
	}
	return res.Image
}

// fetch downloads the page and parses it, non-utf8 pages are decoded by their declared charset
func (e *Extractor) fetch(ctx context.Context, pageURL string) (*Page, error) {
	u, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", pageURL)
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetHeaders(browserHeaders()).
		Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", pageURL, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode(), pageURL)
	}

	ct := resp.Header().Get("Content-Type")
	if ct != "" && !strings.Contains(ct, "html") && !strings.Contains(ct, "xml") && !strings.HasPrefix(ct, "text/") {
		return nil, fmt.Errorf("unsupported content type %q for URL %s", ct, pageURL)
	}

	body, err := charset.NewReader(bytes.NewReader(resp.Body()), ct)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	// redirects change the base for relative links
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		u = resp.RawResponse.Request.URL
	}
	return &Page{URL: u, Doc: doc}, nil
}
