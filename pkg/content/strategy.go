package content

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/marlendd/News-Aggregator/pkg/sanitize"
)

// Page is a fetched and parsed html page
type Page struct {
	URL *url.URL
	Doc *goquery.Document
}

// Strategy derives the article body from a page, empty result means "not found"
type Strategy interface {
	Name() string
	Extract(page *Page) string
}

// Mode defines how texts of the elements matched by a rule are combined
type Mode int

// rule modes
const (
	ModeFirst      Mode = iota // text of the first matched element
	ModeAll                    // texts of all matched elements
	ModeParagraphs             // filtered paragraph texts
)

// Rule is a single selector attempt of a SelectorStrategy
type Rule struct {
	Selector      string
	Within        string // optional container, the first match scopes Selector
	Mode          Mode
	MinLen        int // combined text must be longer than this, in characters
	MinParagraph  int // ModeParagraphs: paragraphs not longer than this are dropped
	MinCount      int // ModeParagraphs: minimal number of matched elements before filtering
	MaxParagraphs int // ModeParagraphs: keep at most this many paragraphs
	Skip          func(text string) bool
}

// SelectorStrategy tries its rules in order, the first accepted rule wins
type SelectorStrategy struct {
	name  string
	rules []Rule
}

// NewSelectorStrategy makes a named strategy from ordered rules
func NewSelectorStrategy(name string, rules ...Rule) *SelectorStrategy {
	return &SelectorStrategy{name: name, rules: rules}
}

// Name returns strategy name
func (s *SelectorStrategy) Name() string { return s.name }

// Extract applies rules one by one and returns the first accepted text
func (s *SelectorStrategy) Extract(page *Page) string {
	if page == nil || page.Doc == nil {
		return ""
	}
	for _, rule := range s.rules {
		if text := rule.apply(page.Doc.Selection); text != "" {
			return text
		}
	}
	return ""
}

func (r Rule) apply(root *goquery.Selection) string {
	scope := root
	if r.Within != "" {
		scope = root.Find(r.Within).First()
		if scope.Length() == 0 {
			return ""
		}
	}

	sel := scope.Find(r.Selector)
	if sel.Length() == 0 {
		return ""
	}

	var text string
	switch r.Mode {
	case ModeFirst:
		text = selectionText(sel.First())
	case ModeAll:
		parts := make([]string, 0, sel.Length())
		sel.Each(func(_ int, s *goquery.Selection) {
			if t := selectionText(s); t != "" {
				parts = append(parts, t)
			}
		})
		text = strings.Join(parts, "\n\n")
	case ModeParagraphs:
		if sel.Length() < r.MinCount {
			return ""
		}
		text = r.paragraphs(sel)
	}

	if text == "" || utf8.RuneCountInString(text) <= r.MinLen {
		return ""
	}
	return text
}

func (r Rule) paragraphs(sel *goquery.Selection) string {
	parts := []string{}
	sel.EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := strings.Join(strings.Fields(selectionText(s)), " ")
		if utf8.RuneCountInString(t) <= r.MinParagraph {
			return true
		}
		if r.Skip != nil && r.Skip(t) {
			return true
		}
		parts = append(parts, t)
		return r.MaxParagraphs <= 0 || len(parts) < r.MaxParagraphs
	})
	return strings.Join(parts, "\n\n")
}

// Registry keeps domain strategies keyed by normalized host and a generic fallback
type Registry struct {
	strategies map[string]Strategy
	fallbacks  []Strategy
}

// NewRegistry makes a registry with fallback strategies tried in order for unknown hosts
// and for pages where the domain strategy found nothing
func NewRegistry(fallbacks ...Strategy) *Registry {
	return &Registry{strategies: map[string]Strategy{}, fallbacks: fallbacks}
}

// Register adds or replaces the strategy for the given hosts
func (r *Registry) Register(s Strategy, hosts ...string) {
	if r.strategies == nil {
		r.strategies = map[string]Strategy{}
	}
	for _, h := range hosts {
		r.strategies[NormalizeHost(h)] = s
	}
}

// AddFallback appends a fallback strategy
func (r *Registry) AddFallback(s Strategy) {
	r.fallbacks = append(r.fallbacks, s)
}

// Resolve returns the domain strategy for host, parent domains are tried too.
// Returns nil for unknown hosts.
func (r *Registry) Resolve(host string) Strategy {
	host = NormalizeHost(host)
	for host != "" {
		if s, ok := r.strategies[host]; ok {
			return s
		}
		idx := strings.Index(host, ".")
		if idx < 0 {
			break
		}
		host = host[idx+1:]
		if !strings.Contains(host, ".") {
			break // don't match bare tld
		}
	}
	return nil
}

// Extract runs the domain strategy for the page host and falls through to the fallbacks.
// Returns the text and the name of the strategy that produced it.
func (r *Registry) Extract(page *Page) (text, strategy string) {
	if page == nil || page.Doc == nil {
		return "", ""
	}
	host := ""
	if page.URL != nil {
		host = page.URL.Host
	}
	if s := r.Resolve(host); s != nil {
		if text := s.Extract(page); text != "" {
			return text, s.Name()
		}
	}
	for _, s := range r.fallbacks {
		if text := s.Extract(page); text != "" {
			return text, s.Name()
		}
	}
	return "", ""
}

// NormalizeHost lowercases, drops scheme, "www." prefix, port and everything after the host
func NormalizeHost(rawURL string) string {
	h := strings.ToLower(strings.TrimSpace(rawURL))
	if idx := strings.Index(h, "://"); idx >= 0 {
		h = h[idx+3:]
	}
	if idx := strings.IndexAny(h, "/?#"); idx >= 0 {
		h = h[:idx]
	}
	if idx := strings.LastIndex(h, "@"); idx >= 0 {
		h = h[idx+1:]
	}
	if idx := strings.Index(h, ":"); idx >= 0 {
		h = h[:idx]
	}
	return strings.TrimPrefix(h, "www.")
}

// skipped elements never contribute text
var skipTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true, "template": true, "svg": true,
}

// block elements are separated by line breaks
var blockTags = map[string]bool{
	"p": true, "div": true, "br": true, "li": true, "ul": true, "ol": true, "section": true,
	"article": true, "blockquote": true, "pre": true, "table": true, "tr": true, "figure": true,
	"figcaption": true, "header": true, "footer": true, "aside": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// selectionText returns visible text of the selection with block elements on separate lines
func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		nodeText(n, &sb)
	}
	return sanitize.Collapse(sb.String())
}

func nodeText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if skipTags[n.Data] {
			return
		}
	case html.CommentNode:
		return
	}

	block := n.Type == html.ElementNode && blockTags[n.Data]
	if block {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodeText(c, sb)
	}
	if block {
		sb.WriteString("\n")
	}
}
