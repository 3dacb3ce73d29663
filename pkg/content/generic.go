package content

import (
	"strings"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/markusmobius/go-trafilatura"
)

// genericMinLen is the minimal text length accepted by the generic strategy
const genericMinLen = 300

// articleContainers are common article body containers, tried in order
var articleContainers = []string{
	"article",
	"[role='article']",
	".article-content",
	".post-content",
	".entry-content",
	".content",
	".article-body",
	".post-body",
	".story-content",
	"main article",
	".main-content",
	"#content",
	".text-content",
}

// navigationKeywords mark paragraphs with site chrome rather than article text
var navigationKeywords = []string{
	"cookie", "privacy policy", "terms of service", "subscribe", "newsletter", "follow us",
	"share", "tweet", "facebook", "меню", "навигация", "подписаться", "поделиться", "реклама",
}

// NewGenericStrategy makes the strategy used for hosts without a dedicated one:
// known containers first, then paragraphs of the main container, then long paragraphs site-wide
func NewGenericStrategy() *SelectorStrategy {
	rules := make([]Rule, 0, len(articleContainers)+2)
	for _, sel := range articleContainers {
		rules = append(rules, Rule{Selector: sel, Mode: ModeFirst, MinLen: genericMinLen})
	}
	rules = append(rules,
		Rule{Within: "main, article, .content, #content", Selector: "p", Mode: ModeParagraphs,
			MinLen: genericMinLen, MinParagraph: 20, MinCount: 3},
		Rule{Selector: "p", Mode: ModeParagraphs, MinLen: genericMinLen, MinParagraph: 50, MinCount: 4,
			MaxParagraphs: 20, Skip: IsNavigation},
	)
	return NewSelectorStrategy("generic", rules...)
}

// IsNavigation reports whether text looks like navigation or site chrome
func IsNavigation(text string) bool {
	return containsAny(navigationKeywords)(text)
}

// ReadabilityStrategy extracts the main text with trafilatura, used as the last resort
type ReadabilityStrategy struct{}

// Name returns strategy name
func (ReadabilityStrategy) Name() string { return "readability" }

// Extract runs trafilatura over the page html
func (ReadabilityStrategy) Extract(page *Page) string {
	if page == nil || page.Doc == nil {
		return ""
	}
	body, err := page.Doc.Html()
	if err != nil {
		return ""
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     page.URL,
	}
	result, err := trafilatura.Extract(strings.NewReader(body), opts)
	if err != nil || result == nil {
		lgr.Printf("[DEBUG] readability found nothing on %s: %v", page.URL, err)
		return ""
	}

	text := strings.TrimSpace(result.ContentText)
	if utf8.RuneCountInString(text) <= genericMinLen {
		return ""
	}
	return text
}
