package content

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testParagraph = "Это достаточно длинный абзац текста, который описывает важное событие дня подробно."

func makePage(t *testing.T, pageURL, body string) *Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body>" + body + "</body></html>"))
	require.NoError(t, err)
	u, err := url.Parse(pageURL)
	require.NoError(t, err)
	return &Page{URL: u, Doc: doc}
}

func paras(n int) string {
	return strings.Repeat("<p>"+testParagraph+"</p>\n", n)
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"https://www.Habr.com/ru/articles/1/", "habr.com"},
		{"http://lenta.ru:8080/news?x=1", "lenta.ru"},
		{"www.bbc.co.uk", "bbc.co.uk"},
		{"ria.ru", "ria.ru"},
		{"https://user@www.example.com#top", "example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeHost(tt.in))
		})
	}
}

func TestRegistry_Resolve(t *testing.T) {
	reg := DefaultRegistry()

	tests := []struct {
		host string
		want string
	}{
		{"habr.com", "habr"},
		{"www.habr.com", "habr"},
		{"news.bbc.co.uk", "bbc"},
		{"bbc.com", "bbc"},
		{"www.reuters.com", "reuters"},
		{"example.com", ""},
		{"co.uk", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			s := reg.Resolve(tt.host)
			if tt.want == "" {
				assert.Nil(t, s)
				return
			}
			require.NotNil(t, s)
			assert.Equal(t, tt.want, s.Name())
		})
	}
}

func TestRegistry_Register(t *testing.T) {
	reg := NewRegistry()
	custom := NewSelectorStrategy("custom", Rule{Selector: ".story", Mode: ModeFirst})
	reg.Register(custom, "https://www.Example.org/")

	s := reg.Resolve("sub.example.org")
	require.NotNil(t, s)
	assert.Equal(t, "custom", s.Name())

	page := makePage(t, "https://example.org/a", `<div class="story">short story</div>`)
	text, name := reg.Extract(page)
	assert.Equal(t, "short story", text)
	assert.Equal(t, "custom", name)
}

func TestRegistry_Extract(t *testing.T) {
	longBody := strings.Repeat("Текст статьи про важные события. ", 10)

	tests := []struct {
		name         string
		url          string
		body         string
		wantStrategy string
		wantContains string
		wantExcludes string
	}{
		{
			name:         "habr primary selector",
			url:          "https://habr.com/ru/articles/100/",
			body:         `<div class="tm-article-body"><p>` + longBody + `</p></div>`,
			wantStrategy: "habr",
			wantContains: "Текст статьи",
		},
		{
			name: "habr short body falls to generic",
			url:  "https://habr.com/ru/articles/101/",
			body: `<div class="tm-article-body">short</div>
				<div class="content">` + longBody + `</div>`,
			wantStrategy: "generic",
			wantContains: "Текст статьи",
		},
		{
			name:         "vedomosti joins all blocks",
			url:          "https://www.vedomosti.ru/economics/news/1",
			body:         `<div class="article__text">Короткий вводный абзац.</div><div class="box-paragraph">` + longBody + `</div>`,
			wantStrategy: "vedomosti",
			wantContains: "\n\n",
		},
		{
			name: "gazeta alternate paragraphs skip navigation",
			url:  "https://www.gazeta.ru/social/news/1.shtml",
			body: `<div class="article">` + paras(3) +
				`<p>Подписаться на все новости и главные новости дня сразу</p></div>`,
			wantStrategy: "gazeta",
			wantContains: testParagraph,
			wantExcludes: "Подписаться",
		},
		{
			name:         "bbc text blocks",
			url:          "https://www.bbc.co.uk/news/world-1",
			body:         `<div data-component="text-block">` + longBody + `</div><div data-component="text-block">more text</div>`,
			wantStrategy: "bbc",
			wantContains: "more text",
		},
		{
			name:         "generic article container",
			url:          "https://example.com/post",
			body:         `<nav>menu</nav><article><h1>Title</h1><p>` + longBody + `</p></article>`,
			wantStrategy: "generic",
			wantContains: "Title",
		},
		{
			name:         "generic main paragraphs",
			url:          "https://example.com/post",
			body:         `<main><p>tiny</p>` + paras(4) + `</main>`,
			wantStrategy: "generic",
			wantContains: testParagraph + "\n\n" + testParagraph,
			wantExcludes: "tiny",
		},
		{
			name: "generic site-wide paragraphs",
			url:  "https://example.com/post",
			body: `<div>` + paras(2) + `</div><div>` + paras(2) +
				`<p>Subscribe to our newsletter to get more stories like this one every day</p></div>`,
			wantStrategy: "generic",
			wantContains: testParagraph,
			wantExcludes: "newsletter",
		},
		{
			name: "nothing found",
			url:  "https://example.com/post",
			body: `<div><p>short one</p><p>short two</p></div>`,
		},
	}

	reg := DefaultRegistry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, strategy := reg.Extract(makePage(t, tt.url, tt.body))
			assert.Equal(t, tt.wantStrategy, strategy)
			if tt.wantStrategy == "" {
				assert.Empty(t, text)
				return
			}
			assert.Contains(t, text, tt.wantContains)
			if tt.wantExcludes != "" {
				assert.NotContains(t, text, tt.wantExcludes)
			}
		})
	}
}

func TestRule_ParagraphLimits(t *testing.T) {
	page := makePage(t, "https://example.com", paras(25))

	rule := Rule{Selector: "p", Mode: ModeParagraphs, MinParagraph: 50, MinCount: 4, MaxParagraphs: 20}
	text := rule.apply(page.Doc.Selection)
	assert.Equal(t, 20, strings.Count(text, testParagraph))

	rule.MinCount = 30
	assert.Empty(t, rule.apply(page.Doc.Selection), "not enough paragraphs")
}

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(
		`<div id="x"><h2>Head</h2><p>first <b>bold</b> part</p><script>var a=1;</script><p>second</p></div>`))
	require.NoError(t, err)
	assert.Equal(t, "Head\n\nfirst bold part\n\nsecond", selectionText(doc.Find("#x")))
}

func TestIsNavigation(t *testing.T) {
	assert.True(t, IsNavigation("We use Cookie files"))
	assert.True(t, IsNavigation("Поделиться в соцсетях"))
	assert.False(t, IsNavigation(testParagraph))
}
