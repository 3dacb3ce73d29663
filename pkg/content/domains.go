package content

import (
	"strings"
)

// domainMinLen is the minimal length of text accepted from a domain-specific rule
const domainMinLen = 200

// gazetaNavigation marks gazeta.ru service paragraphs
var gazetaNavigation = []string{
	"подписаться", "читать далее", "комментарии", "поделиться", "версия для печати",
	"архив", "рубрики", "теги", "реклама", "все новости", "главные новости", "лента новостей",
}

// DefaultRegistry returns the registry with all known domain strategies and the generic fallback.
// Extra fallbacks, like the readability one, are tried after the generic strategy.
func DefaultRegistry(extra ...Strategy) *Registry {
	reg := NewRegistry(append([]Strategy{NewGenericStrategy()}, extra...)...)

	reg.Register(NewSelectorStrategy("habr",
		first("div.tm-article-body, div.article-formatted-body, div.post__text-html, div.post__body"),
		first(".tm-article-snippet__lead-image + div, .post-content__text"),
		paragraphs("article p, .post p", nil),
	), "habr.com")

	reg.Register(NewSelectorStrategy("techcrunch",
		first(".article-content, .entry-content, .post-content"),
	), "techcrunch.com")

	reg.Register(NewSelectorStrategy("vedomosti",
		all("div.article__text, div.article__body, div.box-paragraph, div.article-content"),
		paragraphs(".article p, .content p", nil),
	), "vedomosti.ru")

	reg.Register(NewSelectorStrategy("gazeta",
		all("div.article_text, div.b-article-text, div.article-text, div.material-text"),
		paragraphs(".article p, .material p, .content p", containsAny(gazetaNavigation)),
	), "gazeta.ru")

	reg.Register(NewSelectorStrategy("ria",
		all("div.article__text, div.article__body, div.article-text, div.layout-article__text"),
		paragraphs(".article p, .layout-article p", nil),
	), "ria.ru")

	reg.Register(NewSelectorStrategy("lenta",
		all("div.topic-body__content, div.b-text, div.article-text, div.topic-body"),
		paragraphs(".topic p, .article p", nil),
	), "lenta.ru")

	reg.Register(NewSelectorStrategy("bbc",
		all("[data-component='text-block'], .story-body__inner, .article-body"),
	), "bbc.com", "bbc.co.uk")

	reg.Register(NewSelectorStrategy("reuters",
		first(".ArticleBodyWrapper, .StandardArticleBody_body, .article-body"),
	), "reuters.com")

	return reg
}

func first(selector string) Rule {
	return Rule{Selector: selector, Mode: ModeFirst, MinLen: domainMinLen}
}

func all(selector string) Rule {
	return Rule{Selector: selector, Mode: ModeAll, MinLen: domainMinLen}
}

func paragraphs(selector string, skip func(string) bool) Rule {
	return Rule{Selector: selector, Mode: ModeParagraphs, MinLen: domainMinLen, MinParagraph: 20, Skip: skip}
}

// containsAny returns a case-insensitive keyword matcher
func containsAny(keywords []string) func(string) bool {
	return func(text string) bool {
		lower := strings.ToLower(text)
		for _, k := range keywords {
			if strings.Contains(lower, k) {
				return true
			}
		}
		return false
	}
}
