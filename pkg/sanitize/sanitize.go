// Package sanitize normalizes raw feed and page text: markup and entities are removed,
// known boilerplate (breadcrumbs, paywall prompts, "read more" links) is cut out
// and whitespace is collapsed.
package sanitize

import (
	"html"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// boilerplate is a pattern with its replacement
type boilerplate struct {
	re   *regexp.Regexp
	repl string
}

// boilerplates are applied in order after markup removal
var boilerplates = []boilerplate{
	// breadcrumbs with relative time, "Главная / Экономика / 5 минут назад"
	{re: regexp.MustCompile(`(?i)(Главная|Home)\s*/\s*[^/\n]+\s*/\s*\d+\s*(минут|час|день|дн|недел|месяц|minute|hour|day|week|month)[^\n]*?(назад|ago)\s*`), repl: " "},
	// breadcrumbs without time
	{re: regexp.MustCompile(`(?i)(Главная|Home)\s*/\s*[^/\n]+\s*/\s*`), repl: " "},

	// paywall and registration prompts
	{re: regexp.MustCompile(`(?is)Чтобы дочитать статью.*?зарегистрируйтесь\.?`), repl: " "},
	{re: regexp.MustCompile(`(?is)Чтобы продолжить чтение.*?(зарегистрируйтесь|подпишитесь)\.?`), repl: " "},
	{re: regexp.MustCompile(`(?is)Для продолжения чтения.*?(зарегистрируйтесь|подпишитесь)\.?`), repl: " "},
	{re: regexp.MustCompile(`(?is)сохраните (статью|материал)? ?в «Отложенных материалах»\.?`), repl: " "},
	{re: regexp.MustCompile(`(?i)Для этого войдите или зарегистрируйтесь\.?`), repl: " "},
	{re: regexp.MustCompile(`(?is)(To continue reading|To read the full article).*?(subscribe|sign in|register)\.?`), repl: " "},

	// "read more" links as whole words, the letters around them are kept
	{re: regexp.MustCompile(`(?im)(^|[^\p{L}])(?:Читать далее|Читать полностью|Read more|Continue reading)(?:\s*(?:»|→|\.\.\.|…))?([^\p{L}]|$)`),
		repl: "${1} ${2}"},
	// ordinary words, removed only as a trailing link text
	{re: regexp.MustCompile(`(?im)(^|[^\p{L}])(?:Подробнее|Подписаться|Subscribe)(?:\s*(?:»|→|\.\.\.|…)|[ \t]*$)`),
		repl: "${1} "},
}

// block tags become line breaks before markup removal, otherwise neighbor words are glued
var (
	lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>|</li\s*>`)
	blockRe     = regexp.MustCompile(`(?i)</?(?:p|div|h[1-6]|blockquote|section|article|ul|ol|table|tr|figure|pre)(?:\s[^>]*)?/?>`)
	cellRe      = regexp.MustCompile(`(?i)</t[dh]\s*>`)
)

var (
	spacesRe   = regexp.MustCompile(`[\t\f\v\r \x{00A0}]+`)
	newlinesRe = regexp.MustCompile(` ?\n(?: ?\n)+ ?`)
	newlineRe  = regexp.MustCompile(` ?\n ?`)
)

// Clean strips tags, decodes entities, removes boilerplate phrases and collapses whitespace.
// Paragraph breaks survive as a single blank line. Empty input gives empty output.
func Clean(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	res := StripTags(raw)
	for _, b := range boilerplates {
		res = b.re.ReplaceAllString(res, b.repl)
	}
	return Collapse(res)
}

// StripTags removes markup and decodes entities. Block tags turn into line breaks, nothing else is rewritten
func StripTags(raw string) string {
	if raw == "" {
		return ""
	}
	res := lineBreakRe.ReplaceAllString(raw, "\n")
	res = blockRe.ReplaceAllString(res, "\n\n")
	res = cellRe.ReplaceAllString(res, " ")
	// the strict policy re-escapes text, so entities are decoded after it
	res = html.UnescapeString(strictPolicy.Sanitize(res))
	return strings.ReplaceAll(res, "\u00a0", " ")
}

// Truncate cuts s to at most maxLen runes and appends marker when anything was cut
func Truncate(s string, maxLen int, marker string) string {
	if maxLen <= 0 || utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return strings.TrimSpace(string([]rune(s)[:maxLen])) + marker
}

// Collapse squeezes whitespace runs to single spaces and blank-line runs to one blank line
func Collapse(s string) string {
	s = spacesRe.ReplaceAllString(s, " ")
	s = newlinesRe.ReplaceAllString(s, "\n\n")
	s = newlineRe.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
