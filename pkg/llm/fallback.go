package llm

import (
	"context"
	"strings"
	"unicode"
)

// summary shaping limits, in runes
const (
	summaryMaxLen    = 200
	summaryMinCut    = 80
	summaryEllipsis  = "…"
	summaryMinLength = 50
)

// Fallback is the deterministic enricher, keyword classification and sentence-boundary summaries.
// It never fails and never does I/O.
type Fallback struct{}

// Categorize matches the lower-cased title and body against the keyword table
func (Fallback) Categorize(_ context.Context, title, body string) string {
	return matchKeywords(strings.ToLower(title + " " + body))
}

// Summarize returns short bodies as is and cuts longer ones at a sentence boundary
func (Fallback) Summarize(_ context.Context, body string) string {
	return shortenSummary(body)
}

// shortenSummary keeps texts up to 200 runes unchanged. Longer texts are cut to one or two sentences
// ending at or after rune 80, else at the last space with an ellipsis, else hard at 199 runes with an ellipsis.
// The result is always shorter than an input over the limit.
func shortenSummary(text string) string {
	runes := []rune(text)
	if len(runes) <= summaryMaxLen {
		return text
	}
	head := runes[:summaryMaxLen]

	sentences := 0
	for i, r := range head {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		// abbreviations like "т.д" have no space after the dot
		if i+1 >= len(head) || !unicode.IsSpace(head[i+1]) {
			continue
		}
		sentences++
		if i >= summaryMinCut || sentences >= 2 {
			return string(head[:i+1])
		}
	}

	for i := len(head) - 1; i > summaryMinCut; i-- {
		if head[i] == ' ' {
			return strings.TrimRightFunc(string(head[:i]), unicode.IsSpace) + summaryEllipsis
		}
	}
	return string(head[:summaryMaxLen-1]) + summaryEllipsis
}
