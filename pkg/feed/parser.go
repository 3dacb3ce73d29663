package feed

import (
	"bytes"
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
	ext "github.com/mmcdole/gofeed/extensions"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

// Parser fetches and parses RSS/Atom feeds
type Parser struct {
	client *resty.Client
}

// acceptLanguages contains common browser Accept-Language values
var acceptLanguages = []string{
	"ru-RU,ru;q=0.9,en-US;q=0.8,en;q=0.7",
	"en-US,en;q=0.9,ru;q=0.8",
	"en-GB,en;q=0.9",
}

// NewParser creates a new feed parser, feeds are fetched with the given timeout and user agent
func NewParser(timeout time.Duration, userAgent string) *Parser {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client := resty.New().
		SetTimeout(timeout).
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	if userAgent != "" {
		client.SetHeader("User-Agent", userAgent)
	}
	return &Parser{client: client}
}

// Parse fetches and parses a feed from the given URL. Items keep document order.
func (p *Parser) Parse(ctx context.Context, feedURL string) (*domain.ParsedFeed, error) {
	resp, err := p.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,text/html;q=0.7,*/*;q=0.5").
		SetHeader("Accept-Language", acceptLanguages[rand.Intn(len(acceptLanguages))]). //nolint:gosec // non-cryptographic randomness is fine for header variation
		SetHeader("Cache-Control", "no-cache").
		Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("fetch feed: unexpected status code %d", resp.StatusCode())
	}

	feed, err := gofeed.NewParser().Parse(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	result := &domain.ParsedFeed{
		Title:       feed.Title,
		Description: feed.Description,
		Link:        feed.Link,
		Items:       make([]domain.ParsedItem, 0, len(feed.Items)),
	}
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		result.Items = append(result.Items, convertItem(feed.Title, item))
	}
	return result, nil
}

func convertItem(feedTitle string, item *gofeed.Item) domain.ParsedItem {
	parsed := domain.ParsedItem{
		Title:       strings.TrimSpace(item.Title),
		Link:        strings.TrimSpace(item.Link),
		Description: item.Description,
		Content:     item.Content,
	}

	// atom entries may carry the article link only in links
	if parsed.Link == "" && len(item.Links) > 0 {
		parsed.Link = strings.TrimSpace(item.Links[0])
	}

	switch {
	case item.GUID != "":
		parsed.GUID = item.GUID
	case parsed.Link != "":
		parsed.GUID = parsed.Link
	default:
		parsed.GUID = fmt.Sprintf("%s-%s", feedTitle, item.Title)
	}

	if item.Author != nil {
		parsed.Author = item.Author.Name
	}

	if item.PublishedParsed != nil {
		parsed.Published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		parsed.Published = *item.UpdatedParsed
	}

	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		parsed.Enclosures = append(parsed.Enclosures, domain.Enclosure{URL: enc.URL, Type: enc.Type, Length: enc.Length})
	}

	parsed.Media = mediaRefs(item.Extensions)
	if item.Image != nil && item.Image.URL != "" && !hasMedia(parsed.Media, item.Image.URL) {
		parsed.Media = append(parsed.Media, domain.MediaRef{Kind: domain.MediaThumbnail, URL: item.Image.URL})
	}
	return parsed
}

// mediaRefs collects media:content and media:thumbnail elements at any depth, e.g. inside media:group.
// Element names are visited in sorted order to keep results stable.
func mediaRefs(extensions ext.Extensions) []domain.MediaRef {
	media, ok := extensions["media"]
	if !ok {
		return nil
	}
	var refs []domain.MediaRef
	walkMedia(media, &refs)
	return refs
}

func walkMedia(elems map[string][]ext.Extension, refs *[]domain.MediaRef) {
	names := make([]string, 0, len(elems))
	for name := range elems {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		for _, e := range elems[name] {
			switch name {
			case "content":
				if u := e.Attrs["url"]; u != "" {
					*refs = append(*refs, domain.MediaRef{Kind: domain.MediaContent, URL: u, Type: e.Attrs["type"], Medium: e.Attrs["medium"]})
				}
			case "thumbnail":
				if u := e.Attrs["url"]; u != "" {
					*refs = append(*refs, domain.MediaRef{Kind: domain.MediaThumbnail, URL: u})
				}
			}
			if len(e.Children) > 0 {
				walkMedia(e.Children, refs)
			}
		}
	}
}

func hasMedia(refs []domain.MediaRef, u string) bool {
	for _, m := range refs {
		if m.URL == u {
			return true
		}
	}
	return false
}
