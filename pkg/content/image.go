package content

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

// image acceptance thresholds
const (
	minImageWidth  = 200
	minImageHeight = 150
	minImageURLLen = 30
)

var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".svg"}

// article-like containers searched for images before the whole page
const articleImages = "article img, .article-content img, .post-content img, .entry-content img, .content img"

// ImageResolver picks a representative image for a page or a feed entry.
// It never fails, an empty string means no acceptable image.
type ImageResolver struct{}

// FromDocument resolves the image of a parsed page. Relative candidates are resolved against base.
// Order: og:image, twitter:image, images inside article containers, any image on the page.
func (r ImageResolver) FromDocument(doc *goquery.Document, base *url.URL) string {
	if doc == nil {
		return ""
	}

	metas := []string{
		"meta[property='og:image']",
		"meta[property='og:image:url']",
		"meta[name='twitter:image']",
		"meta[property='twitter:image']",
		"meta[name='twitter:image:src']",
	}
	for _, sel := range metas {
		if content, ok := doc.Find(sel).First().Attr("content"); ok {
			if res := r.accept(content, "", "", base); res != "" {
				return res
			}
		}
	}

	if res := r.firstImage(doc.Find(articleImages), base); res != "" {
		return res
	}
	return r.firstImage(doc.Find("img"), base)
}

// FromEntry resolves the image embedded in a feed entry.
// Order: image enclosures, first image in description or content html, media:content and media:thumbnail.
// Relative candidates are resolved against the entry link.
func (r ImageResolver) FromEntry(item domain.ParsedItem) string {
	base, _ := url.Parse(item.Link)

	for _, enc := range item.Enclosures {
		if !strings.HasPrefix(strings.ToLower(enc.Type), "image/") {
			continue
		}
		if res := r.accept(enc.URL, "", "", base); res != "" {
			return res
		}
	}

	for _, fragment := range []string{item.Description, item.Content} {
		if !strings.Contains(fragment, "<img") {
			continue
		}
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
		if err != nil {
			continue
		}
		if res := r.firstImage(doc.Find("img"), base); res != "" {
			return res
		}
	}

	for _, m := range item.Media {
		isImage := strings.HasPrefix(strings.ToLower(m.Type), "image/") || strings.EqualFold(m.Medium, "image")
		if m.Kind == domain.MediaContent && !isImage {
			continue
		}
		if res := r.accept(m.URL, "", "", base); res != "" {
			return res
		}
	}
	return ""
}

// Valid reports whether the url looks like an image: known extension or a long extension-less url
func (r ImageResolver) Valid(rawURL string) bool {
	u := strings.TrimSpace(rawURL)
	if u == "" {
		return false
	}
	path := strings.ToLower(u)
	if idx := strings.IndexAny(path, "?#"); idx >= 0 {
		path = path[:idx]
	}
	for _, ext := range imageExtensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return len(u) >= minImageURLLen
}

// Rejected reports whether the url points to an icon, logo, avatar or small thumbnail
func (r ImageResolver) Rejected(rawURL string) bool {
	u := strings.ToLower(rawURL)
	for _, marker := range []string{"icon", "logo", "favicon", "avatar"} {
		if strings.Contains(u, marker) {
			return true
		}
	}
	return strings.Contains(u, "thumb") && strings.Contains(u, "small")
}

// LargeEnough checks explicit width and height attributes, missing or unparsable ones pass
func (r ImageResolver) LargeEnough(width, height string) bool {
	if w, ok := parseDimension(width); ok && w < minImageWidth {
		return false
	}
	if h, ok := parseDimension(height); ok && h < minImageHeight {
		return false
	}
	return true
}

func (r ImageResolver) firstImage(imgs *goquery.Selection, base *url.URL) string {
	var res string
	imgs.EachWithBreak(func(_ int, img *goquery.Selection) bool {
		src := strings.TrimSpace(img.AttrOr("src", ""))
		if src == "" || strings.HasPrefix(src, "data:") {
			src = strings.TrimSpace(img.AttrOr("data-src", ""))
		}
		res = r.accept(src, img.AttrOr("width", ""), img.AttrOr("height", ""), base)
		return res == ""
	})
	return res
}

// accept checks the candidate as written in the page, then resolves it against base.
// The page host is not part of the check, "silicon" in a host is not an icon
func (r ImageResolver) accept(candidate, width, height string, base *url.URL) string {
	candidate = strings.TrimSpace(candidate)
	if candidate == "" || strings.HasPrefix(candidate, "data:") {
		return ""
	}
	if !r.Valid(candidate) || r.Rejected(candidate) || !r.LargeEnough(width, height) {
		return ""
	}
	return resolveURL(candidate, base)
}

// resolveURL makes candidate absolute against base, protocol-relative urls get https
func resolveURL(candidate string, base *url.URL) string {
	ref, err := url.Parse(candidate)
	if err != nil {
		return ""
	}
	if ref.IsAbs() {
		if ref.Scheme != "http" && ref.Scheme != "https" {
			return ""
		}
		return ref.String()
	}
	if base == nil || !base.IsAbs() {
		if strings.HasPrefix(candidate, "//") {
			return "https:" + candidate
		}
		return ""
	}
	return base.ResolveReference(ref).String()
}

func parseDimension(v string) (int, bool) {
	v = strings.TrimSuffix(strings.TrimSpace(strings.ToLower(v)), "px")
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
