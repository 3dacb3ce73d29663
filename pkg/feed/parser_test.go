package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marlendd/News-Aggregator/pkg/domain"
)

func TestParser_Parse(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description>Article 1 description</description>
		<content:encoded><![CDATA[<p>Full content of article 1</p>]]></content:encoded>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
		<author>test@example.com (Test Author)</author>
	</item>
	<item>
		<title>  Test Article 2  </title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
	</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Contains(t, r.Header.Get("Accept"), "application/rss+xml")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "test-agent")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Feed", feed.Title)
	assert.Equal(t, "Test Description", feed.Description)
	assert.Equal(t, "http://example.com", feed.Link)

	require.Len(t, feed.Items, 2)

	item1 := feed.Items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "http://example.com/article1", item1.Link)
	assert.Equal(t, "Article 1 description", item1.Description)
	assert.Equal(t, "<p>Full content of article 1</p>", item1.Content)
	assert.Equal(t, "http://example.com/article1", item1.GUID)
	assert.Equal(t, "Test Author", item1.Author)
	assert.Equal(t, time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), item1.Published.UTC())

	// no guid, falls back to link; no date stays zero
	item2 := feed.Items[1]
	assert.Equal(t, "Test Article 2", item2.Title)
	assert.Equal(t, "http://example.com/article2", item2.GUID)
	assert.True(t, item2.Published.IsZero())
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<subtitle>Test Subtitle</subtitle>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
		<author>
			<name>John Doe</name>
		</author>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", feed.Title)
	assert.Equal(t, "Test Subtitle", feed.Description)

	require.Len(t, feed.Items, 1)
	item := feed.Items[0]
	assert.Equal(t, "Atom Entry 1", item.Title)
	assert.Equal(t, "http://example.com/entry1", item.Link)
	assert.Equal(t, "urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a", item.GUID)
	assert.Equal(t, "John Doe", item.Author)
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), item.Published.UTC(), "updated used when published is absent")
}

func TestParser_Parse_Media(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
	<title>Media Feed</title>
	<item>
		<title>With enclosure</title>
		<link>http://example.com/1</link>
		<enclosure url="http://example.com/pic.jpg" type="image/jpeg" length="1234"/>
	</item>
	<item>
		<title>With media</title>
		<link>http://example.com/2</link>
		<media:content url="http://example.com/video.mp4" type="video/mp4" medium="video"/>
		<media:thumbnail url="http://example.com/thumb.jpg"/>
	</item>
	<item>
		<title>With media group</title>
		<link>http://example.com/3</link>
		<media:group>
			<media:content url="http://example.com/grouped.jpg" type="image/jpeg"/>
		</media:group>
	</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, feed.Items, 3)

	require.Len(t, feed.Items[0].Enclosures, 1)
	assert.Equal(t, domain.Enclosure{URL: "http://example.com/pic.jpg", Type: "image/jpeg", Length: "1234"}, feed.Items[0].Enclosures[0])

	media := feed.Items[1].Media
	require.GreaterOrEqual(t, len(media), 2)
	assert.Equal(t, domain.MediaRef{Kind: domain.MediaContent, URL: "http://example.com/video.mp4", Type: "video/mp4", Medium: "video"}, media[0])
	assert.Equal(t, domain.MediaRef{Kind: domain.MediaThumbnail, URL: "http://example.com/thumb.jpg"}, media[1])

	grouped := feed.Items[2].Media
	require.NotEmpty(t, grouped)
	assert.Equal(t, domain.MediaRef{Kind: domain.MediaContent, URL: "http://example.com/grouped.jpg", Type: "image/jpeg"}, grouped[0])
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code 500")
	})

	t.Run("Invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		_, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		_, err := NewParser(100*time.Millisecond, "").Parse(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		_, err := NewParser(5*time.Second, "").Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})
}

func TestParser_Parse_NoGUID(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<item>
		<title>No GUID Article</title>
		<description>Article without GUID or link</description>
	</item>
</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	feed, err := NewParser(5*time.Second, "").Parse(context.Background(), server.URL)
	require.NoError(t, err)

	require.Len(t, feed.Items, 1)
	assert.Equal(t, "Test Feed-No GUID Article", feed.Items[0].GUID)
}
