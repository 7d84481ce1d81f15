package newsfeed

import (
	"context"
	"fmt"

	"github.com/mmcdole/gofeed"

	"healthfeed/config"
	"healthfeed/types"
)

// FeedPresets maps friendly names to health-news RSS feed URLs.
var FeedPresets = map[string]string{
	"mnt":          "https://www.medicalnewstoday.com/rss",
	"sciencedaily": "https://www.sciencedaily.com/rss/health_medicine.xml",
	"nih":          "https://www.nih.gov/news-events/news-releases/feed",
	"who":          "https://www.who.int/rss-feeds/news-english.xml",
}

// ResolveFeedURL resolves a preset name to its URL, or returns the input
// unchanged when it is already a direct URL.
func ResolveFeedURL(feedInput string) string {
	if url, exists := FeedPresets[feedInput]; exists {
		return url
	}
	return feedInput
}

// RSSClient is an alternative headlines source backed by an RSS/Atom feed.
type RSSClient struct {
	feedURL string
	parser  *gofeed.Parser
}

// NewRSSClient returns a source for the given feed preset name or URL.
func NewRSSClient(feedInput string) *RSSClient {
	return &RSSClient{
		feedURL: ResolveFeedURL(feedInput),
		parser:  gofeed.NewParser(),
	}
}

// FetchTopHeadlines parses the feed and maps its items to raw article
// records, leaving classification and defaulting to the normalizer.
func (c *RSSClient) FetchTopHeadlines(ctx context.Context) ([]types.RawArticle, error) {
	fctx, cancel := context.WithTimeout(ctx, config.FetchTimeout)
	defer cancel()

	feed, err := c.parser.ParseURLWithContext(c.feedURL, fctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	raws := make([]types.RawArticle, 0, len(feed.Items))
	for _, item := range feed.Items {
		raw := types.RawArticle{
			Source:      types.RawSource{Name: feed.Title},
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.Link,
		}

		if item.PublishedParsed != nil {
			raw.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			raw.PublishedAt = *item.UpdatedParsed
		}
		if item.Author != nil {
			raw.Author = item.Author.Name
		}
		if item.Image != nil {
			raw.URLToImage = item.Image.URL
		}

		raws = append(raws, raw)
	}

	return raws, nil
}
