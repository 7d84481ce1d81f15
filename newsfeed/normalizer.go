// Package newsfeed turns raw upstream article records into canonical
// feed articles and provides the headline sources that produce them.
package newsfeed

import (
	"strings"
	"time"

	"healthfeed/classifier"
	"healthfeed/types"
)

const (
	defaultTitle   = "No title available"
	defaultContent = "No content available"
	defaultSource  = "Unknown source"
)

// Normalize converts one raw record into a canonical Article with the
// given id. Missing fields get documented defaults; summary fields start
// nil and IsSummarized false.
func Normalize(raw types.RawArticle, id int) types.Article {
	title := raw.Title
	if title == "" {
		title = defaultTitle
	}

	// Prefer full content, fall back to the description.
	body := raw.Content
	if body == "" {
		body = raw.Description
	}
	content := body
	if content == "" {
		content = defaultContent
	}

	source := raw.Source.Name
	if source == "" {
		source = defaultSource
	}

	publishedAt := raw.PublishedAt
	if publishedAt.IsZero() {
		publishedAt = time.Now()
	}

	return types.Article{
		ID:          id,
		Title:       title,
		Content:     content,
		Source:      source,
		Author:      raw.Author,
		URL:         raw.URL,
		URLToImage:  raw.URLToImage,
		PublishedAt: publishedAt,
		Category:    classifier.Classify(raw.Title, body),
		ReadTime:    classifier.EstimateReadTime(body),
		TitleKey:    strings.TrimSpace(strings.ToLower(raw.Title)),
	}
}

// NormalizeBatch normalizes raws in input order, assigning sequential ids
// starting at seed, then drops excluded articles and deduplicates by title
// key, keeping the first occurrence. Output preserves input order among
// survivors.
func NormalizeBatch(raws []types.RawArticle, seed int) []types.Article {
	articles := make([]types.Article, 0, len(raws))
	seen := make(map[string]bool, len(raws))

	id := seed
	for _, raw := range raws {
		article := Normalize(raw, id)
		id++

		if article.Category == types.CategoryExcluded {
			continue
		}
		if seen[article.TitleKey] {
			continue
		}
		seen[article.TitleKey] = true
		articles = append(articles, article)
	}

	return articles
}
