package newsfeed

import (
	"log"
	"regexp"
	"strings"
	"sync"

	readability "github.com/go-shiori/go-readability"

	"healthfeed/classifier"
	"healthfeed/config"
	"healthfeed/types"
)

// Headline APIs truncate article bodies, e.g. "... [+1234 chars]".
var truncationMarker = regexp.MustCompile(`\[\+\d+ chars\]\s*$`)

// Extractor replaces truncated article content with the full text pulled
// from the article URL via readability extraction.
type Extractor struct {
	workers int
}

// NewExtractor returns an extractor using the default worker pool size.
func NewExtractor() *Extractor {
	return &Extractor{workers: config.ExtractWorkers}
}

// ExpandAll runs full-content extraction for every truncated article using
// a worker pool and returns the updated set. Articles whose extraction
// fails keep their original content.
func (e *Extractor) ExpandAll(articles []types.Article) []types.Article {
	out := make([]types.Article, len(articles))
	copy(out, articles)

	var wg sync.WaitGroup
	indexChan := make(chan int, len(out))

	for w := 0; w < e.workers; w++ {
		go func() {
			for i := range indexChan {
				if err := expandContent(&out[i]); err != nil {
					log.Printf("content extraction failed for %q: %v", out[i].Title, err)
				}
				wg.Done()
			}
		}()
	}

	for i := range out {
		if !needsExpansion(out[i]) {
			continue
		}
		wg.Add(1)
		indexChan <- i
	}

	wg.Wait()
	close(indexChan)
	return out
}

func needsExpansion(a types.Article) bool {
	if a.URL == "" {
		return false
	}
	return a.Content == defaultContent || truncationMarker.MatchString(a.Content)
}

// expandContent fetches the article page and swaps in the extracted text,
// recomputing the read-time estimate and backfilling missing metadata.
func expandContent(a *types.Article) error {
	extracted, err := readability.FromURL(a.URL, config.ExtractTimeout)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(extracted.TextContent)
	if text == "" {
		return nil
	}

	a.Content = text
	a.ReadTime = classifier.EstimateReadTime(text)
	if a.URLToImage == "" {
		a.URLToImage = extracted.Image
	}
	if a.Author == "" {
		a.Author = extracted.Byline
	}
	return nil
}
