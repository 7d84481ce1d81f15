// Package pipeline orchestrates the fetch, classify, cache and enrichment
// flow and owns the process-wide cache and enrichment guard.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"healthfeed/cache"
	"healthfeed/config"
	"healthfeed/enrichment"
	"healthfeed/newsfeed"
	"healthfeed/types"
)

// ErrNotFound reports an article id absent from the current cache
// generation, e.g. after a concurrent refresh reassigned ids.
var ErrNotFound = errors.New("article not found in current cache generation")

// ErrEnrichmentRunning reports that a batch enrichment run is already in
// progress.
var ErrEnrichmentRunning = errors.New("AI processing already in progress")

// StaleWarning is attached to pages served from a stale cache after an
// upstream fetch failure.
const StaleWarning = "Using cached articles due to fetch error"

// Source is the abstract headlines collaborator.
type Source interface {
	FetchTopHeadlines(ctx context.Context) ([]types.RawArticle, error)
}

// Expander optionally replaces truncated article content after a refresh.
type Expander interface {
	ExpandAll(articles []types.Article) []types.Article
}

// Archiver optionally exports enriched generations, e.g. to S3.
type Archiver interface {
	ArchiveAll(ctx context.Context, generation string, articles []types.Article)
}

// Page is one paginated feed response.
type Page struct {
	Articles []types.Article
	Cached   bool
	Page     int
	HasMore  bool
	Total    int
	Warning  string
}

// Coordinator wires the headline source, the enrichment engine and the
// article cache together. One instance owns all mutable feed state.
type Coordinator struct {
	source   Source
	engine   *enrichment.Engine
	batcher  *enrichment.Batcher
	store    *cache.Store
	expander Expander
	archiver Archiver

	mu        sync.Mutex
	enriching bool
}

// New returns a coordinator over the given collaborators.
func New(source Source, engine *enrichment.Engine, batcher *enrichment.Batcher, store *cache.Store) *Coordinator {
	return &Coordinator{
		source:  source,
		engine:  engine,
		batcher: batcher,
		store:   store,
	}
}

// SetExpander enables full-content extraction during Refresh.
func (c *Coordinator) SetExpander(e Expander) { c.expander = e }

// SetArchiver enables generation export after batch enrichment.
func (c *Coordinator) SetArchiver(a Archiver) { c.archiver = a }

// GetPage serves one feed page, refetching when the cache is stale or
// empty. When the fetch fails but a stale generation exists, that stale
// page is served with a warning instead of failing.
func (c *Coordinator) GetPage(ctx context.Context, page int) (Page, error) {
	if c.store.IsFresh() {
		return c.page(page, true, ""), nil
	}

	raws, err := c.source.FetchTopHeadlines(ctx)
	if err != nil {
		if c.store.Len() > 0 {
			log.Printf("headlines fetch failed, serving stale cache: %v", err)
			return c.page(page, true, StaleWarning), nil
		}
		return Page{}, fmt.Errorf("fetch headlines: %w", err)
	}

	articles := newsfeed.NormalizeBatch(raws, 1)
	log.Printf("fetched %d raw articles, %d health-related after normalization", len(raws), len(articles))
	c.store.Replace(articles)

	return c.page(page, false, ""), nil
}

func (c *Coordinator) page(page int, cached bool, warning string) Page {
	if page < 1 {
		page = 1
	}
	pr := c.store.Page(page, config.PageSize)
	return Page{
		Articles: pr.Articles,
		Cached:   cached,
		Page:     page,
		HasMore:  pr.HasMore,
		Total:    pr.Total,
		Warning:  warning,
	}
}

// Refresh unconditionally clears the cache and replaces it with a freshly
// fetched and normalized generation. Unlike GetPage it propagates fetch
// failures: an explicit refresh reflects the latest data or reports an
// error.
func (c *Coordinator) Refresh(ctx context.Context) ([]types.Article, error) {
	c.store.Clear()

	raws, err := c.source.FetchTopHeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	articles := newsfeed.NormalizeBatch(raws, 1)
	if c.expander != nil {
		articles = c.expander.ExpandAll(articles)
	}
	c.store.Replace(articles)

	log.Printf("refreshed cache: %d health articles", len(articles))
	return c.store.Articles(), nil
}

// EnrichOne summarizes and simplifies a single article on demand, merging
// the results into the cache. Already-summarized articles come back
// unchanged. Once the lookup succeeds the operation cannot fail: AI
// failures degrade to fallback content inline.
func (c *Coordinator) EnrichOne(ctx context.Context, id int) (types.Article, error) {
	article, ok := c.store.Find(id)
	if !ok {
		return types.Article{}, ErrNotFound
	}
	if article.IsSummarized {
		return article, nil
	}

	log.Printf("processing article %d with AI: %s", id, article.Title)

	summary := c.engine.Summarize(ctx, article)
	simplified := c.engine.Simplify(ctx, article)

	// Shape guard: the client must always receive content.
	if summary.TLDR == "" {
		summary = enrichment.TitleFallbackSummary(article)
	}
	if simplified == "" {
		simplified = enrichment.SimplifyFallback(article.Content)
	}

	article.TLDR = &summary.TLDR
	article.KeyTakeaways = summary.KeyTakeaways
	article.SimplifiedContent = &simplified
	article.IsSummarized = true

	// A concurrent refresh may have replaced the generation; the update is
	// then a no-op and the enriched copy is still returned to the caller.
	c.store.UpdateArticle(id, func(a *types.Article) {
		*a = article
	})

	return article, nil
}

// EnrichBatch runs the batch workflow over the whole cached generation and
// replaces the cache with the enriched list. Only one run may be in flight;
// the guard is released unconditionally.
func (c *Coordinator) EnrichBatch(ctx context.Context) ([]types.Article, error) {
	c.mu.Lock()
	if c.enriching {
		c.mu.Unlock()
		return nil, ErrEnrichmentRunning
	}
	c.enriching = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.enriching = false
		c.mu.Unlock()
	}()

	enriched := c.batcher.EnrichAll(ctx, c.store.Articles())
	c.store.Replace(enriched)

	if c.archiver != nil {
		c.archiver.ArchiveAll(ctx, c.store.Generation(), enriched)
	}

	return enriched, nil
}

// GetSimplified returns a simplified rewrite of the article without
// mutating the cache, as a read-only preview.
func (c *Coordinator) GetSimplified(ctx context.Context, id int) (string, error) {
	article, ok := c.store.Find(id)
	if !ok {
		return "", ErrNotFound
	}
	return c.engine.Simplify(ctx, article), nil
}
