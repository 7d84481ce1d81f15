package enrichment

import (
	"context"
	"log"
	"time"

	"healthfeed/config"
	"healthfeed/types"
)

// Batcher enriches a whole article set sequentially with fixed delays
// between generation calls, the system's only intentional throttling
// against the generation API's rate limits.
type Batcher struct {
	engine *Engine
	warmup time.Duration
	delay  time.Duration
	sleep  func(time.Duration)
}

// NewBatcher returns a batcher with the default warm-up and inter-item
// delays.
func NewBatcher(engine *Engine) *Batcher {
	return &Batcher{
		engine: engine,
		warmup: config.BatchWarmupDelay,
		delay:  config.BatchItemDelay,
		sleep:  time.Sleep,
	}
}

// NewBatcherWithDelays is NewBatcher with injectable delays and sleep
// function so tests avoid wall-clock waits.
func NewBatcherWithDelays(engine *Engine, warmup, delay time.Duration, sleep func(time.Duration)) *Batcher {
	if sleep == nil {
		sleep = time.Sleep
	}
	return &Batcher{engine: engine, warmup: warmup, delay: delay, sleep: sleep}
}

// EnrichAll summarizes every article in order and returns the full list.
// It never fails past its own boundary:
//   - a successful summary is merged with IsSummarized=true;
//   - a rate-limit failure stops the run and bulk-applies the quota
//     fallback to every remaining article with IsSummarized=false;
//   - any other failure applies a per-item fallback (IsSummarized=false)
//     and the loop continues.
//
// Once started a run goes to completion or quota stop; cancellation
// mid-batch is not supported.
func (b *Batcher) EnrichAll(ctx context.Context, articles []types.Article) []types.Article {
	out := make([]types.Article, len(articles))
	copy(out, articles)

	if len(out) == 0 {
		return out
	}

	log.Printf("waiting %s before AI processing to avoid rate limit bursts", b.warmup)
	b.sleep(b.warmup)

	for i := range out {
		log.Printf("processing article %d/%d: %s", i+1, len(out), out[i].Title)

		summary, err := b.engine.trySummarize(ctx, out[i])
		if err != nil {
			if IsRateLimited(err) {
				log.Printf("rate limit exceeded, applying fallback summaries to remaining %d article(s)", len(out)-i)
				fallback := quotaFallbackSummary()
				for j := i; j < len(out); j++ {
					applySummary(&out[j], fallback, false)
				}
				return out
			}

			log.Printf("summarize failed for %q: %v", out[i].Title, err)
			applySummary(&out[i], itemFallbackSummary(), false)
			continue
		}

		applySummary(&out[i], summary, true)
		if i < len(out)-1 {
			b.sleep(b.delay)
		}
	}

	return out
}

func applySummary(a *types.Article, s Summary, summarized bool) {
	tldr := s.TLDR
	takeaways := make([]string, len(s.KeyTakeaways))
	copy(takeaways, s.KeyTakeaways)

	a.TLDR = &tldr
	a.KeyTakeaways = takeaways
	a.IsSummarized = summarized
}
