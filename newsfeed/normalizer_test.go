package newsfeed

import (
	"testing"
	"time"

	"healthfeed/types"
)

func healthRaw(title string) types.RawArticle {
	return types.RawArticle{
		Source:      types.RawSource{Name: "Health Daily"},
		Title:       title,
		Content:     "A new clinical trial on cancer treatment reports encouraging results for patients.",
		URL:         "https://example.com/" + title,
		PublishedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestNormalizeDefaults(t *testing.T) {
	got := Normalize(types.RawArticle{}, 1)

	if got.Title != "No title available" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Content != "No content available" {
		t.Errorf("content = %q", got.Content)
	}
	if got.Source != "Unknown source" {
		t.Errorf("source = %q", got.Source)
	}
	if got.PublishedAt.IsZero() {
		t.Error("publishedAt must default to the current time")
	}
	if got.ReadTime != "1 min read" {
		t.Errorf("readTime = %q", got.ReadTime)
	}
	if got.TLDR != nil || got.KeyTakeaways != nil || got.IsSummarized {
		t.Error("summary fields must start unset")
	}
}

func TestNormalizePrefersContentOverDescription(t *testing.T) {
	raw := types.RawArticle{
		Title:       "Cancer treatment update",
		Description: "short description",
		Content:     "full content of the cancer treatment article",
	}
	if got := Normalize(raw, 1); got.Content != raw.Content {
		t.Fatalf("content = %q, want the content field", got.Content)
	}

	raw.Content = ""
	if got := Normalize(raw, 1); got.Content != raw.Description {
		t.Fatalf("content = %q, want the description fallback", got.Content)
	}
}

func TestNormalizeBatchAssignsSequentialIDs(t *testing.T) {
	raws := []types.RawArticle{
		healthRaw("First cancer study"),
		healthRaw("Second cancer study"),
		healthRaw("Third cancer study"),
	}

	got := NormalizeBatch(raws, 1)
	if len(got) != 3 {
		t.Fatalf("got %d articles, want 3", len(got))
	}
	for i, a := range got {
		if a.ID != i+1 {
			t.Errorf("article %d has id %d", i, a.ID)
		}
	}

	seeded := NormalizeBatch(raws, 10)
	if seeded[0].ID != 10 {
		t.Errorf("seeded batch starts at id %d, want 10", seeded[0].ID)
	}
}

func TestNormalizeBatchFiltersExcluded(t *testing.T) {
	raws := []types.RawArticle{
		healthRaw("Cancer screening advances"),
		{
			Title:   "Team clinches the title",
			Content: "A thrilling match decided in the final minutes.",
		},
	}

	got := NormalizeBatch(raws, 1)
	if len(got) != 1 {
		t.Fatalf("got %d articles, want 1", len(got))
	}
	for _, a := range got {
		if a.Category == types.CategoryExcluded {
			t.Fatalf("excluded article %q leaked into the batch", a.Title)
		}
	}
}

func TestNormalizeBatchDeduplicatesByTitle(t *testing.T) {
	first := healthRaw("Cancer Screening Advances")
	dup := healthRaw("  cancer screening advances ")
	dup.Source.Name = "Other Wire"
	other := healthRaw("Diabetes research update")

	got := NormalizeBatch([]types.RawArticle{first, dup, other}, 1)
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	if got[0].Source != "Health Daily" {
		t.Errorf("dedup must keep the first occurrence, kept %q", got[0].Source)
	}

	seen := make(map[string]bool)
	for _, a := range got {
		if seen[a.TitleKey] {
			t.Fatalf("duplicate title key %q in output", a.TitleKey)
		}
		seen[a.TitleKey] = true
	}
}

func TestNormalizeBatchPreservesInputOrder(t *testing.T) {
	raws := []types.RawArticle{
		healthRaw("Alpha cancer study"),
		{Title: "Quarterly financial report", Content: "Markets reacted to the financial report."},
		healthRaw("Beta diabetes study"),
	}

	got := NormalizeBatch(raws, 1)
	if len(got) != 2 {
		t.Fatalf("got %d articles, want 2", len(got))
	}
	if got[0].Title != "Alpha cancer study" || got[1].Title != "Beta diabetes study" {
		t.Fatalf("order not preserved: %q, %q", got[0].Title, got[1].Title)
	}
	// Excluded entries still consume ids.
	if got[1].ID != 3 {
		t.Errorf("second survivor has id %d, want 3", got[1].ID)
	}
}
