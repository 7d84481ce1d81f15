package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"healthfeed/pipeline"
	"healthfeed/types"
)

// fakePipeline returns canned results and records the requested page/id.
type fakePipeline struct {
	page       pipeline.Page
	pageErr    error
	gotPage    int
	articles   []types.Article
	batchErr   error
	article    types.Article
	oneErr     error
	gotID      int
	simplified string
	simpErr    error
}

func (f *fakePipeline) GetPage(_ context.Context, page int) (pipeline.Page, error) {
	f.gotPage = page
	return f.page, f.pageErr
}

func (f *fakePipeline) Refresh(context.Context) ([]types.Article, error) {
	return f.articles, f.batchErr
}

func (f *fakePipeline) EnrichBatch(context.Context) ([]types.Article, error) {
	return f.articles, f.batchErr
}

func (f *fakePipeline) EnrichOne(_ context.Context, id int) (types.Article, error) {
	f.gotID = id
	return f.article, f.oneErr
}

func (f *fakePipeline) GetSimplified(_ context.Context, id int) (string, error) {
	f.gotID = id
	return f.simplified, f.simpErr
}

func serve(t *testing.T, p ArticlePipeline, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := NewRouter(p)

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body %q: %v", rec.Body.String(), err)
	}
	return body
}

func sampleArticle() types.Article {
	return types.Article{
		ID:       1,
		Title:    "Cancer screening advances",
		Content:  "body",
		Source:   "Health Daily",
		Category: types.CategoryDiseases,
		ReadTime: "1 min read",
	}
}

func TestGetArticles(t *testing.T) {
	p := &fakePipeline{page: pipeline.Page{
		Articles: []types.Article{sampleArticle()},
		Cached:   true,
		Page:     2,
		HasMore:  true,
		Total:    12,
	}}

	rec := serve(t, p, http.MethodGet, "/api/articles?page=2")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if p.gotPage != 2 {
		t.Errorf("requested page = %d, want 2", p.gotPage)
	}

	body := decodeBody(t, rec)
	if body["success"] != true || body["cached"] != true || body["hasMore"] != true {
		t.Fatalf("body = %v", body)
	}
	if body["totalArticles"] != float64(12) {
		t.Errorf("totalArticles = %v", body["totalArticles"])
	}
	if _, ok := body["warning"]; ok {
		t.Error("warning must be omitted when empty")
	}
}

func TestGetArticlesDefaultsBadPageParam(t *testing.T) {
	for _, target := range []string{"/api/articles", "/api/articles?page=abc", "/api/articles?page=-2"} {
		p := &fakePipeline{}
		serve(t, p, http.MethodGet, target)
		if p.gotPage != 1 {
			t.Errorf("%s: requested page = %d, want 1", target, p.gotPage)
		}
	}
}

func TestGetArticlesIncludesStaleWarning(t *testing.T) {
	p := &fakePipeline{page: pipeline.Page{
		Articles: []types.Article{sampleArticle()},
		Cached:   true,
		Page:     1,
		Total:    1,
		Warning:  pipeline.StaleWarning,
	}}

	rec := serve(t, p, http.MethodGet, "/api/articles")
	body := decodeBody(t, rec)
	if body["warning"] != pipeline.StaleWarning {
		t.Fatalf("warning = %v", body["warning"])
	}
}

func TestGetArticlesUpstreamFailure(t *testing.T) {
	p := &fakePipeline{pageErr: errors.New("upstream down")}

	rec := serve(t, p, http.MethodGet, "/api/articles")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != false || body["error"] != "Failed to fetch health news articles" {
		t.Fatalf("body = %v", body)
	}
}

func TestProcessAllConflict(t *testing.T) {
	p := &fakePipeline{batchErr: pipeline.ErrEnrichmentRunning}

	rec := serve(t, p, http.MethodPost, "/api/articles/process-ai")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "AI processing already in progress" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestProcessAllSuccess(t *testing.T) {
	p := &fakePipeline{articles: []types.Article{sampleArticle()}}

	rec := serve(t, p, http.MethodPost, "/api/articles/process-ai")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
}

func TestProcessOne(t *testing.T) {
	enriched := sampleArticle()
	tldr := "Short summary."
	enriched.TLDR = &tldr
	enriched.IsSummarized = true
	p := &fakePipeline{article: enriched}

	rec := serve(t, p, http.MethodPost, "/api/articles/1/process-ai")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if p.gotID != 1 {
		t.Errorf("requested id = %d, want 1", p.gotID)
	}
	if !strings.Contains(rec.Body.String(), "Short summary.") {
		t.Fatalf("body missing summary: %s", rec.Body.String())
	}
}

func TestProcessOneUnknownID(t *testing.T) {
	p := &fakePipeline{oneErr: pipeline.ErrNotFound}

	rec := serve(t, p, http.MethodPost, "/api/articles/99/process-ai")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "Article not found" {
		t.Fatalf("error = %v", body["error"])
	}
}

func TestProcessOneInvalidID(t *testing.T) {
	p := &fakePipeline{}

	rec := serve(t, p, http.MethodPost, "/api/articles/abc/process-ai")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSimplify(t *testing.T) {
	p := &fakePipeline{simplified: "An accessible rewrite."}

	rec := serve(t, p, http.MethodPost, "/api/articles/1/simplify")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["simplifiedContent"] != "An accessible rewrite." {
		t.Fatalf("simplifiedContent = %v", body["simplifiedContent"])
	}
}

func TestSimplifyUnknownID(t *testing.T) {
	p := &fakePipeline{simpErr: pipeline.ErrNotFound}

	rec := serve(t, p, http.MethodPost, "/api/articles/99/simplify")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	rec := serve(t, &fakePipeline{}, http.MethodGet, "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["message"] != "Health News API is running" {
		t.Fatalf("body = %v", body)
	}
}
