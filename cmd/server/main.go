package main

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"healthfeed/api"
	"healthfeed/cache"
	"healthfeed/common"
	"healthfeed/config"
	"healthfeed/enrichment"
	"healthfeed/newsfeed"
	"healthfeed/pipeline"
)

func main() {
	log.SetOutput(os.Stderr)

	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	source := buildSource()

	cohereKey := os.Getenv("COHERE_API_KEY")
	if cohereKey == "" {
		log.Fatal("COHERE_API_KEY is required")
	}
	generator := enrichment.NewCohereGenerator(cohereKey, os.Getenv("COHERE_MODEL"))

	engine := enrichment.NewEngine(generator)
	batcher := enrichment.NewBatcher(engine)
	store := cache.New(config.CacheTTL)

	coord := pipeline.New(source, engine, batcher, store)

	if strings.EqualFold(os.Getenv("EXPAND_CONTENT"), "true") {
		coord.SetExpander(newsfeed.NewExtractor())
		log.Println("full-content extraction enabled for refreshes")
	}
	if archiver := initializeArchiver(); archiver != nil {
		coord.SetArchiver(archiver)
	}

	// Scheduled refresh keeps the cache warm between user requests.
	scheduler := cron.New()
	_, err := scheduler.AddFunc("*/30 * * * *", func() {
		log.Println("running scheduled article refresh...")
		if _, err := coord.Refresh(context.Background()); err != nil {
			log.Printf("scheduled refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("failed to schedule refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := config.GetEnvOrDefault("PORT", "8080")
	log.Printf("Health News API server running on port %s", port)

	router := api.NewRouter(coord)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildSource selects the headlines provider: NewsAPI by default, or an
// RSS feed when NEWS_SOURCE=rss.
func buildSource() pipeline.Source {
	if strings.EqualFold(os.Getenv("NEWS_SOURCE"), "rss") {
		feed := config.GetEnvOrDefault("NEWS_FEED", "mnt")
		log.Printf("using RSS headlines source: %s", newsfeed.ResolveFeedURL(feed))
		return newsfeed.NewRSSClient(feed)
	}

	apiKey := os.Getenv("NEWS_API_KEY")
	if apiKey == "" {
		log.Fatal("NEWS_API_KEY is required (or set NEWS_SOURCE=rss)")
	}
	log.Println("using NewsAPI headlines source")
	return newsfeed.NewNewsAPIClient(apiKey)
}

// initializeArchiver returns an S3 archiver if configured via env.
// Required: S3_BUCKET. Optional: S3_REGION, S3_PROFILE, S3_PREFIX,
// S3_USE_PATH_STYLE=true.
func initializeArchiver() pipeline.Archiver {
	bucket := strings.TrimSpace(os.Getenv("S3_BUCKET"))
	if bucket == "" {
		log.Println("S3 not configured; skipping archive uploads")
		return nil
	}

	cfg := common.S3Config{
		Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		UsePathStyle: strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}
	client, err := common.NewS3(context.Background(), cfg)
	if err != nil {
		log.Printf("warning: failed to init S3 client: %v (archive disabled)", err)
		return nil
	}

	prefix := strings.TrimSpace(os.Getenv("S3_PREFIX"))
	if prefix != "" {
		prefix = strings.Trim(prefix, "/") + "/"
	}
	log.Printf("archiving enriched articles to s3://%s/%s", bucket, prefix)
	return pipeline.NewS3Archiver(client, bucket, prefix)
}
