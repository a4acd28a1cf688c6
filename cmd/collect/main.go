package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/t3rryhuang/Sentiment-Insight/classifier"
	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/db"
	"github.com/t3rryhuang/Sentiment-Insight/extractor"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/models"
	"github.com/t3rryhuang/Sentiment-Insight/reddit"
	"github.com/t3rryhuang/Sentiment-Insight/relevance"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

func main() {
	entityType := flag.String("entity-type", "", "Industry, Subreddit or Organisation")
	entityName := flag.String("entity-name", "", "name of the entity to collect for")
	dateStr := flag.String("date", "", "YYYY-MM-DD, or blank for the last 24 hours")
	limit := flag.Int("limit", 0, "number of posts to fetch (default from config)")
	flag.Parse()

	if *entityType == "" || *entityName == "" {
		log.Fatal("both -entity-type and -entity-name are required")
	}
	switch *entityType {
	case models.EntityTypeIndustry, models.EntityTypeSubreddit, models.EntityTypeOrganisation:
	default:
		log.Fatalf("unknown entity type %q", *entityType)
	}

	var date time.Time
	if *dateStr != "" {
		var err error
		date, err = time.Parse("2006-01-02", *dateStr)
		if err != nil {
			log.Fatal("invalid date format, use YYYY-MM-DD")
		}
	}

	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(); err != nil {
		log.Fatal("failed to initialize Postgres:", err)
	}

	redditClient, err := reddit.NewClientFromEnv()
	if err != nil {
		log.Fatal(err)
	}

	svc := services.NewIngestService(
		redditClient,
		extractor.NewGeminiExtractor(),
		classifier.NewHTTPCategoryClassifier(cfg.Inference.Endpoint, cfg.Inference.ZeroShotModel),
		classifier.NewHTTPEmotionClassifier(cfg.Inference.Endpoint, cfg.Inference.EmotionModel),
		relevance.NewVerifier(relevance.NewProseAnnotator()),
		repositories.NewTrackedEntityRepository(db.Conn()),
		repositories.NewTopicRepository(db.Conn()),
		repositories.NewAdjectiveRepository(db.Conn()),
		repositories.NewMetricLogRepository(db.Conn()),
		cfg,
	)

	report, err := svc.Run(context.Background(), services.IngestInput{
		EntityType: *entityType,
		EntityName: *entityName,
		Date:       date,
		Limit:      *limit,
	})
	if err != nil {
		log.Fatal("ingestion failed:", err)
	}
	log.Printf("done: %d posts processed, %d metric log rows inserted", report.PostsProcessed, report.RowsInserted)
}
