package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"time"

	"github.com/t3rryhuang/Sentiment-Insight/aggregate"
	"github.com/t3rryhuang/Sentiment-Insight/condenser"
	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/db"
	"github.com/t3rryhuang/Sentiment-Insight/embed"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

func main() {
	setID := flag.Uint("set-id", 0, "setID of the tracked entity")
	dateStr := flag.String("date", "", "YYYY-MM-DD")
	flag.Parse()

	if *setID == 0 || *dateStr == "" {
		log.Fatal("both -set-id and -date are required")
	}
	date, err := time.Parse("2006-01-02", *dateStr)
	if err != nil {
		log.Fatal("invalid date format, use YYYY-MM-DD")
	}

	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(); err != nil {
		log.Fatal("failed to initialize Postgres:", err)
	}

	embedder := embed.NewOllamaEmbedder(cfg.Embedding.Endpoint, cfg.Embedding.Model)
	condensedTopics := repositories.NewCondensedTopicRepository(db.Conn())

	svc := services.NewCondenseService(
		condenser.NewCondenser(embedder, condensedTopics),
		condenser.NewCategoryResolver(embedder, cfg.CategoryPriority),
		condensedTopics,
		repositories.NewMetricLogRepository(db.Conn()),
		repositories.NewMetricLogCondensedRepository(db.Conn()),
		aggregate.MeanPolicy(cfg.SeverityMeanPolicy),
	)

	inserted, err := svc.Run(context.Background(), *setID, date)
	if errors.Is(err, services.ErrAlreadyCondensed) {
		return
	}
	if err != nil {
		log.Fatal("condensation failed:", err)
	}
	log.Printf("done: %d condensed rows inserted", inserted)
}
