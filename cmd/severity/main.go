package main

import (
	"context"
	"log"

	"github.com/t3rryhuang/Sentiment-Insight/classifier"
	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/db"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
	"github.com/t3rryhuang/Sentiment-Insight/repositories"
	"github.com/t3rryhuang/Sentiment-Insight/services"
)

func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(); err != nil {
		log.Fatal("failed to initialize Postgres:", err)
	}

	svc := services.NewSeverityService(
		classifier.NewHTTPSeverityClassifier(cfg.Inference.Endpoint, cfg.Inference.SeverityModel),
		repositories.NewMetricLogRepository(db.Conn()),
	)

	updated, err := svc.Run(context.Background())
	if err != nil {
		log.Fatal("severity update failed:", err)
	}
	log.Printf("done: %d rows updated", updated)
}
