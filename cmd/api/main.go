package main

import (
	"log"
	"net/http"

	"github.com/t3rryhuang/Sentiment-Insight/api/router"
	"github.com/t3rryhuang/Sentiment-Insight/config"
	"github.com/t3rryhuang/Sentiment-Insight/db"
	"github.com/t3rryhuang/Sentiment-Insight/logger"
)

func main() {
	config.InitApp()
	logger.Init(config.GetConfig().Logging.Level)

	if err := db.Init(); err != nil {
		log.Fatal(err)
	}
	r := router.New()

	if err := r.Run(":8080"); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
