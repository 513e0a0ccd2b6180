package main

import (
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/dashfetch/internal/config"
	"github.com/hamed0406/dashfetch/internal/dashboard"
	"github.com/hamed0406/dashfetch/internal/fetch"
	"github.com/hamed0406/dashfetch/internal/httpapi"
	"github.com/hamed0406/dashfetch/internal/logging"
	"github.com/hamed0406/dashfetch/internal/notify"
)

func main() {
	cfg := config.Load()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reqs := dashboard.Requests(cfg.UserID, cfg.PostsLimit, cfg.TodosLimit)
	if cfg.ResourcesFile != "" {
		if reqs, err = config.LoadCatalog(cfg.ResourcesFile); err != nil {
			log.Fatal(err)
		}
	}

	fetcher := fetch.NewHTTPFetcher(cfg.BaseURL, cfg.HTTPTimeout)
	agg := dashboard.New(logger, fetcher)

	var notifier notify.Notifier
	if s := notify.NewSlack(cfg.SlackWebhook); s != nil {
		notifier = notify.Multi{s}
	}

	api := httpapi.NewServer(logger, agg, reqs, notifier, cfg.AllowedOrigins)

	logger.Info("api_listen",
		zap.String("addr", cfg.Addr),
		zap.String("base_url", cfg.BaseURL),
		zap.Int("user_id", cfg.UserID),
	)
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
