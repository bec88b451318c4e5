package handler

import (
	"net/http"
	"sync"

	"reservation/config"
	"reservation/di"
	"reservation/shared/logger"
	"reservation/shared/timezone"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API from a serverless function. Background workers are
// not started here; the purge runs from the long-lived deployment.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)

		logger.SetLogLevel(cfg)

		_ = timezone.Init(cfg.App.Timezone)

		handler = di.InitializeApp().HTTP.Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
