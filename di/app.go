package di

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/kafka"
	"reservation/infras/otel"
	"reservation/infras/postgres"
	"reservation/internal/events/refund"
	"reservation/internal/workers/purge"
	"reservation/transport/http"
)

// App is the assembled service: the HTTP server plus its background workers.
type App struct {
	Config  *config.Config
	HTTP    *http.HTTP
	Purge   *purge.Worker
	Refunds *refund.Consumer
	Kafka   kafka.Client
	DB      *postgres.Connection
	Otel    otel.Otel
}

// Run serves until the process is signalled, then stops the workers and
// releases connections.
func (a *App) Run() {
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup

	if err := a.Purge.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start hold purge worker")
	}

	if len(a.Config.Kafka.Brokers) > 0 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			a.Refunds.Run(ctx)
		}()
	} else {
		log.Warn().Msg("No Kafka brokers configured, refund status consumer disabled.")
	}

	a.HTTP.Serve()

	cancel()
	a.Purge.Stop()
	wg.Wait()

	a.Close()
}

func (a *App) Close() {
	if err := a.Kafka.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close Kafka client")
	}

	if err := a.Otel.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Failed to shut down tracer provider")
	}

	a.DB.Close()
}
