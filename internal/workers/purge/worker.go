// Package purge removes expired holds on a schedule. Expired holds already
// stop blocking when they expire; purging only reclaims the rows.
package purge

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"reservation/config"
	"reservation/infras/otel"
	"reservation/internal/domains/hold/service"
	"reservation/shared/constant"
)

type Worker struct {
	holds service.Hold
	cfg   *config.Config
	otel  otel.Otel
	cron  *cron.Cron
}

func New(holds service.Hold, cfg *config.Config, otel otel.Otel) *Worker {
	return &Worker{
		holds: holds,
		cfg:   cfg,
		otel:  otel,
		cron:  cron.New(cron.WithChain(cron.Recover(cronLogger{}), cron.SkipIfStillRunning(cronLogger{}))),
	}
}

// Start schedules the purge. Runs use ctx and stop being scheduled once Stop is called.
func (w *Worker) Start(ctx context.Context) error {
	spec := w.cfg.Reservation.PurgeSpec()

	if _, err := w.cron.AddFunc(spec, func() { _, _ = w.Run(ctx) }); err != nil {
		return fmt.Errorf("failed to schedule hold purge %q: %w", spec, err)
	}

	w.cron.Start()

	log.Info().Str("schedule", spec).Msg("Hold purge worker started.")

	return nil
}

// Stop waits for a running purge to finish.
func (w *Worker) Stop() {
	<-w.cron.Stop().Done()

	log.Info().Msg("Hold purge worker stopped.")
}

func (w *Worker) Run(ctx context.Context) (purged int64, err error) {
	ctx, scope := w.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".purge.Run")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	purged, err = w.holds.PurgeExpired(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to purge expired holds")

		return 0, fmt.Errorf("failed to purge expired holds: %w", err)
	}

	if purged > 0 {
		log.Info().Int64("purged", purged).Msg("purged expired holds")
	}

	return purged, nil
}

// cronLogger routes cron's own messages to zerolog.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...any) {
	log.Debug().Fields(keysAndValues).Msg(msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...any) {
	log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
