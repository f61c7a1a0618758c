package core

import (
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"remotebrowse/config"
)

// Reloader re-reads the endpoint configuration on a cron schedule so new or
// changed endpoints become browsable without a restart. A failed reload
// keeps the last good configuration.
type Reloader struct {
	store  *config.Store
	logger *zap.Logger
	cron   *cron.Cron
}

func NewReloader(store *config.Store, logger *zap.Logger) *Reloader {
	return &Reloader{
		store:  store,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start schedules reloads with the given cron spec ("@every 5m" style works
// too). An empty spec disables reloading.
func (r *Reloader) Start(spec string) error {
	if spec == "" {
		return nil
	}
	_, err := r.cron.AddFunc(spec, func() {
		if err := r.store.Reload(); err != nil {
			r.logger.Warn("config reload failed, keeping previous endpoints", zap.Error(err))
			return
		}
		r.logger.Info("endpoint configuration reloaded")
	})
	if err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Reloader) Stop() {
	r.cron.Stop()
}
