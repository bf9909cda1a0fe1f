package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads a cached view.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// SeasonRefresher keeps the season cache warm on a cron schedule.
type SeasonRefresher struct {
	cron   *cron.Cron
	target Refresher
	logger *zap.Logger
}

// NewSeasonRefresher schedules target.Refresh using a standard cron spec or
// descriptor such as "@every 1m".
func NewSeasonRefresher(spec string, target Refresher, logger *zap.Logger) (*SeasonRefresher, error) {
	r := &SeasonRefresher{
		cron:   cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		target: target,
		logger: logger,
	}
	if _, err := r.cron.AddFunc(spec, r.run); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *SeasonRefresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := r.target.Refresh(ctx); err != nil {
		r.logger.Warn("season cache refresh failed", zap.Error(err))
		return
	}
	r.logger.Debug("season cache refreshed")
}

// Start runs the schedule in the background.
func (r *SeasonRefresher) Start() {
	r.cron.Start()
}

// Stop halts the schedule and waits for a running refresh to finish.
func (r *SeasonRefresher) Stop() {
	<-r.cron.Stop().Done()
}
