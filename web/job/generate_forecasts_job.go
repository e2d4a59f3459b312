package job

import (
	"context"

	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/util/common"
	"github.com/futurecast/futurecast/web/service"

	"go.uber.org/atomic"
)

// ForecastSeeder is the part of service.SeedService the job drives.
type ForecastSeeder interface {
	SeedGenerated(ctx context.Context) (*service.SeedReport, error)
}

// GenerateForecastsJob regenerates the forecast set from the external generator on a schedule.
type GenerateForecastsJob struct {
	ctx     context.Context
	seeder  ForecastSeeder
	running atomic.Bool
}

func NewGenerateForecastsJob(ctx context.Context, seeder ForecastSeeder) *GenerateForecastsJob {
	return &GenerateForecastsJob{ctx: ctx, seeder: seeder}
}

// Run is skipped while a previous run is still going.
func (j *GenerateForecastsJob) Run() {
	if !j.running.CompareAndSwap(false, true) {
		logger.Warning("forecast generation still running, skipping this tick")
		return
	}
	defer j.running.Store(false)
	defer common.Recover("generate forecasts job")

	report, err := j.seeder.SeedGenerated(j.ctx)
	if err != nil {
		logger.Warning("generate forecasts job failed:", err)
		return
	}
	logger.Infof("generate forecasts job %s stored %d forecasts", report.RunID, report.Written)
}
