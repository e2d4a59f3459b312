package service

import (
	"context"
	"io"
	"time"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/generator"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/util/metrics"
	"github.com/futurecast/futurecast/util/random"

	"github.com/google/uuid"
)

const (
	minForecastId = 10000
	maxForecastId = 99999
)

const (
	SeedModeSample    = "sample"
	SeedModeGenerated = "generated"
)

// SeedReport summarises one seeding run.
type SeedReport struct {
	RunID     string
	Mode      string
	Written   int
	Fallbacks int
	Duration  time.Duration
}

// SeedService rebuilds the forecast table, from the embedded samples or from the external
// generator. Existing rows are replaced only once the whole new set is assembled.
type SeedService struct {
	forecastService *ForecastService
	catalog         *generator.Catalog
	generator       generator.Generator
	year            int
	delay           time.Duration
}

func NewSeedService(forecastService *ForecastService, catalog *generator.Catalog, gen generator.Generator, year int, delay time.Duration) *SeedService {
	return &SeedService{
		forecastService: forecastService,
		catalog:         catalog,
		generator:       gen,
		year:            year,
		delay:           delay,
	}
}

// NewSeedServiceFromConfig wires a SeedService from the process configuration. With a Gemini
// API key the generator runs in process, otherwise the external command is used.
func NewSeedServiceFromConfig(ctx context.Context, forecastService *ForecastService) (*SeedService, error) {
	catalog, err := generator.LoadCatalog()
	if err != nil {
		return nil, err
	}
	var gen generator.Generator
	if apiKey := config.GetGeminiAPIKey(); apiKey != "" {
		gen, err = generator.NewGeminiGenerator(ctx, apiKey, config.GetGeminiModel())
		if err != nil {
			return nil, err
		}
	} else {
		gen = generator.NewProcessGenerator(config.GetGeneratorCommand(), config.GetGeneratorScript())
	}
	return NewSeedService(forecastService, catalog, gen, config.GetForecastYear(), config.GetGeneratorDelay()), nil
}

// Close releases the generator's client, if it holds one.
func (s *SeedService) Close() error {
	if closer, ok := s.generator.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (s *SeedService) SeedSample(ctx context.Context) (*SeedReport, error) {
	report := s.newReport(SeedModeSample)
	start := time.Now()
	ids := newIdPool()

	forecasts := make([]*model.Forecast, 0, len(s.catalog.Samples))
	for _, sample := range s.catalog.Samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		logger.Infof("[%s] creating forecast for %s %s", report.RunID, sample.Country, sample.Topic)
		f, err := sample.Result(s.year).Forecast(ids.next())
		if err != nil {
			return nil, err
		}
		forecasts = append(forecasts, f)
	}

	if err := s.forecastService.ReplaceAll(forecasts); err != nil {
		return nil, err
	}
	metrics.SeededForecasts.WithLabelValues(SeedModeSample).Add(float64(len(forecasts)))
	return s.finish(report, start, len(forecasts)), nil
}

// SeedGenerated asks the generator for every catalogue spec. A spec the generator fails on is
// stored as a fallback record; generator failures never fail the run.
func (s *SeedService) SeedGenerated(ctx context.Context) (*SeedReport, error) {
	report := s.newReport(SeedModeGenerated)
	start := time.Now()
	ids := newIdPool()

	forecasts := make([]*model.Forecast, 0, len(s.catalog.Specs))
	for i, spec := range s.catalog.Specs {
		if i > 0 {
			if err := sleep(ctx, s.delay); err != nil {
				return nil, err
			}
		}
		logger.Infof("[%s] generating forecast for %s", report.RunID, spec)

		result, err := s.generator.Generate(ctx, spec, s.year)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, ctxErr
			}
			logger.Warningf("[%s] %v; storing fallback forecast", report.RunID, err)
			fallback := generator.Fallback(spec, s.year)
			result = &fallback
			report.Fallbacks++
			metrics.SeededForecasts.WithLabelValues("fallback").Inc()
		} else {
			logger.Infof("[%s] created forecast %s (confidence %d%%)", report.RunID, result.Value, result.Confidence)
		}

		f, err := result.Forecast(ids.next())
		if err != nil {
			return nil, err
		}
		forecasts = append(forecasts, f)
	}

	if err := s.forecastService.ReplaceAll(forecasts); err != nil {
		return nil, err
	}
	metrics.SeededForecasts.WithLabelValues(SeedModeGenerated).Add(float64(len(forecasts) - report.Fallbacks))
	return s.finish(report, start, len(forecasts)), nil
}

func (s *SeedService) newReport(mode string) *SeedReport {
	return &SeedReport{RunID: uuid.NewString(), Mode: mode}
}

func (s *SeedService) finish(report *SeedReport, start time.Time, written int) *SeedReport {
	report.Written = written
	report.Duration = time.Since(start)
	metrics.SeedRunDuration.Observe(report.Duration.Seconds())
	logger.Infof("[%s] %s seeding wrote %d forecasts (%d fallbacks) in %s",
		report.RunID, report.Mode, report.Written, report.Fallbacks, report.Duration.Round(time.Millisecond))
	return report
}

// idPool draws public forecast ids without repeating one inside a run.
type idPool map[int]struct{}

func newIdPool() idPool {
	return idPool{}
}

func (p idPool) next() int {
	for {
		id := random.Between(minForecastId, maxForecastId)
		if _, used := p[id]; !used {
			p[id] = struct{}{}
			return id
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
