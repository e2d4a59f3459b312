package service

import (
	"context"
	"errors"
	"testing"

	"github.com/futurecast/futurecast/generator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	fail  map[string]bool
	calls []generator.Spec
}

func (g *fakeGenerator) Generate(_ context.Context, spec generator.Spec, year int) (*generator.Result, error) {
	g.calls = append(g.calls, spec)
	if g.fail[spec.String()] {
		return nil, &generator.Error{Spec: spec, Err: errors.New("exit status 1")}
	}
	return &generator.Result{
		Title:      generator.Title(spec.Topic, year),
		Country:    spec.Country,
		Value:      "+1.0%",
		Detail:     "generated",
		Confidence: 88,
		KeyDrivers: []string{"x"},
	}, nil
}

func newSeedService(t *testing.T, gen generator.Generator) (*SeedService, *ForecastService) {
	t.Helper()
	catalog, err := generator.LoadCatalog()
	require.NoError(t, err)
	forecasts := NewForecastService(NewStakeService(nil))
	return NewSeedService(forecasts, catalog, gen, 2026, 0), forecasts
}

func TestSeedSample(t *testing.T) {
	setup(t)
	seeds, forecasts := newSeedService(t, &fakeGenerator{})

	report, err := seeds.SeedSample(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SeedModeSample, report.Mode)
	assert.Equal(t, 4, report.Written)
	assert.NotEmpty(t, report.RunID)

	all, err := forecasts.ListAll()
	require.NoError(t, err)
	require.Len(t, all, 4)
	seen := map[int]bool{}
	for _, f := range all {
		assert.GreaterOrEqual(t, f.ForecastId, 10000)
		assert.LessOrEqual(t, f.ForecastId, 99999)
		assert.False(t, seen[f.ForecastId])
		seen[f.ForecastId] = true
	}
	assert.Equal(t, "GDP Growth 2026", all[0].Title)
	assert.Equal(t, "+2.5%", all[0].FreeSummary)

	_, err = seeds.SeedSample(context.Background())
	require.NoError(t, err)
	all, err = forecasts.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 4, "reseeding replaces rather than appends")
}

func TestSeedGeneratedFallsBack(t *testing.T) {
	setup(t)
	gen := &fakeGenerator{fail: map[string]bool{"Egypt Currency Devaluation": true}}
	seeds, forecasts := newSeedService(t, gen)

	report, err := seeds.SeedGenerated(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, report.Written)
	assert.Equal(t, 1, report.Fallbacks)
	assert.Len(t, gen.calls, 8)

	egypt, err := forecasts.ListForecasts("Egypt", "Nigeria")
	require.NoError(t, err)
	require.Len(t, egypt, 1)
	assert.Equal(t, generator.FallbackSummary, egypt[0].FreeSummary)
	assert.Equal(t, "Currency Devaluation 2026", egypt[0].Title)

	morocco, err := forecasts.ListForecasts("Morocco", "Nigeria")
	require.NoError(t, err)
	require.Len(t, morocco, 1)
	assert.Equal(t, "+1.0%", morocco[0].FreeSummary)
}

func TestSeedGeneratedCancelledKeepsExistingRows(t *testing.T) {
	setup(t)
	seeds, forecasts := newSeedService(t, &fakeGenerator{})
	_, err := seeds.SeedSample(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = seeds.SeedGenerated(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	all, err := forecasts.ListAll()
	require.NoError(t, err)
	assert.Len(t, all, 4)
}
