package job

import (
	"context"
	"errors"
	"testing"

	"github.com/futurecast/futurecast/web/service"

	"github.com/stretchr/testify/assert"
)

type fakeSeeder struct {
	calls int
	err   error
	panic bool
	job   *GenerateForecastsJob
}

func (s *fakeSeeder) SeedGenerated(ctx context.Context) (*service.SeedReport, error) {
	s.calls++
	if s.panic {
		panic("generator exploded")
	}
	if s.job != nil {
		// a tick that fires while this run is in progress must be skipped
		s.job.Run()
	}
	if s.err != nil {
		return nil, s.err
	}
	return &service.SeedReport{RunID: "run", Written: 8}, nil
}

func TestGenerateForecastsJob(t *testing.T) {
	seeder := &fakeSeeder{}
	job := NewGenerateForecastsJob(context.Background(), seeder)
	seeder.job = job

	job.Run()
	assert.Equal(t, 1, seeder.calls)
	assert.False(t, job.running.Load())

	seeder.job = nil
	job.Run()
	assert.Equal(t, 2, seeder.calls)
}

func TestGenerateForecastsJobSurvivesFailures(t *testing.T) {
	seeder := &fakeSeeder{err: errors.New("database is locked")}
	job := NewGenerateForecastsJob(context.Background(), seeder)
	assert.NotPanics(t, job.Run)

	seeder.panic = true
	assert.NotPanics(t, job.Run)
	assert.False(t, job.running.Load())
	assert.Equal(t, 2, seeder.calls)
}
