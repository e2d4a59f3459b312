package service

import (
	"context"

	"github.com/futurecast/futurecast/database"
	"github.com/futurecast/futurecast/database/model"
	"github.com/futurecast/futurecast/staking"
	"github.com/futurecast/futurecast/util/metrics"
	"github.com/futurecast/futurecast/web/entity"

	"gorm.io/gorm"
)

var publicColumns = []string{"id", "forecast_id", "title", "country", "free_summary", "created_at"}

type ForecastService struct {
	stakeService *StakeService
}

func NewForecastService(stakeService *StakeService) *ForecastService {
	return &ForecastService{stakeService: stakeService}
}

func (s *ForecastService) ListCountries() ([]string, error) {
	db := database.GetDB()
	var countries []string
	err := db.Model(model.Forecast{}).
		Distinct().
		Order("country").
		Pluck("country", &countries).
		Error
	if err != nil {
		return nil, err
	}
	return countries, nil
}

// ListForecasts returns the public projection of every forecast for country, or for
// defaultCountry when country is empty.
func (s *ForecastService) ListForecasts(country string, defaultCountry string) ([]*entity.PublicForecast, error) {
	if country == "" {
		country = defaultCountry
	}
	db := database.GetDB()
	var forecasts []*entity.PublicForecast
	err := db.Model(model.Forecast{}).
		Select(publicColumns).
		Where("country = ?", country).
		Order("id").
		Find(&forecasts).
		Error
	if err != nil {
		return nil, err
	}
	return forecasts, nil
}

// ListAll returns the public projection of every forecast.
func (s *ForecastService) ListAll() ([]*entity.PublicForecast, error) {
	db := database.GetDB()
	var forecasts []*entity.PublicForecast
	err := db.Model(model.Forecast{}).
		Select(publicColumns).
		Order("id").
		Find(&forecasts).
		Error
	if err != nil {
		return nil, err
	}
	return forecasts, nil
}

func (s *ForecastService) GetForecast(id int) (*entity.PublicForecast, error) {
	if id <= 0 {
		return nil, ErrInvalidForecastId
	}
	db := database.GetDB()
	forecast := &entity.PublicForecast{}
	err := db.Model(model.Forecast{}).
		Select(publicColumns).
		Where("id = ?", id).
		Take(forecast).
		Error
	if database.IsNotFound(err) {
		return nil, ErrForecastNotFound
	}
	if err != nil {
		return nil, err
	}
	return forecast, nil
}

// GetUnlockedContent releases the gated detail of forecast id to user. The stake level is
// resolved on every call and is returned even when access is denied.
func (s *ForecastService) GetUnlockedContent(ctx context.Context, user *model.User, id int) (*model.ForecastDetail, int, error) {
	if id <= 0 {
		return nil, 0, ErrInvalidForecastId
	}
	db := database.GetDB()
	forecast := &model.Forecast{}
	err := db.Model(model.Forecast{}).Where("id = ?", id).Take(forecast).Error
	if database.IsNotFound(err) {
		metrics.UnlockRequests.WithLabelValues("not_found").Inc()
		return nil, 0, ErrForecastNotFound
	}
	if err != nil {
		return nil, 0, err
	}

	level := s.stakeService.LevelFor(ctx, user)
	if level < staking.LevelBasic {
		metrics.UnlockRequests.WithLabelValues("denied").Inc()
		return nil, level, ErrInsufficientStake
	}

	detail, err := forecast.Detail()
	if err != nil {
		return nil, level, err
	}
	metrics.UnlockRequests.WithLabelValues("granted").Inc()
	return detail, level, nil
}

// ReplaceAll swaps the whole forecast set for forecasts. Rows are assembled in the staging
// table first; the live table is then emptied and refilled inside one transaction.
func (s *ForecastService) ReplaceAll(forecasts []*model.Forecast) error {
	staged := make([]*model.StagedForecast, 0, len(forecasts))
	for _, f := range forecasts {
		row := *f
		row.Id = 0
		staged = append(staged, &model.StagedForecast{Forecast: row})
	}

	db := database.GetDB()
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.StagedForecast{}).Error; err != nil {
			return err
		}
		if len(staged) == 0 {
			return nil
		}
		return tx.CreateInBatches(staged, 100).Error
	})
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&model.Forecast{}).Error; err != nil {
			return err
		}
		err := tx.Exec("INSERT INTO forecasts (forecast_id, country, title, free_summary, unlocked_content, created_at, updated_at) " +
			"SELECT forecast_id, country, title, free_summary, unlocked_content, created_at, updated_at FROM forecast_staging ORDER BY id").Error
		if err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&model.StagedForecast{}).Error
	})
}
