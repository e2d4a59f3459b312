// Package model holds the gorm models persisted by FutureCast.
package model

import (
	"time"

	"github.com/goccy/go-json"
	"gorm.io/datatypes"
)

// ForecastDetail is the gated part of a forecast. It is only released after a stake check.
type ForecastDetail struct {
	Detail     string   `json:"detail"`
	Confidence int      `json:"confidence"`
	KeyDrivers []string `json:"key_drivers"`
}

type Forecast struct {
	Id              int            `json:"id" gorm:"primaryKey;autoIncrement"`
	ForecastId      int            `json:"forecastId" gorm:"index"`
	Country         string         `json:"country" gorm:"index;not null"`
	Title           string         `json:"title" gorm:"not null"`
	FreeSummary     string         `json:"freeSummary"`
	UnlockedContent datatypes.JSON `json:"-"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// NewForecast builds a forecast row with its detail blob encoded.
func NewForecast(forecastId int, country, title, summary string, detail ForecastDetail) (*Forecast, error) {
	if detail.KeyDrivers == nil {
		detail.KeyDrivers = []string{}
	}
	blob, err := json.Marshal(detail)
	if err != nil {
		return nil, err
	}
	return &Forecast{
		ForecastId:      forecastId,
		Country:         country,
		Title:           title,
		FreeSummary:     summary,
		UnlockedContent: datatypes.JSON(blob),
	}, nil
}

// Detail decodes the gated blob.
func (f *Forecast) Detail() (*ForecastDetail, error) {
	detail := &ForecastDetail{}
	if len(f.UnlockedContent) == 0 {
		return detail, nil
	}
	if err := json.Unmarshal(f.UnlockedContent, detail); err != nil {
		return nil, err
	}
	return detail, nil
}

// StagedForecast is the staging copy used while a reseed is being assembled.
type StagedForecast struct {
	Forecast
}

func (StagedForecast) TableName() string {
	return "forecast_staging"
}

type User struct {
	Id            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	WalletAddress string    `json:"walletAddress" gorm:"uniqueIndex;not null"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Password      string    `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
}
