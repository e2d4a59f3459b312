// Package entity defines the shapes the web layer sends to clients.
package entity

import "time"

// Msg is the response of action endpoints such as wallet login.
type Msg struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Page is a server rendered page: the client component to mount and its props.
type Page struct {
	Component string `json:"component"`
	Props     any    `json:"props"`
}

// PublicForecast is the projection of a forecast that may be shown to anyone. It has no field
// for the gated detail.
type PublicForecast struct {
	Id          int       `json:"id"`
	ForecastId  int       `json:"forecastId"`
	Title       string    `json:"title"`
	Country     string    `json:"country"`
	FreeSummary string    `json:"freeSummary"`
	CreatedAt   time.Time `json:"created_at"`
}

type DashboardProps struct {
	Countries       []string          `json:"countries"`
	SelectedCountry string            `json:"selectedCountry"`
	Forecasts       []*PublicForecast `json:"forecasts"`
}

type ForecastProps struct {
	Forecast       *PublicForecast `json:"forecast"`
	UserStakeLevel int             `json:"userStakeLevel"`
}

type PremiumProps struct {
	UserStakeLevel    int               `json:"userStakeLevel"`
	AccessLevel       string            `json:"accessLevel"`
	UnlockedForecasts []*PublicForecast `json:"unlockedForecasts"`
}

// UnlockResponse is returned by the gated content endpoint on success.
type UnlockResponse struct {
	Success         bool `json:"success"`
	UnlockedContent any  `json:"unlockedContent"`
	UserStakeLevel  int  `json:"userStakeLevel"`
}
