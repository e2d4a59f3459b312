package controller

import (
	"errors"
	"net/http"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/web/entity"
	"github.com/futurecast/futurecast/web/middleware"
	"github.com/futurecast/futurecast/web/service"
	"github.com/futurecast/futurecast/web/session"

	"github.com/gin-gonic/gin"
)

// ForecastController serves the dashboard, forecast pages and the gated content API.
type ForecastController struct {
	BaseController

	forecastService *service.ForecastService
	stakeService    *service.StakeService
}

func NewForecastController(g *gin.RouterGroup, api *gin.RouterGroup, forecastService *service.ForecastService, stakeService *service.StakeService) *ForecastController {
	a := &ForecastController{
		forecastService: forecastService,
		stakeService:    stakeService,
	}
	a.initRouter(g, api)
	return a
}

func (a *ForecastController) initRouter(g *gin.RouterGroup, api *gin.RouterGroup) {
	pages := g.Group("")
	pages.Use(a.checkLogin)
	pages.GET("/dashboard", a.dashboard)
	pages.GET("/forecasts/:id", a.show)

	gated := api.Group("/forecasts")
	gated.Use(a.checkLogin)
	gated.GET("/:id/unlock", a.unlock)
}

func (a *ForecastController) dashboard(c *gin.Context) {
	selected := c.Query("country")
	if selected == "" {
		selected = config.GetDefaultCountry()
	}
	countries, err := a.forecastService.ListCountries()
	if err != nil {
		logger.Error("list countries failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	forecasts, err := a.forecastService.ListForecasts(selected, config.GetDefaultCountry())
	if err != nil {
		logger.Error("list forecasts failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	if countries == nil {
		countries = []string{}
	}
	if forecasts == nil {
		forecasts = []*entity.PublicForecast{}
	}
	page(c, "Dashboard", entity.DashboardProps{
		Countries:       countries,
		SelectedCountry: selected,
		Forecasts:       forecasts,
	})
}

func (a *ForecastController) show(c *gin.Context) {
	id, ok := paramId(c, "id")
	if !ok {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	forecast, err := a.forecastService.GetForecast(id)
	if errors.Is(err, service.ErrForecastNotFound) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		logger.Error("get forecast failed:", err)
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	user := session.GetLoginUser(c)
	page(c, "Forecasts/Show", entity.ForecastProps{
		Forecast:       forecast,
		UserStakeLevel: a.stakeService.LevelFor(c.Request.Context(), user),
	})
}

func (a *ForecastController) unlock(c *gin.Context) {
	id, ok := paramId(c, "id")
	if !ok {
		jsonError(c, http.StatusBadRequest, "Invalid forecast id")
		return
	}
	user := session.GetLoginUser(c)
	detail, level, err := a.forecastService.GetUnlockedContent(c.Request.Context(), user, id)
	switch {
	case errors.Is(err, service.ErrForecastNotFound):
		jsonError(c, http.StatusNotFound, "Forecast not found")
	case errors.Is(err, service.ErrInsufficientStake):
		logger.Infof("[%s] unlock of forecast %d denied for %s at stake level %d",
			middleware.GetRequestID(c), id, user.WalletAddress, level)
		jsonError(c, http.StatusForbidden, "Insufficient stake level")
	case err != nil:
		logger.Errorf("[%s] unlock forecast failed: %v", middleware.GetRequestID(c), err)
		jsonError(c, http.StatusInternalServerError, "Unable to load forecast")
	default:
		c.JSON(http.StatusOK, entity.UnlockResponse{
			Success:         true,
			UnlockedContent: detail,
			UserStakeLevel:  level,
		})
	}
}
