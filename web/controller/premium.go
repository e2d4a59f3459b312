package controller

import (
	"net/http"

	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/staking"
	"github.com/futurecast/futurecast/web/entity"
	"github.com/futurecast/futurecast/web/service"
	"github.com/futurecast/futurecast/web/session"

	"github.com/gin-gonic/gin"
)

type PremiumController struct {
	BaseController

	forecastService *service.ForecastService
	stakeService    *service.StakeService
}

func NewPremiumController(g *gin.RouterGroup, forecastService *service.ForecastService, stakeService *service.StakeService) *PremiumController {
	a := &PremiumController{
		forecastService: forecastService,
		stakeService:    stakeService,
	}
	a.initRouter(g)
	return a
}

func (a *PremiumController) initRouter(g *gin.RouterGroup) {
	g.GET("/premium", a.checkLogin, a.premium)
}

func (a *PremiumController) premium(c *gin.Context) {
	level := a.stakeService.LevelFor(c.Request.Context(), session.GetLoginUser(c))
	unlocked := []*entity.PublicForecast{}
	if level >= staking.LevelBasic {
		all, err := a.forecastService.ListAll()
		if err != nil {
			logger.Error("list forecasts failed:", err)
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		unlocked = append(unlocked, all...)
	}
	page(c, "Premium", entity.PremiumProps{
		UserStakeLevel:    level,
		AccessLevel:       a.stakeService.AccessLevel(level),
		UnlockedForecasts: unlocked,
	})
}
