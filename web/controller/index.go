package controller

import (
	"errors"
	"net/http"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/logger"
	"github.com/futurecast/futurecast/web/service"
	"github.com/futurecast/futurecast/web/session"

	"github.com/gin-gonic/gin"
)

// WalletLoginForm is the body of POST /wallet-login.
type WalletLoginForm struct {
	Address string `json:"address" form:"address"`
}

// IndexController handles the landing page and wallet based login.
type IndexController struct {
	BaseController

	userService *service.UserService
}

func NewIndexController(g *gin.RouterGroup, userService *service.UserService) *IndexController {
	a := &IndexController{userService: userService}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/logout", a.logout)

	g.POST("/wallet-login", a.walletLogin)
}

func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusFound, "/dashboard")
		return
	}
	page(c, "Welcome", gin.H{
		"appName": config.GetName(),
		"version": config.GetVersion(),
	})
}

func (a *IndexController) walletLogin(c *gin.Context) {
	var form WalletLoginForm
	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusUnprocessableEntity, false, "The address field is required.")
		return
	}
	if form.Address == "" {
		pureJsonMsg(c, http.StatusUnprocessableEntity, false, "The address field is required.")
		return
	}

	user, created, err := a.userService.LoginOrCreate(form.Address)
	if errors.Is(err, service.ErrInvalidAddress) {
		logger.Warningf("rejected wallet login for %q, IP: %s", form.Address, getRemoteIp(c))
		pureJsonMsg(c, http.StatusUnprocessableEntity, false, "The address field format is invalid.")
		return
	}
	if err != nil {
		logger.Error("wallet login failed:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "Unable to log in")
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	if err := session.SetLoginUser(c, user); err != nil {
		logger.Warning("Unable to save session:", err)
		pureJsonMsg(c, http.StatusInternalServerError, false, "Unable to log in")
		return
	}

	if created {
		logger.Infof("%s registered and logged in, IP: %s", user.WalletAddress, getRemoteIp(c))
	} else {
		logger.Infof("%s logged in, IP: %s", user.WalletAddress, getRemoteIp(c))
	}
	pureJsonMsg(c, http.StatusOK, true, "User logged in successfully")
}

func (a *IndexController) logout(c *gin.Context) {
	user := session.GetLoginUser(c)
	if user != nil {
		logger.Infof("%s logged out", user.WalletAddress)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("Unable to save session after clearing:", err)
	}
	c.Redirect(http.StatusFound, "/")
}
