package controller

import (
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/futurecast/futurecast/config"
	"github.com/futurecast/futurecast/web/entity"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real IP address from the request headers or remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return strings.TrimSpace(ips[0])
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// pureJsonMsg sends a status/message pair with a custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	status := "success"
	if !success {
		status = "error"
	}
	c.JSON(statusCode, entity.Msg{
		Status:  status,
		Message: msg,
	})
}

func jsonError(c *gin.Context, statusCode int, msg string) {
	c.JSON(statusCode, gin.H{"error": msg})
}

// page renders a client component with its props, plus the shared app metadata.
func page(c *gin.Context, component string, props any) {
	c.Header("X-App-Version", config.GetVersion())
	c.JSON(http.StatusOK, entity.Page{
		Component: component,
		Props:     props,
	})
}

func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

func isAPI(c *gin.Context) bool {
	return strings.HasPrefix(c.Request.URL.Path, "/api/") || isAjax(c)
}

// paramId parses a positive integer route parameter.
func paramId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
