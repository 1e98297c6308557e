package controller

import (
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/swecha/intern-portal/logger"
	"github.com/swecha/intern-portal/web/entity"
	"github.com/swecha/intern-portal/web/service"
)

// getRemoteIp extracts the real IP address from the request headers or
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// jsonMsg sends a JSON response with a message and error status.
func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

// jsonObj sends a JSON response with an object and error status.
func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

// jsonMsgObj sends a JSON response with a message, object, and error status.
// Service sentinel errors map to meaningful HTTP status codes; store and I/O
// failures surface as a 500 with a clear message instead of crashing the
// operation.
func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
		c.JSON(http.StatusOK, m)
		return
	}
	m.Success = false
	if msg != "" {
		m.Msg = msg + ": " + err.Error()
	} else {
		m.Msg = err.Error()
	}
	logger.Warning(m.Msg)
	c.JSON(errStatus(err), m)
}

// pureJsonMsg sends a pure JSON message response with custom status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

func errStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrSessionExpired):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbiddenTransition):
		return http.StatusForbidden
	case errors.Is(err, service.ErrIssueNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrDuplicateEmail),
		errors.Is(err, service.ErrAlreadyAssigned):
		return http.StatusConflict
	}
	// Store corruption and I/O failures land here.
	return http.StatusInternalServerError
}
