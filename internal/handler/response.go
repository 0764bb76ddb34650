package handler

import (
	"net/http"

	"github.com/dailywrite/backend/internal/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	msgOK             = "OK"
	msgServerError    = "Server Error"
	msgInvalidRequest = "invalid request"
	msgUnauthorized   = "unauthorized"
	msgDBServerError  = "DB Server Error"
)

// 클라이언트와 합의된 비표준 상태 코드
const (
	statusLoginAgain         = 419
	statusDuplicateChallenge = http.StatusUnsupportedMediaType
	statusTooManyChallenges  = http.StatusTeapot
)

func respond(c *gin.Context, status int, message string, data any) {
	c.JSON(status, model.Response{Code: status, Message: message, Data: data})
}

func respondOK(c *gin.Context, data any) {
	respond(c, http.StatusOK, msgOK, data)
}

// respondServerError - 내부 에러는 로그로만 남기고 응답에는 싣지 않는다.
func respondServerError(c *gin.Context, logger *zap.Logger, err error) {
	logger.Error("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.String("request_id", c.GetString(requestIDKey)),
		zap.Error(err),
	)
	respond(c, http.StatusInternalServerError, msgServerError, nil)
}

func requireUser(c *gin.Context) (*model.AuthUser, bool) {
	user := GetAuthUser(c)
	if user == nil {
		respond(c, http.StatusUnauthorized, msgUnauthorized, nil)
		return nil, false
	}
	return user, true
}
