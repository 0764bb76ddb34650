package handler

import (
	"errors"
	"net/http"

	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	svc    *service.AuthService
	logger *zap.Logger
}

func NewAuthHandler(svc *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, logger: logger}
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Identifier and password"
// @Success 200 {object} model.Response{data=model.LoginResponse}
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 419 {object} model.Response
// @Failure 500 {object} model.Response
// @Failure 502 {object} model.Response
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req.UserIdentifier, req.UserPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		case errors.Is(err, service.ErrNotFound):
			respond(c, http.StatusNotFound, "Id can't find", nil)
		case errors.Is(err, service.ErrInvalidPassword):
			respond(c, statusLoginAgain, "Password can't find", nil)
		case errors.Is(err, service.ErrUpstream):
			h.logger.Error("login lookup failed", zap.Error(err))
			respond(c, http.StatusBadGateway, msgServerError, nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respondOK(c, resp)
}

// Reissue godoc
// @Summary Reissue access token
// @Description Requires both access and refresh headers as "Bearer <token>". The refresh token is returned unchanged.
// @Tags auth
// @Produce json
// @Param access header string true "Bearer access token"
// @Param refresh header string true "Bearer refresh token"
// @Success 200 {object} model.Response{data=model.TokenPair}
// @Failure 400 {object} model.Response
// @Failure 402 {object} model.Response
// @Failure 419 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /reissue [post]
func (h *AuthHandler) Reissue(c *gin.Context) {
	pair, err := h.svc.Reissue(c.Request.Context(), c.GetHeader(AccessHeader), c.GetHeader(RefreshHeader))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadHeader):
			respond(c, http.StatusPaymentRequired, "헤더의 값을 알 수 없습니다.", nil)
		case errors.Is(err, service.ErrTokenNotExpired):
			respond(c, http.StatusBadRequest, "access token is not expired!", nil)
		case errors.Is(err, service.ErrReloginRequired):
			respond(c, statusLoginAgain, "login again!", nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respondOK(c, pair)
}

// Logout godoc
// @Summary Logout
// @Description Deletes the stored refresh token of the access token's user.
// @Tags auth
// @Produce json
// @Param access header string true "Bearer access token"
// @Success 200 {object} model.Response
// @Failure 403 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	err := h.svc.Logout(c.Request.Context(), c.GetHeader(AccessHeader))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBadHeader):
			respond(c, http.StatusForbidden, "strange state", nil)
		case errors.Is(err, service.ErrTokenUndecodable):
			respond(c, http.StatusNotFound, "No content.", nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respond(c, http.StatusOK, "Logout success", nil)
}
