package handler

import (
	"errors"
	"net/http"

	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AccountHandler struct {
	svc    *service.AccountService
	logger *zap.Logger
}

func NewAccountHandler(svc *service.AccountService, logger *zap.Logger) *AccountHandler {
	return &AccountHandler{svc: svc, logger: logger}
}

// SendEmail godoc
// @Summary Send verification code
// @Description Rate limited per client IP.
// @Tags account
// @Accept json
// @Produce json
// @Param request body model.SendEmailRequest true "Email"
// @Success 200 {object} model.Response{data=model.SendEmailResponse}
// @Failure 400 {object} model.Response
// @Failure 429 {object} model.Response
// @Failure 500 {object} model.Response
// @Failure 502 {object} model.Response
// @Router /send-email [post]
func (h *AccountHandler) SendEmail(c *gin.Context) {
	var req model.SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	ttl, err := h.svc.SendVerificationCode(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		case errors.Is(err, service.ErrMailDelivery):
			respond(c, http.StatusBadGateway, "Fail Send Email", nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respondOK(c, model.SendEmailResponse{Email: req.Email, ExpiresIn: int64(ttl.Seconds())})
}

// VerifyEmail godoc
// @Summary Verify email code
// @Tags account
// @Produce json
// @Param email query string true "Email"
// @Param code query string true "Verification code"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /verify-email [get]
func (h *AccountHandler) VerifyEmail(c *gin.Context) {
	err := h.svc.VerifyEmail(c.Request.Context(), c.Query("email"), c.Query("code"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) || errors.Is(err, service.ErrCodeMismatch) {
			respond(c, http.StatusBadRequest, "Fail Verify Email", nil)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	respond(c, http.StatusOK, "Success Verify Email", nil)
}

// Signup godoc
// @Summary Sign up
// @Tags account
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Signup payload"
// @Success 200 {object} model.Response{data=model.SignupResponse}
// @Failure 400 {object} model.Response
// @Failure 409 {object} model.Response
// @Failure 500 {object} model.Response
// @Failure 502 {object} model.Response
// @Router /signup [post]
func (h *AccountHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, "Fail SignUp", nil)
		return
	}

	resp, err := h.svc.Signup(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respond(c, http.StatusBadRequest, "Fail SignUp", nil)
		case errors.Is(err, service.ErrConflict):
			respond(c, http.StatusConflict, "already exists", nil)
		case errors.Is(err, service.ErrUpstream):
			h.logger.Error("signup insert failed", zap.Error(err))
			respond(c, http.StatusBadGateway, msgDBServerError, nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respondOK(c, resp)
}

// CheckIdentifier godoc
// @Summary Check identifier availability
// @Tags account
// @Produce json
// @Param checkIdentifier query string true "Identifier"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /check-identifier [get]
func (h *AccountHandler) CheckIdentifier(c *gin.Context) {
	available, err := h.svc.CheckIdentifier(c.Request.Context(), c.Query("checkIdentifier"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidInput) {
			respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}

	if !available {
		respond(c, http.StatusBadRequest, "아이디 중복", nil)
		return
	}
	respond(c, http.StatusOK, "아이디 사용 가능", nil)
}

// FindID godoc
// @Summary Find identifier by verified email
// @Tags account
// @Produce json
// @Param email query string true "Email"
// @Param code query string true "Verification code"
// @Success 200 {object} model.Response{data=model.FindIDResponse}
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Failure 502 {object} model.Response
// @Router /find-id [get]
func (h *AccountHandler) FindID(c *gin.Context) {
	id, err := h.svc.FindIdentifier(c.Request.Context(), c.Query("email"), c.Query("code"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrCodeMismatch):
			respond(c, http.StatusBadRequest, "Fail Verify Email", nil)
		case errors.Is(err, service.ErrNotFound):
			respond(c, http.StatusNotFound, "email can't find", nil)
		case errors.Is(err, service.ErrUpstream):
			h.logger.Error("find id lookup failed", zap.Error(err))
			respond(c, http.StatusBadGateway, msgDBServerError, nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respondOK(c, model.FindIDResponse{UserID: id})
}

// FindPassword godoc
// @Summary Issue a temporary password
// @Description Replaces the password of the matching identifier+email and mails the new one.
// @Tags account
// @Accept json
// @Produce json
// @Param request body model.FindPasswordRequest true "Identifier and email"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Failure 502 {object} model.Response
// @Router /find-password [post]
func (h *AccountHandler) FindPassword(c *gin.Context) {
	var req model.FindPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	err := h.svc.ResetPassword(c.Request.Context(), req.Identifier, req.UserEmail)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidInput):
			respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		case errors.Is(err, service.ErrNotFound):
			respond(c, http.StatusNotFound, "Id can't find", nil)
		case errors.Is(err, service.ErrUpstream):
			h.logger.Error("password reset update failed", zap.Error(err))
			respond(c, http.StatusBadGateway, msgDBServerError, nil)
		case errors.Is(err, service.ErrMailDelivery):
			respond(c, http.StatusBadGateway, "Fail Send Email", nil)
		default:
			respondServerError(c, h.logger, err)
		}
		return
	}

	respond(c, http.StatusOK, msgOK, nil)
}
