package handler

import (
	"net/http"

	"github.com/dailywrite/backend/internal/model"
	"github.com/dailywrite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type WriteHandler struct {
	svc    *service.WriteService
	logger *zap.Logger
}

func NewWriteHandler(svc *service.WriteService, logger *zap.Logger) *WriteHandler {
	return &WriteHandler{svc: svc, logger: logger}
}

// Today godoc
// @Summary Today's writing page
// @Description First challenge of today's worklist with its templates and draft.
// @Tags write
// @Produce json
// @Param access header string true "Bearer access token"
// @Success 200 {object} model.Response{data=model.WriteResponse}
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /write [get]
func (h *WriteHandler) Today(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.svc.Today(c.Request.Context(), user.ID)
	if err != nil {
		writeChallengeError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

// Select godoc
// @Summary Writing page for a selected challenge
// @Tags write
// @Produce json
// @Param access header string true "Bearer access token"
// @Param challengeName path string true "Challenge name"
// @Success 200 {object} model.Response{data=model.WriteResponse}
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /write/select/{challengeName} [get]
func (h *WriteHandler) Select(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.svc.Select(c.Request.Context(), user.ID, c.Param("challengeName"))
	if err != nil {
		writeChallengeError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

// Temporary godoc
// @Summary Save today's draft
// @Tags write
// @Accept json
// @Produce json
// @Param access header string true "Bearer access token"
// @Param request body model.WriteRequest true "Writing"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /write/temp [post]
func (h *WriteHandler) Temporary(c *gin.Context) {
	h.save(c, false)
}

// Complete godoc
// @Summary Complete today's writing
// @Tags write
// @Accept json
// @Produce json
// @Param access header string true "Bearer access token"
// @Param request body model.WriteRequest true "Writing"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /write/complete [post]
func (h *WriteHandler) Complete(c *gin.Context) {
	h.save(c, true)
}

// Planner godoc
// @Summary Edit the latest writing from the planner
// @Description Timestamps of the writing are left untouched.
// @Tags write
// @Accept json
// @Produce json
// @Param access header string true "Bearer access token"
// @Param request body model.WriteRequest true "Writing"
// @Success 200 {object} model.Response
// @Failure 400 {object} model.Response
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /write/planner [patch]
func (h *WriteHandler) Planner(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.EditPlanner(c.Request.Context(), user.ID, req); err != nil {
		writeChallengeError(c, h.logger, err)
		return
	}
	respondOK(c, nil)
}

func (h *WriteHandler) save(c *gin.Context, complete bool) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	var req model.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.Save(c.Request.Context(), user.ID, req, complete); err != nil {
		writeChallengeError(c, h.logger, err)
		return
	}
	respondOK(c, nil)
}
