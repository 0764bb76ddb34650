package handler

import (
	"errors"
	"net/http"

	"github.com/dailywrite/backend/internal/service"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ChallengeHandler struct {
	svc    *service.ChallengeService
	logger *zap.Logger
}

func NewChallengeHandler(svc *service.ChallengeService, logger *zap.Logger) *ChallengeHandler {
	return &ChallengeHandler{svc: svc, logger: logger}
}

// List godoc
// @Summary List categories and challenges
// @Tags challenge
// @Produce json
// @Success 200 {object} model.Response{data=model.CatalogResponse}
// @Failure 500 {object} model.Response
// @Router /challenges [get]
func (h *ChallengeHandler) List(c *gin.Context) {
	resp, err := h.svc.Catalog(c.Request.Context())
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

// Search godoc
// @Summary Search challenges by category
// @Tags challenge
// @Produce json
// @Param categorySearch query string false "Category name"
// @Success 200 {object} model.Response{data=model.SearchResponse}
// @Failure 500 {object} model.Response
// @Router /challenges/search [get]
func (h *ChallengeHandler) Search(c *gin.Context) {
	resp, err := h.svc.Search(c.Request.Context(), c.Query("categorySearch"))
	if err != nil {
		respondServerError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

// Main godoc
// @Summary Main page data
// @Tags challenge
// @Produce json
// @Param access header string true "Bearer access token"
// @Success 200 {object} model.Response{data=model.MainResponse}
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /main [get]
func (h *ChallengeHandler) Main(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.svc.Main(c.Request.Context(), user.ID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respond(c, http.StatusNotFound, "user can't find", nil)
			return
		}
		respondServerError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

// Start godoc
// @Summary Start a challenge
// @Tags challenge
// @Produce json
// @Param access header string true "Bearer access token"
// @Param name path string true "Challenge name"
// @Success 200 {object} model.Response{data=model.NewChallengeResponse}
// @Failure 401 {object} model.Response
// @Failure 404 {object} model.Response
// @Failure 415 {object} model.Response
// @Failure 418 {object} model.Response
// @Failure 500 {object} model.Response
// @Router /challenge/new/{name} [post]
func (h *ChallengeHandler) Start(c *gin.Context) {
	user, ok := requireUser(c)
	if !ok {
		return
	}

	resp, err := h.svc.Start(c.Request.Context(), user.ID, c.Param("name"))
	if err != nil {
		writeChallengeError(c, h.logger, err)
		return
	}
	respondOK(c, resp)
}

func writeChallengeError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respond(c, http.StatusBadRequest, msgInvalidRequest, nil)
	case errors.Is(err, service.ErrNotFound):
		respond(c, http.StatusNotFound, "챌린지를 찾을 수 없습니다.", nil)
	case errors.Is(err, service.ErrAlreadyInProgress):
		respond(c, statusDuplicateChallenge, "현재 진행 중인 챌린지와 중복됩니다.", nil)
	case errors.Is(err, service.ErrTooManyChallenges):
		respond(c, statusTooManyChallenges, "더 이상 챌린지를 할 수 없습니다.", nil)
	case errors.Is(err, service.ErrNothingToWrite):
		respond(c, http.StatusNotFound, "오늘은 더 이상 진행할 챌린지가 없습니다", nil)
	default:
		respondServerError(c, logger, err)
	}
}
