package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RouterConfig struct {
	AllowedOrigins []string
	Logger         *zap.Logger

	Auth      *AuthHandler
	Account   *AccountHandler
	Challenge *ChallengeHandler
	Write     *WriteHandler

	TokenParser AccessTokenParser
	// MailLimiter - nil이면 /send-email 제한 없음
	MailLimiter *RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger), Metrics(), CORSMiddleware(cfg.AllowedOrigins))

	// 헬스체크, 운영용
	router.GET("/ping", Ping)
	router.GET("/", Root)
	router.GET("/metrics", MetricsHandler())
	router.GET("/openapi.json", OpenAPIDoc)

	// 인증
	router.POST("/login", cfg.Auth.Login)
	router.POST("/reissue", cfg.Auth.Reissue)
	router.POST("/logout", cfg.Auth.Logout)

	// 계정
	sendEmail := []gin.HandlerFunc{}
	if cfg.MailLimiter != nil {
		sendEmail = append(sendEmail, cfg.MailLimiter.Middleware())
	}
	sendEmail = append(sendEmail, cfg.Account.SendEmail)
	router.POST("/send-email", sendEmail...)
	router.GET("/verify-email", cfg.Account.VerifyEmail)
	router.POST("/signup", cfg.Account.Signup)
	router.GET("/check-identifier", cfg.Account.CheckIdentifier)
	router.GET("/find-id", cfg.Account.FindID)
	router.POST("/find-password", cfg.Account.FindPassword)

	// 챌린지 목록
	router.GET("/challenges", cfg.Challenge.List)
	router.GET("/challenges/search", cfg.Challenge.Search)

	authed := router.Group("/")
	authed.Use(AuthMiddleware(cfg.TokenParser))
	{
		authed.GET("/main", cfg.Challenge.Main)
		authed.POST("/challenge/new/:name", cfg.Challenge.Start)

		authed.GET("/write", cfg.Write.Today)
		authed.GET("/write/select/:challengeName", cfg.Write.Select)
		authed.POST("/write/temp", cfg.Write.Temporary)
		authed.POST("/write/complete", cfg.Write.Complete)
		authed.PATCH("/write/planner", cfg.Write.Planner)
	}

	return router
}
