package api

import (
	"net/http"
	"youclone/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

// Services bundles the service layer the HTTP API is built on.
type Services struct {
	Auth     service.AuthService
	Users    service.UserService
	Channels service.ChannelService
	Videos   service.VideoService
	Comments service.CommentService
	Uploads  service.UploadService
}

// NewRouter creates a gin engine with recovery, request ids, request logging,
// metrics and CORS installed.
func NewRouter(log logrus.FieldLogger, corsOrigin string) *gin.Engine {
	RegisterValidators()

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(log),
		RequestLogger(),
		Metrics(),
		CORS(corsOrigin),
	)
	return router
}

// SetupRoutes registers every endpoint. limiter may be nil.
func SetupRoutes(router *gin.Engine, services Services, limiter *RateLimiter) {
	authHandler := NewAuthHandler(services.Auth)
	userHandler := NewUserHandler(services.Users)
	channelHandler := NewChannelHandler(services.Channels)
	videoHandler := NewVideoHandler(services.Videos)
	commentHandler := NewCommentHandler(services.Comments)
	uploadHandler := NewUploadHandler(services.Uploads)

	authMiddleware := AuthMiddleware(services.Auth)
	writeLimit := limiter.Middleware("write")

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiGroup := router.Group("/api")

	// --- Public Routes ---
	authGroup := apiGroup.Group("/auth")
	authGroup.Use(limiter.Middleware("auth"))
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
	}

	apiGroup.GET("/channels", channelHandler.ListChannels)
	apiGroup.GET("/channels/:id", channelHandler.GetChannel)
	apiGroup.GET("/videos", videoHandler.ListVideos)
	apiGroup.GET("/videos/:id", videoHandler.GetVideo)
	apiGroup.POST("/videos/:id/view", videoHandler.IncrementView)
	apiGroup.GET("/comments/:id", commentHandler.ListComments) // :id is the video id

	// --- Authenticated Routes ---
	protected := apiGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.Me)
		protected.GET("/users/:id", userHandler.GetUser)

		protected.POST("/channels", writeLimit, channelHandler.CreateChannel)

		protected.POST("/videos", writeLimit, videoHandler.CreateVideo)
		protected.PUT("/videos/:id", writeLimit, videoHandler.UpdateVideo)
		protected.DELETE("/videos/:id", writeLimit, videoHandler.DeleteVideo)
		protected.POST("/videos/:id/like", writeLimit, videoHandler.LikeVideo)
		protected.POST("/videos/:id/dislike", writeLimit, videoHandler.DislikeVideo)

		protected.POST("/comments/:id", writeLimit, commentHandler.CreateComment) // :id is the video id
		protected.PUT("/comments/:id", writeLimit, commentHandler.UpdateComment)
		protected.DELETE("/comments/:id", writeLimit, commentHandler.DeleteComment)

		protected.POST("/uploads/presign", writeLimit, uploadHandler.PresignUpload)
	}
}
