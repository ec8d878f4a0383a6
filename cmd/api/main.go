package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vidtube/backend/internal/config"
	"github.com/vidtube/backend/internal/database"
	"github.com/vidtube/backend/internal/logging"
	"github.com/vidtube/backend/internal/middleware"
	"github.com/vidtube/backend/internal/storage"
	"github.com/vidtube/backend/internal/tracing"
)

// API carries the handler dependencies. Handlers are methods on it and reach
// storage and persistence only through the store interfaces.
type API struct {
	cfg *config.Config
	log *logging.Logger

	users         UserStore
	videos        VideoStore
	comments      CommentStore
	tweets        TweetStore
	likes         LikeStore
	playlists     PlaylistStore
	subscriptions SubscriptionStore
	media         MediaStore
	health        HealthChecker
}

func NewAPI(cfg *config.Config, log *logging.Logger, repo *database.Repository, media MediaStore) *API {
	return &API{
		cfg:           cfg,
		log:           log,
		users:         repo,
		videos:        repo,
		comments:      repo,
		tweets:        repo,
		likes:         repo,
		playlists:     repo,
		subscriptions: repo,
		media:         media,
		health:        repo,
	}
}

func (api *API) healthCheck(c *gin.Context) {
	if err := api.health.Health(c.Request.Context()); err != nil {
		api.log.ErrorWithErr("health check failed", err)
		api.respond(c, http.StatusServiceUnavailable, nil, "unhealthy")
		return
	}
	api.respond(c, http.StatusOK, gin.H{"status": "ok"}, "healthy")
}

func (api *API) setupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(api.log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(api.cfg.Server.CORSOrigin))
	if api.cfg.Tracing.Enabled {
		router.Use(tracing.Middleware())
	}

	router.GET("/health", api.healthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")

	users := v1.Group("/users")
	{
		users.POST("/register", api.registerUser)
		users.POST("/login", api.loginUser)
		users.POST("/refresh-token", api.refreshAccessToken)
		users.GET("/channel/:username", middleware.OptionalAuth(api.users), api.getUserChannelProfile)

		secured := users.Group("", middleware.Auth(api.users))
		secured.POST("/logout", api.logoutUser)
		secured.POST("/change-current-password", api.changeCurrentPassword)
		secured.GET("/get-current-user", api.getCurrentUser)
		secured.POST("/update-account-detail", api.updateAccountDetails)
		secured.POST("/update-avatar-image", api.updateUserAvatar)
		secured.POST("/update-cover-image", api.updateUserCoverImage)
		secured.GET("/history", api.getWatchHistory)
		secured.POST("/subscribe/:channelId", api.subscribeToChannel)
		secured.POST("/unsubscribe/:channelId", api.unsubscribeFromChannel)
	}

	videos := v1.Group("/videos")
	{
		videos.GET("/get-videos", api.getVideos)
		videos.GET("/get-videos-id/:videoId", middleware.OptionalAuth(api.users), api.getVideoByID)

		secured := videos.Group("", middleware.Auth(api.users))
		secured.POST("/upload", api.uploadVideo)
		secured.PATCH("/update/:videoId", api.updateVideo)
		secured.DELETE("/delete/:videoId", api.deleteVideo)
		secured.PATCH("/toggle-publish/:videoId", api.togglePublishStatus)
	}

	comments := v1.Group("/comments")
	{
		comments.GET("/get-comments", middleware.OptionalAuth(api.users), api.getComments)

		secured := comments.Group("", middleware.Auth(api.users))
		secured.POST("/new-comment", api.newComment)
		secured.PATCH("/edit-comment", api.editComment)
		secured.DELETE("/delete-comment", api.deleteComment)
	}

	tweets := v1.Group("/tweets", middleware.Auth(api.users))
	{
		tweets.POST("/new-tweet", api.newTweet)
		tweets.GET("/get-tweet", api.getTweets)
		tweets.PATCH("/edit-tweet", api.editTweet)
		tweets.DELETE("/delete-tweet", api.deleteTweet)
	}

	likes := v1.Group("/likes", middleware.Auth(api.users))
	{
		likes.POST("/new-like", api.newLike)
		likes.DELETE("/unlike", api.unlike)
		likes.GET("/get-likes", api.getLikes)
	}

	playlists := v1.Group("/playlists")
	{
		playlists.GET("/get-playlist", api.getPlaylists)

		secured := playlists.Group("", middleware.Auth(api.users))
		secured.POST("/create-playlist", api.createPlaylist)
		secured.PATCH("/add-song", api.addPlaylistVideo)
		secured.DELETE("/remove-song", api.removePlaylistVideo)
	}

	return router
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	middleware.SetSecrets(cfg.Auth.AccessTokenSecret, cfg.Auth.RefreshTokenSecret)

	if cfg.Tracing.Enabled {
		_, closer, err := tracing.InitTracer(cfg.Tracing.Service, cfg.Tracing.Endpoint)
		if err != nil {
			log.Fatalf("Failed to initialize tracer: %v", err)
		}
		defer closer.Close()
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := storage.New(cfg.Storage, log)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	repo := database.NewRepository(db)
	api := NewAPI(cfg, log, repo, store)
	router := api.setupRouter()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Info("Server exited")
}
