package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dogfood/internal/agent"
	"dogfood/internal/config"
	"dogfood/internal/metrics"
)

type App struct {
	cfg   config.Config
	store FoodLogStore
	agent agent.Suggester
	log   *slog.Logger
	now   func() time.Time
}

func New(cfg config.Config, store FoodLogStore, suggester agent.Suggester, log *slog.Logger) *App {
	if log == nil {
		log = slog.Default()
	}
	metrics.Init()
	return &App{
		cfg:   cfg,
		store: store,
		agent: suggester,
		log:   log.With(slog.String("component", "server")),
		now:   time.Now,
	}
}

func (a *App) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", a.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group(a.cfg.APIPrefix)
	api.GET("/food-logs", a.listFoodLogs)
	api.POST("/food-logs", a.createFoodLog)
	api.GET("/food-logs/summary", a.getFeedingSummary)
	api.GET("/food-logs/suggestion", a.getSuggestion)
	api.GET("/food-logs/export.csv", a.exportFoodLogsCSV)

	return router
}

func (a *App) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "dogfood-api",
	})
}

func (a *App) currentTime() time.Time {
	return a.now().UTC()
}

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func writeValidationError(c *gin.Context, fieldErrors map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"detail": "Invalid food log",
		"errors": fieldErrors,
	})
}
