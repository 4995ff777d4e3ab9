package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"roomrates/internal/infra/config"
	"roomrates/internal/infra/obs"
)

type RoomHTTP interface {
	Availability(c *gin.Context)
	Calendar(c *gin.Context)
}

type MaintenanceHTTP interface {
	ListBlocks(c *gin.Context)
	AddBlock(c *gin.Context)
	RemoveBlock(c *gin.Context)
	ListRates(c *gin.Context)
	AddRate(c *gin.Context)
	RemoveRate(c *gin.Context)
}

type PropertyHTTP interface {
	Catalog(c *gin.Context)
	Availability(c *gin.Context)
}

type Handlers struct {
	Room        RoomHTTP
	Maintenance MaintenanceHTTP
	Property    PropertyHTTP
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}
	return &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           NewRouter(cfg.CORSOrigins, obsMW, health, h),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func NewRouter(origins []string, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *gin.Engine {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.AccessLog())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", obs.RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", "Content-Type", obs.RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Room != nil {
		api.GET("/rooms/:id/availability", h.Room.Availability)
		api.GET("/rooms/:id/calendar", h.Room.Calendar)
	}
	if h.Maintenance != nil {
		api.GET("/rooms/:id/non-availability", h.Maintenance.ListBlocks)
		api.POST("/rooms/:id/non-availability", h.Maintenance.AddBlock)
		api.DELETE("/rooms/:id/non-availability/:blockId", h.Maintenance.RemoveBlock)
		api.GET("/rooms/:id/seasonal-rates", h.Maintenance.ListRates)
		api.POST("/rooms/:id/seasonal-rates", h.Maintenance.AddRate)
		api.DELETE("/rooms/:id/seasonal-rates/:rateId", h.Maintenance.RemoveRate)
	}
	if h.Property != nil {
		api.GET("/properties", h.Property.Catalog)
		api.GET("/properties/:id/availability", h.Property.Availability)
	}
	return router
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug", "dev", "local":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
