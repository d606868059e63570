package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/medsched/outpatient-api/internal/cache"
	"github.com/medsched/outpatient-api/internal/config"
	dbpkg "github.com/medsched/outpatient-api/internal/db"
	"github.com/medsched/outpatient-api/internal/middleware"
	"github.com/medsched/outpatient-api/internal/routes"
)

func main() {

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	db := dbpkg.NewDB(cfg)

	var masterCache *cache.MasterData
	if rdb, err := cache.NewRedisClient(cfg.RedisAddr); err != nil {
		// The cache is an optimization; the API stays up without it.
		log.Warn().Err(err).Msg("redis unavailable, master data served from the store")
	} else {
		masterCache = cache.NewMasterData(rdb)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log.Logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, masterCache, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
