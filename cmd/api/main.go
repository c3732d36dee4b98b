package main

import (
	"flag"
	"log"
	"os"
	"time"

	"battery-benchmark/internal/api/handlers"
	"battery-benchmark/internal/api/middleware"
	"battery-benchmark/internal/config"
	"battery-benchmark/internal/data"
	"battery-benchmark/internal/model"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "", "Optional YAML config enabling the market-data source")
	flag.Parse()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}

	var loaders handlers.PriceLoaders
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			log.Fatalf("loading config: %v", err)
		}
		loaders, err = buildLoaders(cfg)
		if err != nil {
			log.Fatalf("configuring data source: %v", err)
		}
		log.Printf("[API] Market-data source enabled for %d markets", len(loaders))
	} else {
		log.Printf("[API] No config given; only inline price schedules are accepted")
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	batteryHandler := handlers.NewBatteryHandler()
	benchmarkHandler := handlers.NewBenchmarkHandler(loaders, batteryHandler.BatteryDir())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/benchmark", benchmarkHandler.RunBenchmark)
		api.GET("/markets", handlers.ListMarkets)
		api.GET("/batteries", batteryHandler.ListBatteries)
	}

	log.Printf("[API] Listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// buildLoaders wires one hot loader per configured market: shared HTTP
// client, shared sqlite cache, per-market source.
func buildLoaders(cfg *config.Config) (handlers.PriceLoaders, error) {
	client := data.NewClient(cfg.Data.APIKey(), cfg.Data.BaseURL)

	cachePath := cfg.Data.CachePath
	if cachePath == "" {
		cachePath = "market_data.db"
	}
	cache, err := data.OpenPriceCache(cachePath)
	if err != nil {
		return nil, err
	}

	loc := time.UTC
	if cfg.Data.Timezone != "" {
		loc, err = time.LoadLocation(cfg.Data.Timezone)
		if err != nil {
			return nil, err
		}
	}

	loaders := handlers.PriceLoaders{}
	for _, name := range cfg.Markets {
		var source data.MarketPriceSource
		switch name {
		case model.MarketDayahead.Name:
			source = &data.DayaheadSource{Client: client, Area: cfg.Data.Area, Loc: loc}
		case model.MarketImbalance.Name:
			source = &data.ImbalanceSource{Client: client, Area: cfg.Data.Area, Loc: loc}
		default:
			continue
		}
		loaders[name] = &data.HotLoader{
			Cache:         cache,
			Source:        source,
			Area:          cfg.Data.Area,
			AllowColdLoad: cfg.Data.AllowColdLoad,
		}
	}
	return loaders, nil
}
