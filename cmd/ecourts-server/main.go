package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"ecourts-backend/lib/scrapers/ecourts"
	"ecourts-backend/lib/serviceutil"
	"ecourts-backend/services/casedata"
	"ecourts-backend/services/casedata/server"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/lmittmann/tint"
)

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      slog.LevelInfo,
		TimeFormat: time.Kitchen,
	})))

	port := flag.Int("port", 8080, "port to listen on")
	configPath := flag.String("config", "config.json5", "path to the configuration file")
	flag.Parse()
	if envPort := os.Getenv("PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", port)
	}

	cfg, err := casedata.LoadConfig(*configPath)
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		serviceutil.Fatal("failed to create output directory", err)
	}

	client, err := ecourts.NewClient(cfg.ClientOptions())
	if err != nil {
		serviceutil.Fatal("failed to initialize scraper client", err)
	}

	var queries *casedata.QueryLog
	if cfg.DatabasePath != "" {
		queries, err = casedata.OpenQueryLog(cfg.DatabasePath)
		if err != nil {
			serviceutil.Fatal("failed to open query log", err)
		}
		defer queries.Close()
	}

	svc := casedata.NewService(client, queries, cfg.Demo)

	app := fiber.New(fiber.Config{
		AppName: "ecourts-server",
	})
	app.Use(logger.New())
	server.RegisterRoutes(app, svc, server.Options{OutputDir: cfg.OutputDir})

	slog.Info("listening", "port", *port, "demo", cfg.Demo, "base_url", cfg.BaseUrl)
	if err := app.Listen(fmt.Sprintf(":%d", *port)); err != nil {
		serviceutil.Fatal("server stopped", err)
	}
}
