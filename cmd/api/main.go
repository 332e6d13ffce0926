package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tanzim5/News/internal/config"
	"github.com/tanzim5/News/internal/handler"
	"github.com/tanzim5/News/internal/logging"
	"github.com/tanzim5/News/pkg/bulletin"
	"github.com/tanzim5/News/pkg/llm"
)

func main() {

	godotenv.Load()

	v := config.New()
	cfg, err := config.Load(v)
	if err != nil {
		log.Fatalf("error loading configuration: %v", err)
	}

	logger := logging.NewJSON(os.Stdout, cfg.LogLevel)
	slog.SetDefault(logger)

	opts := []bulletin.Option{bulletin.WithLogger(logger)}
	if cfg.Neutralizer != "" {
		rewriter, err := llm.New(cfg.Neutralizer, cfg.NeutralizerKey())
		if err != nil {
			log.Fatalf("error creating neutralizer: %v", err)
		}
		slog.Info("headline neutralizer enabled", "model", rewriter.Model())
		opts = append(opts, bulletin.WithNeutralizer(rewriter))
	}

	bulletinHandler := handler.NewBulletinHandler(cfg.Window, cfg.TTS, cfg.OutputDir, opts...)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/", bulletinHandler.GetIndex)
	r.GET("/index.html", bulletinHandler.GetIndex)
	r.GET("/styles.css", bulletinHandler.GetStyles)
	r.GET("/app.js", bulletinHandler.GetScript)
	r.POST("/api/generate", bulletinHandler.Generate)
	r.GET("/audio/:name", bulletinHandler.GetAudio)
	r.GET("/health", bulletinHandler.GetHealth)

	err = r.Run(":" + cfg.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
