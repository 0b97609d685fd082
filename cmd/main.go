package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"modbot/backend/internal/api/handler"
	"modbot/backend/internal/config"
	"modbot/backend/internal/discord"
	"modbot/backend/internal/feed"
	"modbot/backend/internal/signals"
)

const claimCacheSize = 1024

func main() {
	log.Println("Starting ModBot backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Signal clients
	claims, err := signals.NewCachedClaimChecker(signals.NewClaimBusterClient(cfg.ClaimBusterKey), claimCacheSize)
	if err != nil {
		log.Fatalf("Failed to build claim cache: %v", err)
	}
	clients := discord.Clients{
		Claims:   claims,
		Toxicity: signals.NewPerspectiveClient(cfg.PerspectiveKey),
	}
	if cfg.SummaryKey != "" {
		clients.Summarizer = signals.NewSummaryClient(cfg.SummaryKey)
	}

	// Event feed
	hub := feed.NewHub(logger)
	go hub.Run()

	// Discord bot
	botService, err := discord.NewBotService(cfg.DiscordToken, cfg.GroupName, clients, hub, logger)
	if err != nil {
		log.Fatalf("Failed to create bot service: %v", err)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := botService.Start(ctx); err != nil {
		log.Fatalf("Failed to start bot service: %v", err)
	}
	defer botService.Stop()

	// Admin API
	r := gin.Default()
	h := handler.NewHandler(botService.Queue, botService.Reports, hub, cfg.AdminKey, cfg.JWTSecret)
	h.Guilds = botService.GuildCount

	r.GET("/token", h.GetToken)
	r.GET("/status", h.GetStatus)
	r.GET("/ledger", h.GetLedger)
	r.GET("/queue/:guild", h.GetQueue)
	r.POST("/ledger/:author/rearm", h.RequireAuth, h.RearmAuthor)
	r.GET("/ws", h.RequireAuth, h.ServeFeed)

	server := &http.Server{
		Addr:           cfg.APIAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %v", err)
		}
	}()
	log.Printf("Admin API listening on %s", cfg.APIAddr)

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("API shutdown error: %v", err)
	}
}
