package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jakescarcare/valet-api/internal/cache"
	"github.com/jakescarcare/valet-api/internal/config"
	dbpkg "github.com/jakescarcare/valet-api/internal/db"
	infraRepo "github.com/jakescarcare/valet-api/internal/infra/repository"
	"github.com/jakescarcare/valet-api/internal/middleware"
	"github.com/jakescarcare/valet-api/internal/notify"
	"github.com/jakescarcare/valet-api/internal/reminder"
	"github.com/jakescarcare/valet-api/internal/routes"
	"github.com/jakescarcare/valet-api/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	dayCache := cache.New(cfg.RedisAddr)
	if dayCache == nil {
		log.Println("REDIS_ADDR not set, availability caching disabled")
	}

	store, err := storage.NewS3Store(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to init object store: %v", err)
	}

	mailer := notify.NewSMTPMailer(cfg)
	notifyDispatcher := notify.NewDispatcher(mailer)

	bookingRepo := infraRepo.NewBookingGormRepository(db)
	sched, err := reminder.New(bookingRepo, mailer)
	if err != nil {
		log.Fatalf("failed to init reminder scheduler: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, store, dayCache, notifyDispatcher)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
