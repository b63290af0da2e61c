package main // Entry point package

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/internhub/desk-reservation/internal/cleanup"
	"github.com/internhub/desk-reservation/internal/config"
	"github.com/internhub/desk-reservation/internal/database"
	"github.com/internhub/desk-reservation/internal/handler"
	"github.com/internhub/desk-reservation/internal/middleware"
	"github.com/internhub/desk-reservation/internal/queue"
	"github.com/internhub/desk-reservation/internal/repository"
	"github.com/internhub/desk-reservation/internal/router"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	if err := database.Migrate(db, cfg.DBName); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	seats := repository.NewSeatRepo(db)
	reservations := repository.NewReservationRepo(db)
	reports := repository.NewReportRepo(db)

	ensureAdmin(cfg, users)

	// Background consumer mirrors booked reservations into logs/reservations.log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	retention := cleanup.Schedule(cfg.RetentionCron, cleanup.Job{
		Reservations: reservations,
		Months:       cfg.RetentionMonths,
	})
	defer retention.Stop()

	rdb := config.NewRedisClient()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	cacheMW := []echo.MiddlewareFunc{}
	if cacheCfg := config.LoadCacheConfig(); cacheCfg.Enabled && rdb != nil {
		cacheMW = append(cacheMW, middleware.NewRedisCache(cacheCfg, rdb))
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users), cfg.JWTSecret)
	router.RegisterSeats(e, handler.NewSeatHandler(seats), cfg.JWTSecret, cacheMW...)
	router.RegisterReservations(e, handler.NewReservationHandler(seats, reservations), cfg.JWTSecret)
	router.RegisterAdmin(e, handler.NewAdminHandler(users, seats, reservations, reports), cfg.JWTSecret, cacheMW...)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

// ensureAdmin creates the bootstrap admin account on first start.  Skipped
// entirely when ADMIN_EMAIL is unset, so deployments that provision admins
// out of band lose nothing.
func ensureAdmin(cfg config.Config, users *repository.UserRepo) {
	if cfg.AdminEmail == "" {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return // already provisioned
	}
	if !errors.Is(err, sql.ErrNoRows) {
		log.Printf("admin bootstrap check failed: %v", err)
		return
	}
	if _, err := users.Create(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, "admin", cfg.BcryptCost); err != nil {
		log.Printf("admin bootstrap failed: %v", err)
		return
	}
	log.Printf("Admin user created: %s", cfg.AdminEmail)
}
