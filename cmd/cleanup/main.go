// One-shot retention run, for deployments that prefer an external scheduler
// over the in-process cron.
package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/internhub/desk-reservation/internal/cleanup"
	"github.com/internhub/desk-reservation/internal/config"
	"github.com/internhub/desk-reservation/internal/database"
	"github.com/internhub/desk-reservation/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	job := cleanup.Job{
		Reservations: repository.NewReservationRepo(db),
		Months:       cfg.RetentionMonths,
	}
	n, err := job.Run(context.Background())
	if err != nil {
		log.Fatalf("retention purge failed: %v", err)
	}
	log.Printf("done: %d reservations removed", n)
}
