package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/syncup/api/internal/adapters/repository/postgres"
	"github.com/syncup/api/internal/core/ports"
	"github.com/syncup/api/internal/core/services"
)

// Seeds a development database with a few users and polls so the API has
// something to serve. Safe to rerun: seeding is skipped when polls exist.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	var dbHost, dbPort, dbUser, dbPass, dbName string

	flag.StringVar(&dbHost, "db-host", os.Getenv("POSTGRES_HOST"), "Database host")
	flag.StringVar(&dbPort, "db-port", os.Getenv("POSTGRES_PORT"), "Database port")
	flag.StringVar(&dbUser, "db-user", os.Getenv("POSTGRES_USER"), "Database user")
	flag.StringVar(&dbPass, "db-pass", os.Getenv("POSTGRES_PASSWORD"), "Database password")
	flag.StringVar(&dbName, "db-name", os.Getenv("POSTGRES_DB"), "Database name")
	flag.Parse()

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", dbUser, dbPass, dbHost, dbPort, dbName)
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	var pollCount int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM polls").Scan(&pollCount); err != nil {
		log.Fatal(err)
	}
	if pollCount > 0 {
		log.Println("Database already seeded, nothing to do.")
		return
	}

	userRepo := postgres.NewUserRepository(db)
	pollRepo := postgres.NewPollRepository(db)
	resultRepo := postgres.NewPollResultRepository(db)

	authService := services.NewAuthService(userRepo)
	pollService := services.NewPollService(pollRepo, resultRepo)

	log.Println("Seeding users...")
	seedUsers := []ports.RegisterInput{
		{Name: "Alice Example", Email: "alice@example.com", Password: "alice-password", Timezone: "UTC"},
		{Name: "Bob Example", Email: "bob@example.com", Password: "bob-password", Timezone: "America/Sao_Paulo"},
	}

	owners := make(map[string]ports.CreatePollInput)
	for _, input := range seedUsers {
		user, err := authService.Register(ctx, input)
		if err != nil {
			log.Fatalf("Failed to seed user %s: %v", input.Email, err)
		}
		if len(owners) == 0 {
			owners["single"] = ports.CreatePollInput{
				Question: "What is your favorite color?",
				OwnerID:  user.ID,
				Options:  []string{"Red", "Green", "Blue"},
			}
		} else {
			owners["multi"] = ports.CreatePollInput{
				Question:        "Which weekdays work for the study session?",
				OwnerID:         user.ID,
				Options:         []string{"Monday", "Wednesday", "Friday"},
				AllowMultiVotes: true,
			}
		}
	}

	log.Println("Seeding polls...")
	for _, input := range owners {
		if _, err := pollService.Create(ctx, input); err != nil {
			log.Fatalf("Failed to seed poll %q: %v", input.Question, err)
		}
	}

	log.Println("Seeding completed successfully.")
}
