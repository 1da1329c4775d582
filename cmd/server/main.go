package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"relief-airlift-service/internal/adapters/cache"
	"relief-airlift-service/internal/adapters/repositories"
	"relief-airlift-service/internal/adapters/solver"
	"relief-airlift-service/internal/api"
	"relief-airlift-service/internal/config"
	"relief-airlift-service/internal/platform/db"
	"relief-airlift-service/internal/ports"

	"github.com/joho/godotenv"
	redis "github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQL store, simplex solver, redis cache) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	driver := config.Get("DB_DRIVER", "sqlite")
	dsn := config.Get("DB_PATH", "data/app.db")
	if driver == "pgx" {
		dsn = os.Getenv("DATABASE_URL")
		if strings.TrimSpace(dsn) == "" {
			log.Fatal("DATABASE_URL is required when DB_DRIVER=pgx")
		}
	}

	scenarioPath := config.Get("SCENARIO_PATH", "data/scenarios/scenarios.yaml")
	defaultScenario := config.Get("DEFAULT_SCENARIO", "sample")
	port := config.Get("PORT", "8080")

	conn, err := db.Open(driver, dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	// Initialize schema and seed the bundled scenarios on startup for local runs.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}
	if err := repositories.SeedFromYAML(conn, scenarioPath); err != nil {
		log.Fatal(err)
	}

	repo := repositories.NewSQLScenarioRepository(conn)
	simplex := solver.NewSimplexSolver()

	// The plan cache is optional: without REDIS_URL every request solves fresh.
	var planCache ports.PlanCache
	if redisURL := os.Getenv("REDIS_URL"); strings.TrimSpace(redisURL) != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			log.Fatal(err)
		}
		planCache = cache.NewRedisPlanCache(redis.NewClient(opt), 15*time.Minute)
	}

	router := api.NewRouter(repo, simplex, planCache, defaultScenario)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}
