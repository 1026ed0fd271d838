package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/olwandejj/Quizzify/internal/app"
	"github.com/olwandejj/Quizzify/internal/auth"
	"github.com/olwandejj/Quizzify/internal/config"
	"github.com/olwandejj/Quizzify/internal/infra/memory"
	pgcatalog "github.com/olwandejj/Quizzify/internal/infra/postgres"
	redisinfra "github.com/olwandejj/Quizzify/internal/infra/redis"
	"github.com/olwandejj/Quizzify/internal/infra/sqlite"
	transport "github.com/olwandejj/Quizzify/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	// Content comes from the builtin catalog unless Postgres or SQLite is
	// configured. Gameplay state itself never touches a database.
	var loader memory.CatalogLoader = memory.NewStaticCatalogLoader(memory.BuiltinCategories())
	switch {
	case cfg.Postgres.URL != "":
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		loader = pgcatalog.NewCatalogLoader(pool)
	case cfg.SQLite.Path != "":
		catalogDB, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return err
		}
		defer catalogDB.Close()
		loader = catalogDB
	}

	catalogTTL := config.TTLDuration(cfg.Catalog.TTL, 10*time.Minute)
	var catalog app.CatalogRepository
	if redisClient != nil {
		catalog = redisinfra.NewCatalogRepository(redisClient, loader, catalogTTL)
	} else {
		catalog = memory.NewCatalogRepository(loader, catalogTTL)
	}

	var states app.StateRepository
	if redisClient != nil {
		states = redisinfra.NewStateStore(redisClient, redisTTL)
	} else {
		states = memory.NewStateStore()
	}

	var boards app.LeaderboardRepository
	if redisClient != nil {
		boards = redisinfra.NewLeaderboard(redisClient)
	} else {
		boards = memory.NewLeaderboard()
	}

	loadingDelay := config.TTLDuration(cfg.Loading.Delay, 1500*time.Millisecond)
	service := app.NewQuizService(states, catalog, boards, loadingDelay)

	secret := []byte(cfg.Auth.Secret)
	if len(secret) == 0 {
		// Tokens signed with a generated secret die with the process, which
		// matches client state living in memory anyway.
		secret = []byte(uuid.NewString())
		log.Printf("auth secret not configured, generated an ephemeral one")
	}
	authTTL := config.TTLDuration(cfg.Auth.TTL, 24*time.Hour)
	tokens := auth.NewManager(secret, authTTL)

	boardSize := cfg.Leaderboard.Size
	if boardSize <= 0 {
		boardSize = 10
	}

	wsHandler := transport.NewWSHandler(service, tokens)
	catalogHandler := transport.NewCatalogHandler(catalog, boards, boardSize)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)
	mux.HandleFunc("/categories", catalogHandler.Categories)
	mux.HandleFunc("/leaderboard", catalogHandler.Leaderboard)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quizzify gateway on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
