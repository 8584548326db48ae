package cli

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"quiz-engine/internal/app"
	"quiz-engine/internal/config"
	"quiz-engine/internal/dispatch"
	"quiz-engine/internal/id"
	"quiz-engine/internal/infra/memory"
	redisrepo "quiz-engine/internal/infra/redis"
	"quiz-engine/internal/question"
	transport "quiz-engine/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the game.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game: dispatch questions to players and serve the leaderboard",
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
		defer redisClient.Close()
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	loader, err := bankLoader(cfg, pool)
	if err != nil {
		return err
	}

	ids := id.New()
	env := question.Env{
		IDs:   ids,
		Rand:  question.NewRand(cfg.Game.Seed),
		Banks: bankSource(cfg, loader, redisClient),
	}

	var roster app.Roster
	if redisClient != nil {
		roster = redisrepo.NewRoster(redisClient)
	} else {
		roster = memory.NewRoster()
	}

	var warmup question.Factory
	if cfg.Game.Warmup {
		warmup = question.NewWarmupFactory(env)
	}
	dispatcher := dispatch.New(dispatch.WithTimeout(config.TTLDuration(cfg.Game.DispatchTimeout, 10*time.Second)))
	service := app.NewGameService(roster, dispatcher, ids, warmup, question.NewRoundFactory(env, nil))

	for _, p := range cfg.Players {
		player, err := service.Register(ctx, p.Name, p.URL)
		if err != nil {
			return err
		}
		log.Printf("registered player %s as %s", player, player.ID)
	}

	wsHandler := transport.NewWSHandler(service)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	wsHandler.Register(mux)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz engine on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	gameCtx, stopGame := context.WithCancel(ctx)
	defer stopGame()
	scheduler := app.NewScheduler(service, app.SchedulerConfig{
		WarmupDuration: config.TTLDuration(cfg.Game.WarmupDuration, 0),
		RoundInterval:  config.TTLDuration(cfg.Game.RoundInterval, 0),
	}, log.Default())
	gameErr := make(chan error, 1)
	go func() { gameErr <- scheduler.Run(gameCtx) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	case runErr = <-gameErr:
		if runErr != nil {
			log.Printf("game stopped: %v", runErr)
		}
	}
	stopGame()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Join(runErr, server.Shutdown(shutdownCtx))
}
