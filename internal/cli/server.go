package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/KokserM/kazoot-quiz/internal/app"
	"github.com/KokserM/kazoot-quiz/internal/config"
	"github.com/KokserM/kazoot-quiz/internal/infra/memory"
	infraopenai "github.com/KokserM/kazoot-quiz/internal/infra/openai"
	infrapg "github.com/KokserM/kazoot-quiz/internal/infra/postgres"
	infraredis "github.com/KokserM/kazoot-quiz/internal/infra/redis"
	"github.com/KokserM/kazoot-quiz/internal/quiz"
	transport "github.com/KokserM/kazoot-quiz/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	setupLogging(cfg)

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

	var redisClient *goredis.Client
	if cfg.Redis.Addr != "" {
		redisClient = goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	demoBank := memory.NewQuestionBank(memory.DemoQuizzes())
	var bank quiz.Loader = demoBank
	if pool != nil {
		bank = infrapg.NewQuestionBank(pool)
	}

	apiKey := cfg.OpenAI.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	generator := infraopenai.NewGenerator(infraopenai.Config{
		APIKey:  apiKey,
		Model:   cfg.OpenAI.Model,
		BaseURL: cfg.OpenAI.BaseURL,
	}, bank)

	cacheTTL := config.TTLDuration(cfg.Quiz.CacheTTL, 10*time.Minute)
	var supplier quiz.Supplier
	if redisClient != nil {
		supplier = infraredis.NewQuizCache(redisClient, generator, cacheTTL)
	} else {
		supplier = memory.NewQuizCache(generator, cacheTTL)
	}

	var codes app.CodeStore
	if redisClient != nil {
		codeTTL := config.TTLDuration(cfg.Redis.TTL, time.Hour)
		codes = infraredis.NewCodeStore(redisClient, codeTTL)
	}

	hub := transport.NewHub()
	timeLimit := config.TTLDuration(cfg.Quiz.TimeLimit, app.DefaultQuestionTimeLimit)
	service := app.NewGameService(hub, codes, clockwork.NewRealClock(), timeLimit)

	wsHandler := transport.NewWSHandler(hub, service)
	apiHandler := transport.NewAPIHandler(supplier, service, demoBank.Topics(), generator.Enabled())

	router := mux.NewRouter()
	apiHandler.Routes(router)
	router.HandleFunc("/ws", wsHandler.ServeWS)

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowCredentials: false,
	}).Handler(router)

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No WriteTimeout: websocket connections outlive any sane value.
	}

	go func() {
		log.Info().Str("port", finalPort).Bool("openai", generator.Enabled()).Msg("starting trivia service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Info().Msg("shutting down server...")
	case <-ctx.Done():
		log.Info().Msg("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func setupLogging(cfg config.Config) {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || cfg.Log.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	if cfg.Log.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}
