package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"quizbabu-service/internal/app"
	"quizbabu-service/internal/carryover"
	"quizbabu-service/internal/config"
	"quizbabu-service/internal/domain"
	"quizbabu-service/internal/infra/memory"
	"quizbabu-service/internal/infra/postgres"
	rediscarry "quizbabu-service/internal/infra/redis"
	"quizbabu-service/internal/infra/trivia"
	"quizbabu-service/internal/logger"
	transport "quizbabu-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
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

	log, err := logger.New(cfg.Log.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var store carryover.Store = memory.NewCarryOverStore()
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		store = rediscarry.NewCarryOverStore(redisClient, config.Duration(cfg.Redis.TTL, time.Hour))
	}

	var source app.QuestionSource
	switch {
	case cfg.Trivia.Offline:
		source = memory.NewStaticQuestionSource(sampleQuestions())
	case cfg.Postgres.URL != "":
		if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
			return err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		source = postgres.NewQuestionBank(pool)
	default:
		source = trivia.NewClient(cfg.Trivia.URL, config.Duration(cfg.Trivia.Timeout, 10*time.Second), log)
	}

	service := app.NewQuizService(source, store,
		app.WithLogger(log),
		app.WithQuestionAmount(cfg.QuestionAmount()),
		app.WithDuration(config.Duration(cfg.Quiz.Duration, 30*time.Minute)),
		app.WithFetchTimeout(config.Duration(cfg.Trivia.Timeout, 10*time.Second)),
	)

	server := &http.Server{
		Addr: ":" + finalPort,
		Handler: transport.NewRouter(service, log, transport.RouterConfig{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			SecureCookies:  cfg.Log.Env == "production",
		}),
		ReadTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting quiz service", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// sampleQuestions backs offline mode; production fetches from Open Trivia DB or the question bank.
func sampleQuestions() []domain.Question {
	return []domain.Question{
		{
			Type:             domain.TypeMultiple,
			Difficulty:       domain.DifficultyEasy,
			Category:         "Geography",
			Question:         "What is the capital of France?",
			CorrectAnswer:    "Paris",
			IncorrectAnswers: []string{"London", "Berlin", "Madrid"},
		},
		{
			Type:             domain.TypeBoolean,
			Difficulty:       domain.DifficultyMedium,
			Category:         "Science &amp; Nature",
			Question:         "The chemical symbol for gold is &quot;Au&quot;.",
			CorrectAnswer:    "True",
			IncorrectAnswers: []string{"False"},
		},
		{
			Type:             domain.TypeMultiple,
			Difficulty:       domain.DifficultyHard,
			Category:         "Entertainment: Books",
			Question:         "In &quot;The Hitchhiker&#039;s Guide to the Galaxy&quot;, what is the answer to everything?",
			CorrectAnswer:    "42",
			IncorrectAnswers: []string{"7", "13", "101"},
		},
	}
}
