package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"quizbabu-service/internal/config"
	"quizbabu-service/internal/infra/postgres"
	"quizbabu-service/internal/infra/trivia"
	"quizbabu-service/internal/logger"
)

// NewImportCmd copies questions from Open Trivia DB into the question bank.
func NewImportCmd(configPath *string) *cobra.Command {
	var batches int
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trivia questions into the Postgres question bank",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.Log.Env)
			if err != nil {
				return err
			}
			defer log.Sync()
			return runImport(cmd.Context(), cfg, log, batches)
		},
	}
	cmd.Flags().IntVar(&batches, "batches", 1, "number of question batches to import")
	return cmd
}

func runImport(ctx context.Context, cfg config.Config, log *zap.Logger, batches int) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	bank := postgres.NewQuestionBank(pool)
	client := trivia.NewClient(cfg.Trivia.URL, config.Duration(cfg.Trivia.Timeout, 10*time.Second), log)

	imported := 0
	for i := 0; i < batches; i++ {
		if i > 0 {
			// Open Trivia DB allows one request per IP every five seconds.
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(5 * time.Second):
			}
		}
		questions, err := client.FetchQuestions(ctx, cfg.QuestionAmount())
		if err != nil {
			return fmt.Errorf("fetch batch %d: %w", i+1, err)
		}
		for _, q := range questions {
			if err := bank.InsertQuestion(ctx, q); err != nil {
				return err
			}
			imported++
		}
	}
	log.Info("questions imported", zap.Int("count", imported))
	return nil
}
