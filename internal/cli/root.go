package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker-cli/internal/config"
	"github.com/BuzzLyutic/task-tracker-cli/internal/repo"
	"github.com/BuzzLyutic/task-tracker-cli/internal/service"
	"github.com/BuzzLyutic/task-tracker-cli/pkg/render"
)

// Коды выхода по видам ошибок; успех - 0
const (
	exitInternal   = 1
	exitValidation = 2
	exitNotFound   = 3
	exitStorage    = 4
)

// App держит зависимости команд: сервис собирается один раз
// в PersistentPreRunE и живет до конца вызова
type App struct {
	flagFile    string
	flagJSON    bool
	flagVerbose bool

	logger  *zap.Logger
	service *service.TaskService
	cleanup func()
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	root := &cobra.Command{
		Use:           "tasks",
		Short:         "Single-user task tracker backed by a local JSON file",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.close()
		},
	}

	root.PersistentFlags().StringVar(&app.flagFile, "file", "", "path to the tasks file (overrides config)")
	root.PersistentFlags().BoolVar(&app.flagVerbose, "verbose", false, "enable debug logging")

	root.AddCommand(
		app.addCmd(),
		app.updateCmd(),
		app.deleteCmd(),
		app.markCmd("mark-in-progress", "in-progress"),
		app.markCmd("mark-done", "done"),
		app.listCmd(),
	)
	return root
}

// Execute запускает CLI и превращает ошибку в код выхода
func Execute(ctx context.Context) int {
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		render.Error(os.Stderr, err.Error())
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return exitValidation
	case errors.Is(err, repo.ErrorNotFound):
		return exitNotFound
	case errors.Is(err, repo.ErrorStorage):
		return exitStorage
	default:
		return exitInternal
	}
}

func (a *App) init(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if a.flagFile != "" {
		cfg.StorageFile = a.flagFile
	}

	a.logger = zap.NewNop()
	if cfg.Debug || a.flagVerbose {
		a.logger, _ = zap.NewDevelopment()
	}

	var taskRepo repo.TaskRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("%w: connect: %v", repo.ErrorStorage, err)
		}
		if err := pool.Ping(ctx); err != nil { // Пытаемся пингануть БД
			pool.Close()
			return fmt.Errorf("%w: ping: %v", repo.ErrorStorage, err)
		}
		a.logger.Info("using postgres storage")
		a.cleanup = pool.Close
		taskRepo = repo.NewTaskRepo(pool)
	} else {
		a.logger.Info("using file storage", zap.String("file", cfg.StorageFile))
		fileRepo, err := repo.NewFileRepo(cfg.StorageFile)
		if err != nil {
			return err
		}
		taskRepo = fileRepo
	}

	a.service = service.NewTaskService(taskRepo)
	return nil
}

func (a *App) close() {
	if a.cleanup != nil {
		a.cleanup()
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}
