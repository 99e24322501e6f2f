package repo

import (
	"context"
	"errors"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorStorage  = errors.New("storage error")
)

// TaskRepository определяет интерфейс для работы с задачами.
// Файловая и постгресовая реализации взаимозаменяемы.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id int64) error
}
