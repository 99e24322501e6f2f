package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
	"github.com/BuzzLyutic/task-tracker-cli/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
)

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Add(ctx context.Context, description string) (model.Task, error) {
	if err := s.validateDescription(description); err != nil {
		return model.Task{}, err
	}
	// Статус новой задачи всегда todo, id выдает репозиторий
	return s.repo.Create(ctx, model.Task{
		Description: description,
		Status:      model.StatusTodo,
	})
}

func (s *TaskService) Get(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.Get(ctx, id)
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	return s.repo.List(ctx, filter)
}

func (s *TaskService) Update(ctx context.Context, id int64, description string) (model.Task, error) {
	if err := s.validateDescription(description); err != nil {
		return model.Task{}, err
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	t.Description = description
	return s.repo.Update(ctx, t)
}

func (s *TaskService) Mark(ctx context.Context, id int64, status string) (model.Task, error) {
	st, ok := model.ParseStatus(status)
	if !ok { // Проверяем статус до чтения - задача остается нетронутой
		return model.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Task{}, err
	}

	t.Status = st
	return s.repo.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

func (s *TaskService) validateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: description is empty", ErrValidation)
	}
	return nil
}
