package repo

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatal(err)
	}

	// Очистка
	pool.Exec(context.Background(), "TRUNCATE tasks")

	return pool
}

func TestTaskRepo_Create(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTaskRepo(pool)

	created, err := repo.Create(context.Background(), model.Task{Description: "Test"})
	if err != nil {
		t.Fatal(err)
	}

	if created.ID == 0 {
		t.Error("expected non-zero ID")
	}
	if created.Status != model.StatusTodo {
		t.Errorf("expected status=todo, got %s", created.Status)
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestTaskRepo_UpdateAndGet(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTaskRepo(pool)
	ctx := context.Background()

	created, err := repo.Create(ctx, model.Task{Description: "Test"})
	if err != nil {
		t.Fatal(err)
	}

	created.Status = model.StatusInProgress
	updated, err := repo.Update(ctx, created)
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != model.StatusInProgress {
		t.Errorf("expected status=in-progress, got %s", updated.Status)
	}
	if updated.UpdatedAt.Before(created.UpdatedAt) {
		t.Error("expected updated_at to move forward")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != model.StatusInProgress {
		t.Errorf("expected status=in-progress, got %s", got.Status)
	}
}

func TestTaskRepo_ListFilter(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTaskRepo(pool)
	ctx := context.Background()

	first, err := repo.Create(ctx, model.Task{Description: "first"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := repo.Create(ctx, model.Task{Description: "second"}); err != nil {
		t.Fatal(err)
	}

	first.Status = model.StatusDone
	if _, err := repo.Update(ctx, first); err != nil {
		t.Fatal(err)
	}

	done := model.StatusDone
	tasks, err := repo.List(ctx, model.TaskFilter{Status: &done})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 done task, got %d", len(tasks))
	}
	if tasks[0].ID != first.ID {
		t.Errorf("expected task %d, got %d", first.ID, tasks[0].ID)
	}
}

func TestTaskRepo_DeleteNotFound(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	repo := NewTaskRepo(pool)

	if err := repo.Delete(context.Background(), 999999); err != ErrorNotFound {
		t.Errorf("expected ErrorNotFound, got %v", err)
	}
}
