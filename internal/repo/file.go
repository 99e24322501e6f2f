package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/BuzzLyutic/task-tracker-cli/internal/model"
)

// document - формат файла хранения. Массив tasks - сама коллекция,
// last_id хранит верхнюю границу выданных id: id не переиспользуются
// даже после удаления задачи.
type document struct {
	Tasks  []model.Task `json:"tasks"`
	LastID int64        `json:"last_id"`
}

const documentSchema = `{
	"$schema": "https://json-schema.org/draft/2020-12/schema",
	"type": "object",
	"required": ["tasks"],
	"properties": {
		"last_id": {"type": "integer", "minimum": 0},
		"tasks": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "description", "status", "created_at", "updated_at"],
				"properties": {
					"id": {"type": "integer", "minimum": 1},
					"description": {"type": "string", "minLength": 1},
					"status": {"enum": ["todo", "in-progress", "done"]},
					"created_at": {"type": "string"},
					"updated_at": {"type": "string"}
				}
			}
		}
	}
}`

var docSchema = jsonschema.MustCompileString("tasks.schema.json", documentSchema)

type FileRepo struct { // Репозиторий поверх локального json-файла
	path string
	doc  document
}

// NewFileRepo загружает файл в память. Отсутствующий файл означает
// пустую коллекцию, испорченный - ErrorStorage.
func NewFileRepo(path string) (*FileRepo, error) {
	r := &FileRepo{path: path}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *FileRepo) load() error {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		r.doc = document{Tasks: []model.Task{}}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrorStorage, r.path, err)
	}

	// Сначала схема, потом декодирование в структуру: файл с чужим
	// статусом или без обязательных полей отклоняем, а не чиним молча
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrorStorage, r.path, err)
	}
	if err := docSchema.Validate(raw); err != nil {
		return fmt.Errorf("%w: validate %s: %v", ErrorStorage, r.path, err)
	}
	if err := json.Unmarshal(data, &r.doc); err != nil {
		return fmt.Errorf("%w: parse %s: %v", ErrorStorage, r.path, err)
	}

	// Файл, записанный вручную, может не содержать last_id
	for _, t := range r.doc.Tasks {
		if t.ID > r.doc.LastID {
			r.doc.LastID = t.ID
		}
	}
	return nil
}

// save перезаписывает файл целиком: временный файл + rename
func (r *FileRepo) save() error {
	data, err := json.MarshalIndent(r.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrorStorage, err)
	}
	data = append(data, '\n')

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: mkdir %s: %v", ErrorStorage, dir, err)
		}
	}

	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrorStorage, tmp, err)
	}
	if err := os.Rename(tmp, r.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %v", ErrorStorage, r.path, err)
	}
	return nil
}

func (r *FileRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	now := time.Now().UTC()
	t.ID = r.doc.LastID + 1
	t.Status = model.StatusTodo
	t.CreatedAt = now
	t.UpdatedAt = now

	r.doc.Tasks = append(r.doc.Tasks, t)
	r.doc.LastID = t.ID

	if err := r.save(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *FileRepo) Get(ctx context.Context, id int64) (model.Task, error) {
	for _, t := range r.doc.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return model.Task{}, ErrorNotFound
}

func (r *FileRepo) List(ctx context.Context, filter model.TaskFilter) ([]model.Task, error) {
	tasks := make([]model.Task, 0, len(r.doc.Tasks)) // в порядке добавления
	for _, t := range r.doc.Tasks {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (r *FileRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	for i := range r.doc.Tasks {
		if r.doc.Tasks[i].ID != t.ID {
			continue
		}
		t.CreatedAt = r.doc.Tasks[i].CreatedAt
		t.UpdatedAt = time.Now().UTC()
		r.doc.Tasks[i] = t

		if err := r.save(); err != nil {
			return model.Task{}, err
		}
		return t, nil
	}
	return model.Task{}, ErrorNotFound
}

func (r *FileRepo) Delete(ctx context.Context, id int64) error {
	for i := range r.doc.Tasks {
		if r.doc.Tasks[i].ID != id {
			continue
		}
		r.doc.Tasks = append(r.doc.Tasks[:i], r.doc.Tasks[i+1:]...)
		return r.save()
	}
	return ErrorNotFound
}
