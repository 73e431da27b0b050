package repository

import (
	"context"

	"github.com/simpletask/backend/domain"
)

// Sort is the list ordering over Task.CreatedAt.
type Sort string

const (
	SortNewestFirst Sort = "desc"
	SortOldestFirst Sort = "asc"
)

// TaskFilter narrows a List call. Limit 0 means unlimited.
type TaskFilter struct {
	Limit int
	Sort  Sort
}

// NewTask carries the caller-supplied fields of a task to create. The
// repository assigns ID and CreatedAt.
type NewTask struct {
	Title       string
	Description *string
	IsComplete  bool
}

// TaskPatch is a field-level partial update. Nil pointers leave the stored
// value untouched; this is a patch, not a whole-record replacement.
type TaskPatch struct {
	Title       *string
	Description *string
	IsComplete  *bool
}

// Empty reports whether the patch changes nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.IsComplete == nil
}

// TaskRepository is the persistence contract for tasks. Id-keyed operations
// return domain.ErrTaskNotFound when no matching record exists.
type TaskRepository interface {
	List(ctx context.Context, filter TaskFilter) ([]domain.Task, error)
	GetByID(ctx context.Context, id string) (*domain.Task, error)
	Create(ctx context.Context, input NewTask) (*domain.Task, error)
	Update(ctx context.Context, id string, patch TaskPatch) (*domain.Task, error)
	Delete(ctx context.Context, id string) error
}
