package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/simpletask/backend/domain"
	"github.com/simpletask/backend/repository"
)

// UseCase exposes task operations; each performs exactly one repository call.
type UseCase struct {
	tasks  repository.TaskRepository
	logger *zap.Logger
}

func New(tasks repository.TaskRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		tasks:  tasks,
		logger: logger,
	}
}

func (uc *UseCase) ListTasks(ctx context.Context, filter repository.TaskFilter) ([]domain.Task, error) {
	return uc.tasks.List(ctx, filter)
}

func (uc *UseCase) GetTask(ctx context.Context, id string) (*domain.Task, error) {
	return uc.tasks.GetByID(ctx, id)
}

func (uc *UseCase) CreateTask(ctx context.Context, input repository.NewTask) (*domain.Task, error) {
	created, err := uc.tasks.Create(ctx, input)
	if err != nil {
		uc.logger.Error("task create failed", zap.Error(err))
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateTask(ctx context.Context, id string, patch repository.TaskPatch) (*domain.Task, error) {
	return uc.tasks.Update(ctx, id, patch)
}

func (uc *UseCase) DeleteTask(ctx context.Context, id string) error {
	return uc.tasks.Delete(ctx, id)
}
