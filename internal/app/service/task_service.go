package service

import (
	"context"

	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
)

type TaskService struct {
	store      ports.Store
	reconciler *Reconciler
}

func NewTaskService(store ports.Store, reconciler *Reconciler) *TaskService {
	return &TaskService{store: store, reconciler: reconciler}
}

// ListTasks returns the tasks of one task list or of every list of a house,
// ordered by id. An unknown list or house is reported as not found.
func (s *TaskService) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	if !filter.Valid() {
		return nil, domain.ErrInvalidTaskFilter
	}

	var tasks []domain.Task
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		if filter.TaskListID != 0 {
			if _, err = tx.GetTaskList(ctx, filter.TaskListID); err != nil {
				return err
			}
			tasks, err = tx.GetTasksInList(ctx, filter.TaskListID)
			return err
		}
		if _, err = tx.GetHouse(ctx, filter.HouseID); err != nil {
			return err
		}
		tasks, err = tx.GetTasksInHouse(ctx, filter.HouseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	status := input.Status
	if status == "" {
		status = domain.StatusNotComplete
	}

	var write TaskWrite
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		write, err = s.reconciler.SaveTask(ctx, tx, TaskChange{
			TaskListID: input.TaskListID,
			ActorID:    input.ActorID,
			Apply: func(task *domain.Task) error {
				task.Name = input.Name
				task.Description = input.Description
				task.Status = status
				task.CreatedBy = input.ActorID
				return nil
			},
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.reconciler.Publish(ctx, write)
	return write.Task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	var task domain.Task
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		task, err = tx.GetTask(ctx, id)
		return err
	})
	return task, err
}

func (s *TaskService) UpdateTask(ctx context.Context, input domain.UpdateTaskInput) (domain.Task, error) {
	var destListID uint64
	if input.TaskListID != nil {
		destListID = *input.TaskListID
	}

	var write TaskWrite
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		write, err = s.reconciler.SaveTask(ctx, tx, TaskChange{
			ID:         input.ID,
			TaskListID: destListID,
			ActorID:    input.ActorID,
			Apply: func(task *domain.Task) error {
				if input.Name != nil {
					task.Name = *input.Name
				}
				if input.DescriptionSet {
					task.Description = input.Description
				}
				if input.Status != nil {
					task.Status = *input.Status
				}
				return nil
			},
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.reconciler.Publish(ctx, write)
	return write.Task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	var write TaskWrite
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		write, err = s.reconciler.DeleteTask(ctx, tx, id)
		return err
	})
	if err != nil {
		return err
	}

	s.reconciler.Publish(ctx, write)
	return nil
}

// CompleteTask toggles a task between COMPLETE and NOT_COMPLETE. Only a real
// transition is accepted; the task is looked up first, so a missing task is
// reported before a bad status, and the current status is checked on the
// locked row.
func (s *TaskService) CompleteTask(ctx context.Context, input domain.CompleteTaskInput) (domain.Task, error) {
	var write TaskWrite
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		write, err = s.reconciler.SaveTask(ctx, tx, TaskChange{
			ID:      input.TaskID,
			ActorID: input.ActorID,
			Apply: func(task *domain.Task) error {
				target, ok := domain.ParseStatus(input.Status)
				if !ok {
					return domain.ErrUnrecognizedStatus
				}
				switch target {
				case domain.StatusNotComplete:
					if !task.IsComplete() {
						return domain.ErrAlreadyNotCompleted
					}
					task.Status = domain.StatusNotComplete
					task.CompletedBy = nil
					task.CompletedOn = nil
				case domain.StatusComplete:
					if task.IsComplete() {
						return domain.ErrAlreadyCompleted
					}
					if input.ActorID == nil {
						return domain.ErrActorRequired
					}
					completedOn := s.reconciler.now().UTC()
					completedBy := *input.ActorID
					task.Status = domain.StatusComplete
					task.CompletedOn = &completedOn
					task.CompletedBy = &completedBy
				}
				return nil
			},
		})
		return err
	})
	if err != nil {
		return domain.Task{}, err
	}

	s.reconciler.Publish(ctx, write)
	return write.Task, nil
}

func (s *TaskService) CreateTaskList(ctx context.Context, input domain.CreateTaskListInput) (domain.TaskList, error) {
	var taskList domain.TaskList
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		if _, err := tx.GetHouse(ctx, input.HouseID); err != nil {
			return err
		}
		now := s.reconciler.now().UTC()
		taskList = domain.TaskList{
			HouseID:     input.HouseID,
			Name:        input.Name,
			Description: input.Description,
			Status:      domain.DeriveTaskListStatus(nil),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.SaveTaskList(ctx, &taskList)
	})
	if err != nil {
		return domain.TaskList{}, err
	}
	return taskList, nil
}

func (s *TaskService) GetTaskList(ctx context.Context, id uint64) (domain.TaskList, error) {
	var taskList domain.TaskList
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		if taskList, err = tx.GetTaskList(ctx, id); err != nil {
			return err
		}
		taskList.Tasks, err = tx.GetTasksInList(ctx, id)
		return err
	})
	if err != nil {
		return domain.TaskList{}, err
	}
	return taskList, nil
}

// UpdateTaskList edits the descriptive fields only; the status stays derived.
func (s *TaskService) UpdateTaskList(ctx context.Context, input domain.UpdateTaskListInput) (domain.TaskList, error) {
	var taskList domain.TaskList
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		if taskList, err = tx.GetTaskList(ctx, input.ID); err != nil {
			return err
		}
		if input.Name != nil {
			taskList.Name = *input.Name
		}
		if input.DescriptionSet {
			taskList.Description = input.Description
		}
		taskList.UpdatedAt = s.reconciler.now().UTC()
		return tx.SaveTaskList(ctx, &taskList)
	})
	if err != nil {
		return domain.TaskList{}, err
	}
	return taskList, nil
}

// DeleteTaskList deletes every task of the list through the reconciler before
// removing the list itself, so the house gives back points for completed tasks.
func (s *TaskService) DeleteTaskList(ctx context.Context, id uint64) error {
	var writes []TaskWrite
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		if _, err := tx.GetTaskList(ctx, id); err != nil {
			return err
		}
		tasks, err := tx.GetTasksInList(ctx, id)
		if err != nil {
			return err
		}
		for _, task := range tasks {
			write, err := s.reconciler.DeleteTask(ctx, tx, task.ID)
			if err != nil {
				return err
			}
			writes = append(writes, write)
		}
		return tx.DeleteTaskList(ctx, id)
	})
	if err != nil {
		return err
	}

	s.reconciler.Publish(ctx, writes...)
	return nil
}

func (s *TaskService) GetHouse(ctx context.Context, id uint64) (domain.House, error) {
	var house domain.House
	err := s.store.ReadOnly(ctx, func(ctx context.Context, tx ports.Tx) error {
		var err error
		house, err = tx.GetHouse(ctx, id)
		return err
	})
	return house, err
}

func (s *TaskService) CreateHouse(ctx context.Context, name string) (domain.House, error) {
	now := s.reconciler.now().UTC()
	house := domain.House{Name: name, CreatedAt: now, UpdatedAt: now}
	err := s.store.WithinTx(ctx, func(ctx context.Context, tx ports.Tx) error {
		return tx.CreateHouse(ctx, &house)
	})
	if err != nil {
		return domain.House{}, err
	}
	return house, nil
}

var _ ports.TaskService = (*TaskService)(nil)
