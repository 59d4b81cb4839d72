package ports

import (
	"context"

	"housetasks/internal/core/domain"
)

// Tx is the data-access surface available inside one store transaction.
// Get* methods on tasks, task lists and houses take a row lock when the
// transaction was opened with Store.WithinTx.
type Tx interface {
	// LocateTask returns the task list a task belongs to without locking.
	LocateTask(ctx context.Context, id uint64) (uint64, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	SaveTask(ctx context.Context, task *domain.Task) error
	DeleteTask(ctx context.Context, id uint64) error
	GetTasksInList(ctx context.Context, taskListID uint64) ([]domain.Task, error)
	GetTasksInHouse(ctx context.Context, houseID uint64) ([]domain.Task, error)

	GetTaskList(ctx context.Context, id uint64) (domain.TaskList, error)
	SaveTaskList(ctx context.Context, taskList *domain.TaskList) error
	DeleteTaskList(ctx context.Context, id uint64) error
	ListTaskListIDs(ctx context.Context) ([]uint64, error)

	GetHouse(ctx context.Context, id uint64) (domain.House, error)
	SaveHouse(ctx context.Context, house *domain.House) error
	CreateHouse(ctx context.Context, house *domain.House) error
}

type Store interface {
	// WithinTx runs fn in a read-write transaction with locking reads. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// ReadOnly runs fn in a transaction without row locks and always rolls back.
	ReadOnly(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.TransitionEvent) error
}

type TaskService interface {
	ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	UpdateTask(ctx context.Context, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	CompleteTask(ctx context.Context, input domain.CompleteTaskInput) (domain.Task, error)

	CreateTaskList(ctx context.Context, input domain.CreateTaskListInput) (domain.TaskList, error)
	GetTaskList(ctx context.Context, id uint64) (domain.TaskList, error)
	UpdateTaskList(ctx context.Context, input domain.UpdateTaskListInput) (domain.TaskList, error)
	DeleteTaskList(ctx context.Context, id uint64) error

	GetHouse(ctx context.Context, id uint64) (domain.House, error)
	CreateHouse(ctx context.Context, name string) (domain.House, error)
}
