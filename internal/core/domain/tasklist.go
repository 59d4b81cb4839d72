package domain

import "time"

type TaskList struct {
	ID          uint64
	HouseID     uint64
	Name        string
	Description *string
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Tasks       []Task
}

// DeriveTaskListStatus is COMPLETE when no task in tasks is incomplete,
// which includes the empty list.
func DeriveTaskListStatus(tasks []Task) Status {
	for _, task := range tasks {
		if !task.IsComplete() {
			return StatusNotComplete
		}
	}
	return StatusComplete
}

type CreateTaskListInput struct {
	HouseID     uint64
	Name        string
	Description *string
}

type UpdateTaskListInput struct {
	ID             uint64
	Name           *string
	Description    *string
	DescriptionSet bool
}
