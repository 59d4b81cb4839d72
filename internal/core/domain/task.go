package domain

import "time"

type Status string

const (
	StatusComplete    Status = "COMPLETE"
	StatusNotComplete Status = "NOT_COMPLETE"
)

// ParseStatus reports whether value names a known status.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusComplete:
		return StatusComplete, true
	case StatusNotComplete:
		return StatusNotComplete, true
	default:
		return "", false
	}
}

type Task struct {
	ID          uint64
	TaskListID  uint64
	Name        string
	Description *string
	Status      Status
	CreatedBy   *uint64
	CompletedBy *uint64
	CompletedOn *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsComplete is true for the COMPLETE status only.
func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// StampCompletion brings the completion metadata in line with the status:
// both set for COMPLETE, both cleared otherwise. Existing metadata on a
// complete task is preserved.
func (t *Task) StampCompletion(actorID *uint64, now time.Time) {
	if t.Status != StatusComplete {
		t.CompletedBy = nil
		t.CompletedOn = nil
		return
	}
	if t.CompletedOn == nil {
		completedOn := now
		t.CompletedOn = &completedOn
	}
	if t.CompletedBy == nil && actorID != nil {
		completedBy := *actorID
		t.CompletedBy = &completedBy
	}
}

type CreateTaskInput struct {
	TaskListID  uint64
	Name        string
	Description *string
	Status      Status
	ActorID     *uint64
}

type UpdateTaskInput struct {
	ID             uint64
	Name           *string
	Description    *string
	DescriptionSet bool
	Status         *Status
	TaskListID     *uint64
	ActorID        *uint64
}

type CompleteTaskInput struct {
	TaskID  uint64
	Status  string
	ActorID *uint64
}

// TaskFilter scopes a task listing to one house or one task list. Exactly
// one of the two ids must be set.
type TaskFilter struct {
	HouseID    uint64
	TaskListID uint64
}

func (f TaskFilter) Valid() bool {
	return (f.HouseID == 0) != (f.TaskListID == 0)
}
