package domain

import (
	"time"

	"github.com/google/uuid"
)

type TransitionKind string

const (
	TransitionCreated           TransitionKind = "CREATED"
	TransitionBecameComplete    TransitionKind = "BECAME_COMPLETE"
	TransitionBecameNotComplete TransitionKind = "BECAME_NOT_COMPLETE"
	TransitionUnchanged         TransitionKind = "UNCHANGED"
)

// ClassifyTransition compares the stored status before a write with the
// status being written. A nil prior means no record existed.
func ClassifyTransition(prior *Status, next Status) TransitionKind {
	if prior == nil {
		return TransitionCreated
	}
	switch {
	case *prior == next:
		return TransitionUnchanged
	case next == StatusComplete:
		return TransitionBecameComplete
	case *prior == StatusComplete:
		return TransitionBecameNotComplete
	default:
		return TransitionUnchanged
	}
}

// NewlyComplete is true when a write with this kind leaves a task complete
// that was not complete before, including a task created complete.
func (k TransitionKind) NewlyComplete(next Status) bool {
	if next != StatusComplete {
		return false
	}
	return k == TransitionCreated || k == TransitionBecameComplete
}

type Operation string

const (
	OperationCreated Operation = "created"
	OperationUpdated Operation = "updated"
	OperationDeleted Operation = "deleted"
)

// TransitionEvent is published once per committed task write.
type TransitionEvent struct {
	EventID    string         `json:"event_id"`
	Operation  Operation      `json:"operation"`
	TaskID     uint64         `json:"task_id"`
	TaskListID uint64         `json:"task_list_id"`
	HouseID    uint64         `json:"house_id"`
	Kind       TransitionKind `json:"kind"`
	OccurredAt time.Time      `json:"occurred_at"`
}

func NewTransitionEvent(op Operation, task Task, houseID uint64, kind TransitionKind, at time.Time) TransitionEvent {
	return TransitionEvent{
		EventID:    uuid.NewString(),
		Operation:  op,
		TaskID:     task.ID,
		TaskListID: task.TaskListID,
		HouseID:    houseID,
		Kind:       kind,
		OccurredAt: at.UTC(),
	}
}
