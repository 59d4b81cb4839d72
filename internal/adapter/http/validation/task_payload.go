package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/core/domain"
)

var (
	ErrInvalidTaskPayload     = errors.New("invalid task payload")
	ErrInvalidTaskListPayload = errors.New("invalid task list payload")
)

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage, actorID *uint64) (domain.CreateTaskInput, error) {
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateTaskInput{}, ErrInvalidTaskPayload
	}

	status := domain.StatusNotComplete
	if req.Status != nil {
		parsed, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return domain.CreateTaskInput{}, ErrInvalidTaskPayload
		}
		status = parsed
	}

	return domain.CreateTaskInput{
		TaskListID:  req.TaskListID,
		Name:        name,
		Description: req.Description,
		Status:      status,
		ActorID:     actorID,
	}, nil
}

// BuildUpdateTaskInput validates a partial update. Absent fields are left
// untouched; "description": null clears the description.
func BuildUpdateTaskInput(id uint64, req dto.UpdateTaskRequest, raw map[string]json.RawMessage, actorID *uint64) (domain.UpdateTaskInput, error) {
	if !hasAnyField(raw, "name", "description", "status", "task_list_id") {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	var name *string
	if hasJSONField(raw, "name") && req.Name == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		name = &value
	}

	var status *domain.Status
	if hasJSONField(raw, "status") && req.Status == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}
	if req.Status != nil {
		value, ok := domain.ParseStatus(*req.Status)
		if !ok {
			return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
		}
		status = &value
	}

	if hasJSONField(raw, "task_list_id") && req.TaskListID == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskInput{}, ErrInvalidTaskPayload
	}

	return domain.UpdateTaskInput{
		ID:             id,
		Name:           name,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
		Status:         status,
		TaskListID:     req.TaskListID,
		ActorID:        actorID,
	}, nil
}

func hasAnyField(raw map[string]json.RawMessage, fields ...string) bool {
	for _, field := range fields {
		if hasJSONField(raw, field) {
			return true
		}
	}
	return false
}

func hasJSONField(raw map[string]json.RawMessage, field string) bool {
	_, ok := raw[field]
	return ok
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
