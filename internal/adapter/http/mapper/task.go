package mapper

import (
	"time"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/core/domain"
)

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:         task.ID,
		TaskListID: task.TaskListID,
		Name:       task.Name,
		Status:     string(task.Status),
		CreatedAt:  task.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  task.UpdatedAt.Format(time.RFC3339),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}
	if task.CreatedBy != nil {
		value := *task.CreatedBy
		item.CreatedBy = &value
	}
	if task.CompletedBy != nil {
		value := *task.CompletedBy
		item.CompletedBy = &value
	}
	if task.CompletedOn != nil {
		value := task.CompletedOn.Format(time.RFC3339)
		item.CompletedOn = &value
	}

	return item
}
