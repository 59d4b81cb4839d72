package mapper

import (
	"time"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/core/domain"
)

func ToTaskListItem(taskList domain.TaskList) dto.TaskListItem {
	item := dto.TaskListItem{
		ID:        taskList.ID,
		HouseID:   taskList.HouseID,
		Name:      taskList.Name,
		Status:    string(taskList.Status),
		CreatedAt: taskList.CreatedAt.Format(time.RFC3339),
		UpdatedAt: taskList.UpdatedAt.Format(time.RFC3339),
		Tasks:     ToTaskItems(taskList.Tasks),
	}
	if taskList.Description != nil {
		value := *taskList.Description
		item.Description = &value
	}
	return item
}

func ToHouseItem(house domain.House) dto.HouseItem {
	return dto.HouseItem{
		ID:                  house.ID,
		Name:                house.Name,
		Points:              house.Points,
		CompletedTasksCount: house.CompletedTasksCount,
		CreatedAt:           house.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           house.UpdatedAt.Format(time.RFC3339),
	}
}
