package dto

type TaskItem struct {
	ID          uint64  `json:"id"`
	TaskListID  uint64  `json:"task_list_id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	CreatedBy   *uint64 `json:"created_by,omitempty"`
	CompletedBy *uint64 `json:"completed_by,omitempty"`
	CompletedOn *string `json:"completed_on,omitempty"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type ListTasksQuery struct {
	HouseID    uint64 `form:"house_id"`
	TaskListID uint64 `form:"task_list_id"`
}

type CreateTaskRequest struct {
	TaskListID  uint64  `json:"task_list_id" binding:"required,gt=0"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=COMPLETE NOT_COMPLETE"`
}

type UpdateTaskRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
	Status      *string `json:"status" binding:"omitempty,oneof=COMPLETE NOT_COMPLETE"`
	TaskListID  *uint64 `json:"task_list_id" binding:"omitempty,gt=0"`
}

// UpdateTaskStatusRequest carries the raw status so unknown values reach the
// completion command and get its error message.
type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}
