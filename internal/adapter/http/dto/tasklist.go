package dto

type TaskListItem struct {
	ID          uint64     `json:"id"`
	HouseID     uint64     `json:"house_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Status      string     `json:"status"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
	Tasks       []TaskItem `json:"tasks"`
}

type CreateTaskListRequest struct {
	HouseID     uint64  `json:"house_id" binding:"required,gt=0"`
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
}

type UpdateTaskListRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description" binding:"omitempty,max=65535"`
}
