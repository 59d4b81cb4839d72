package dto

type HouseItem struct {
	ID                  uint64 `json:"id"`
	Name                string `json:"name"`
	Points              int    `json:"points"`
	CompletedTasksCount int    `json:"completed_tasks_count"`
	CreatedAt           string `json:"created_at"`
	UpdatedAt           string `json:"updated_at"`
}
