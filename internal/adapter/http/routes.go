package http

import (
	"github.com/gin-gonic/gin"

	"housetasks/internal/adapter/http/handlers"
	"housetasks/internal/adapter/http/middleware"
	"housetasks/internal/core/ports"
)

type Handlers struct {
	Health    *handlers.HealthHandler
	Tasks     *handlers.TaskHandler
	TaskLists *handlers.TaskListHandler
	Houses    *handlers.HouseHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret string) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware(), middleware.ProfileMiddleware(jwtSecret))
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)

		api.GET("/tasks", h.Tasks.ListTasks)
		api.POST("/tasks", h.Tasks.CreateTask)
		api.GET("/tasks/:id", h.Tasks.GetTask)
		api.PATCH("/tasks/:id", h.Tasks.UpdateTask)
		api.DELETE("/tasks/:id", h.Tasks.DeleteTask)
		api.PATCH("/tasks/:id/status", h.Tasks.UpdateTaskStatus)

		api.POST("/tasklists", h.TaskLists.CreateTaskList)
		api.GET("/tasklists/:id", h.TaskLists.GetTaskList)
		api.PATCH("/tasklists/:id", h.TaskLists.UpdateTaskList)
		api.DELETE("/tasklists/:id", h.TaskLists.DeleteTaskList)

		api.GET("/houses/:id", h.Houses.GetHouse)
	}
}

// NewHandlers wires every handler to the same task service.
func NewHandlers(health *handlers.HealthHandler, taskService ports.TaskService) Handlers {
	return Handlers{
		Health:    health,
		Tasks:     handlers.NewTaskHandler(taskService),
		TaskLists: handlers.NewTaskListHandler(taskService),
		Houses:    handlers.NewHouseHandler(taskService),
	}
}
