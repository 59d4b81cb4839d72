package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/adapter/http/mapper"
	"housetasks/internal/adapter/http/middleware"
	"housetasks/internal/adapter/http/validation"
	"housetasks/internal/core/domain"
	"housetasks/internal/core/ports"
	"housetasks/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	var query dto.ListTasksQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskFilter)
		return
	}

	filter := domain.TaskFilter{HouseID: query.HouseID, TaskListID: query.TaskListID}
	if !filter.Valid() {
		respondBadRequest(c, apierrors.MsgInvalidTaskFilter)
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, apierrors.MsgFailListTasks, "failed to list tasks",
			zap.Uint64("house_id", filter.HouseID),
			zap.Uint64("task_list_id", filter.TaskListID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req dto.CreateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw, middleware.GetProfileID(c))
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTask, "failed to create task",
			zap.Uint64("task_list_id", input.TaskListID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTask, "failed to get task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	input, err := validation.BuildUpdateTaskInput(taskID, req, raw, middleware.GetProfileID(c))
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.UpdateTask(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTask, "failed to update task", zap.Uint64("task_id", taskID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return
	}

	if err := h.taskService.DeleteTask(c.Request.Context(), taskID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTask, "failed to delete task", zap.Uint64("task_id", taskID))
		return
	}

	c.Status(http.StatusNoContent)
}

// UpdateTaskStatus runs the completion command: {"status": "COMPLETE"} or
// {"status": "NOT_COMPLETE"}.
func (h *TaskHandler) UpdateTaskStatus(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskID)
		return
	}

	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskPayload)
		return
	}

	task, err := h.taskService.CompleteTask(c.Request.Context(), domain.CompleteTaskInput{
		TaskID:  taskID,
		Status:  req.Status,
		ActorID: middleware.GetProfileID(c),
	})
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTaskStatus, "failed to update task status",
			zap.Uint64("task_id", taskID), zap.String("status", req.Status))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}
