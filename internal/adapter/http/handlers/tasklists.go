package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/adapter/http/mapper"
	"housetasks/internal/adapter/http/validation"
	"housetasks/internal/core/ports"
	"housetasks/pkg/apierrors"
)

type TaskListHandler struct {
	taskService ports.TaskService
}

func NewTaskListHandler(taskService ports.TaskService) *TaskListHandler {
	return &TaskListHandler{taskService: taskService}
}

func (h *TaskListHandler) CreateTaskList(c *gin.Context) {
	var req dto.CreateTaskListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskListPayload)
		return
	}

	input, err := validation.BuildCreateTaskListInput(req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskListPayload)
		return
	}

	taskList, err := h.taskService.CreateTaskList(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailCreateTaskList, "failed to create task list",
			zap.Uint64("house_id", input.HouseID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskListItem(taskList))
}

func (h *TaskListHandler) GetTaskList(c *gin.Context) {
	taskListID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskListID)
		return
	}

	taskList, err := h.taskService.GetTaskList(c.Request.Context(), taskListID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetTaskList, "failed to get task list",
			zap.Uint64("task_list_id", taskListID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListItem(taskList))
}

func (h *TaskListHandler) UpdateTaskList(c *gin.Context) {
	taskListID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskListID)
		return
	}

	var req dto.UpdateTaskListRequest
	raw, err := bindJSONWithFields(c, &req)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskListPayload)
		return
	}

	input, err := validation.BuildUpdateTaskListInput(taskListID, req, raw)
	if err != nil {
		respondBadRequest(c, apierrors.MsgInvalidTaskListPayload)
		return
	}

	taskList, err := h.taskService.UpdateTaskList(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, apierrors.MsgFailUpdateTaskList, "failed to update task list",
			zap.Uint64("task_list_id", taskListID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskListItem(taskList))
}

func (h *TaskListHandler) DeleteTaskList(c *gin.Context) {
	taskListID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidTaskListID)
		return
	}

	if err := h.taskService.DeleteTaskList(c.Request.Context(), taskListID); err != nil {
		respondError(c, err, apierrors.MsgFailDeleteTaskList, "failed to delete task list",
			zap.Uint64("task_list_id", taskListID))
		return
	}

	c.Status(http.StatusNoContent)
}
