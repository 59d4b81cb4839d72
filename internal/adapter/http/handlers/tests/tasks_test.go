package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/core/domain"
	"housetasks/pkg/translator"
)

var (
	createdAt   = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	updatedAt   = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	completedOn = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
)

func uint64Ptr(v uint64) *uint64 {
	return &v
}

func completedTask() domain.Task {
	return domain.Task{
		ID:          4,
		TaskListID:  2,
		Name:        "Dishes",
		Status:      domain.StatusComplete,
		CreatedBy:   uint64Ptr(7),
		CompletedBy: uint64Ptr(7),
		CompletedOn: &completedOn,
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

func TestTaskHandler_ListTasks(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		filter domain.TaskFilter
	}{
		{name: "by task list", path: "/api/tasks?task_list_id=2", filter: domain.TaskFilter{TaskListID: 2}},
		{name: "by house", path: "/api/tasks?house_id=1", filter: domain.TaskFilter{HouseID: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("ListTasks", mock.Anything, tt.filter).Return([]domain.Task{completedTask()}, nil).Once()

			rec := doRequest(newRouter(serviceMock), http.MethodGet, tt.path, "")

			require.Equal(t, http.StatusOK, rec.Code)
			var got []dto.TaskItem
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			require.Len(t, got, 1)
			require.Equal(t, uint64(4), got[0].ID)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_ListTasks_InvalidFilter(t *testing.T) {
	for _, path := range []string{
		"/api/tasks",
		"/api/tasks?house_id=1&task_list_id=2",
		"/api/tasks?house_id=abc",
		"/api/tasks?task_list_id=-3",
	} {
		t.Run(path, func(t *testing.T) {
			serviceMock := new(taskServiceMock)

			rec := doRequest(newRouter(serviceMock), http.MethodGet, path, "")

			requireAPIError(t, rec, http.StatusBadRequest, "Exactly one of house_id or task_list_id is required")
			serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_ListTasks_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{name: "unknown house", err: domain.ErrHouseNotFound, code: http.StatusNotFound, message: "House not found"},
		{name: "store failure", err: errors.New("connection reset"), code: http.StatusInternalServerError, message: "failed to list tasks"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("ListTasks", mock.Anything, domain.TaskFilter{HouseID: 9}).Return([]domain.Task(nil), tt.err).Once()

			rec := doRequest(newRouter(serviceMock), http.MethodGet, "/api/tasks?house_id=9", "")

			requireAPIError(t, rec, tt.code, tt.message)
		})
	}
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{
		TaskListID: 2,
		Name:       "Dishes",
		Status:     domain.StatusComplete,
		ActorID:    uint64Ptr(7),
	}).Return(completedTask(), nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks",
		`{"task_list_id": 2, "name": "  Dishes ", "status": "COMPLETE"}`, withProfile("7"))

	require.Equal(t, http.StatusCreated, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, uint64(4), got.ID)
	require.Equal(t, uint64(2), got.TaskListID)
	require.Equal(t, "COMPLETE", got.Status)
	require.Equal(t, uint64(7), *got.CompletedBy)
	require.Equal(t, "2026-03-14T09:30:00Z", *got.CompletedOn)
	require.Equal(t, "2026-03-14T09:00:00Z", got.CreatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "missing name", body: `{"task_list_id": 2}`},
		{name: "blank name", body: `{"task_list_id": 2, "name": "   "}`},
		{name: "missing list", body: `{"name": "Dishes"}`},
		{name: "unknown status", body: `{"task_list_id": 2, "name": "Dishes", "status": "DONE"}`},
		{name: "null status", body: `{"task_list_id": 2, "name": "Dishes", "status": null}`},
		{name: "malformed", body: `{"task_list_id": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", tt.body)
			requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_UnknownTaskList(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(domain.Task{}, domain.ErrTaskListNotFound).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPost, "/api/tasks", `{"task_list_id": 99, "name": "Dishes"}`)

	requireAPIError(t, rec, http.StatusNotFound, "Task list not found")
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, uint64(4)).Return(completedTask(), nil).Once()
	serviceMock.On("GetTask", mock.Anything, uint64(999)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newRouter(serviceMock)

	rec := doRequest(router, http.MethodGet, "/api/tasks/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "Dishes", got.Name)

	rec = doRequest(router, http.MethodGet, "/api/tasks/999", "")
	requireAPIError(t, rec, http.StatusNotFound, "Task not found")

	rec = doRequest(router, http.MethodGet, "/api/tasks/abc", "")
	requireAPIError(t, rec, http.StatusBadRequest, "Invalid task id")

	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_ClearsDescriptionAndMoves(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, mock.MatchedBy(func(input domain.UpdateTaskInput) bool {
		return input.ID == 4 &&
			input.DescriptionSet &&
			input.Description == nil &&
			input.Name == nil &&
			input.Status == nil &&
			input.TaskListID != nil && *input.TaskListID == 3 &&
			input.ActorID != nil && *input.ActorID == 7
	})).Return(completedTask(), nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPatch, "/api/tasks/4",
		`{"description": null, "task_list_id": 3}`, withProfile("7"))

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_InvalidPayload(t *testing.T) {
	for _, body := range []string{`{}`, `{"name": null}`, `{"name": ""}`, `{"status": "DONE"}`, `{"task_list_id": null}`} {
		t.Run(body, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			rec := doRequest(newRouter(serviceMock), http.MethodPatch, "/api/tasks/4", body)
			requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
		})
	}
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, uint64(4)).Return(nil).Once()
	serviceMock.On("DeleteTask", mock.Anything, uint64(5)).Return(errors.New("db is down")).Once()
	router := newRouter(serviceMock)

	rec := doRequest(router, http.MethodDelete, "/api/tasks/4", "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = doRequest(router, http.MethodDelete, "/api/tasks/5", "")
	requireAPIError(t, rec, http.StatusInternalServerError, "failed to delete task")

	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTaskStatus_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CompleteTask", mock.Anything, domain.CompleteTaskInput{
		TaskID:  4,
		Status:  "COMPLETE",
		ActorID: uint64Ptr(7),
	}).Return(completedTask(), nil).Once()

	rec := doRequest(newRouter(serviceMock), http.MethodPatch, "/api/tasks/4/status", `{"status": "COMPLETE"}`, withProfile("7"))

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "COMPLETE", got.Status)
	require.Equal(t, uint64(7), *got.CompletedBy)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTaskStatus_Errors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		lang    string
		code    int
		message string
	}{
		{name: "already completed", err: domain.ErrAlreadyCompleted, lang: translator.LanguageEn, code: http.StatusBadRequest, message: "task already marked as completed"},
		{name: "already not completed", err: domain.ErrAlreadyNotCompleted, lang: translator.LanguageEn, code: http.StatusBadRequest, message: "task already marked as not completed"},
		{name: "unrecognized status", err: domain.ErrUnrecognizedStatus, lang: translator.LanguageEn, code: http.StatusBadRequest, message: "unrecognized status"},
		{name: "french", err: domain.ErrAlreadyCompleted, lang: "fr-FR,fr;q=0.9", code: http.StatusBadRequest, message: "tâche déjà marquée comme terminée"},
		{name: "missing task", err: domain.ErrTaskNotFound, lang: translator.LanguageEn, code: http.StatusNotFound, message: "Task not found"},
		{name: "anonymous", err: domain.ErrActorRequired, lang: translator.LanguageEn, code: http.StatusUnauthorized, message: "An authenticated profile is required to complete a task"},
		{name: "storage", err: errors.New("deadlock"), lang: translator.LanguageEn, code: http.StatusInternalServerError, message: "failed to update task status"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("CompleteTask", mock.Anything, mock.Anything).Return(domain.Task{}, tt.err).Once()

			rec := doRequest(newRouter(serviceMock), http.MethodPatch, "/api/tasks/4/status", `{"status": "COMPLETE"}`,
				withProfile("7"), withLanguage(tt.lang))

			requireAPIError(t, rec, tt.code, tt.message)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_UpdateTaskStatus_InvalidBody(t *testing.T) {
	serviceMock := new(taskServiceMock)

	rec := doRequest(newRouter(serviceMock), http.MethodPatch, "/api/tasks/4/status", `{"status": 1}`)

	requireAPIError(t, rec, http.StatusBadRequest, "Invalid task payload")
	serviceMock.AssertNotCalled(t, "CompleteTask", mock.Anything, mock.Anything)
}
