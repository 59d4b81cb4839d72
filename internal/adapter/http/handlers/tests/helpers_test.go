package tests

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpadapter "housetasks/internal/adapter/http"
	"housetasks/internal/adapter/http/handlers"
	"housetasks/internal/adapter/http/middleware"
	"housetasks/internal/core/domain"
	"housetasks/pkg/apierrors"
	"housetasks/pkg/translator"
)

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) CompleteTask(ctx context.Context, input domain.CompleteTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) CreateTaskList(ctx context.Context, input domain.CreateTaskListInput) (domain.TaskList, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.TaskList), args.Error(1)
}

func (m *taskServiceMock) GetTaskList(ctx context.Context, id uint64) (domain.TaskList, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.TaskList), args.Error(1)
}

func (m *taskServiceMock) UpdateTaskList(ctx context.Context, input domain.UpdateTaskListInput) (domain.TaskList, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.TaskList), args.Error(1)
}

func (m *taskServiceMock) DeleteTaskList(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *taskServiceMock) GetHouse(ctx context.Context, id uint64) (domain.House, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.House), args.Error(1)
}

func (m *taskServiceMock) CreateHouse(ctx context.Context, name string) (domain.House, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(domain.House), args.Error(1)
}

func newRouter(serviceMock *taskServiceMock) *gin.Engine {
	router := gin.New()
	httpadapter.RegisterRoutes(router, httpadapter.NewHandlers(handlers.NewHealthHandler(nil), serviceMock), "")
	return router
}

type requestOption func(*http.Request)

func withProfile(id string) requestOption {
	return func(req *http.Request) {
		req.Header.Set(middleware.ProfileIDHeader, id)
	}
}

func withLanguage(lang string) requestOption {
	return func(req *http.Request) {
		req.Header.Set("Accept-Language", lang)
	}
}

func doRequest(router *gin.Engine, method, path, body string, opts ...requestOption) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", translator.LanguageEn)
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func requireAPIError(t *testing.T, rec *httptest.ResponseRecorder, code int, message string) {
	t.Helper()

	require.Equal(t, code, rec.Code)
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, code, got.ErrDetails.Code)
	require.Equal(t, message, got.ErrDetails.Message)
}
