package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.uber.org/zap"

	"housetasks/internal/adapter/http/middleware"
	"housetasks/internal/core/domain"
	"housetasks/pkg/apierrors"
)

// respondError maps a service error onto a status and message key. Errors
// the domain does not know about are logged and reported with failKey.
func respondError(c *gin.Context, err error, failKey string, logMsg string, fields ...zap.Field) {
	status, msgKey := classifyError(err)
	if status == http.StatusInternalServerError {
		msgKey = failKey
		zap.L().Error(logMsg, append(fields, zap.Error(err))...)
	}
	apierrors.Write(c, status, msgKey, middleware.GetLang(c))
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrTaskNotFound):
		return http.StatusNotFound, apierrors.MsgTaskNotFound
	case errors.Is(err, domain.ErrTaskListNotFound):
		return http.StatusNotFound, apierrors.MsgTaskListNotFound
	case errors.Is(err, domain.ErrHouseNotFound):
		return http.StatusNotFound, apierrors.MsgHouseNotFound
	case errors.Is(err, domain.ErrAlreadyCompleted):
		return http.StatusBadRequest, apierrors.MsgTaskAlreadyCompleted
	case errors.Is(err, domain.ErrAlreadyNotCompleted):
		return http.StatusBadRequest, apierrors.MsgTaskAlreadyNotCompleted
	case errors.Is(err, domain.ErrUnrecognizedStatus):
		return http.StatusBadRequest, apierrors.MsgUnrecognizedStatus
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusBadRequest, apierrors.MsgInvalidTransition
	case errors.Is(err, domain.ErrInvalidTaskFilter):
		return http.StatusBadRequest, apierrors.MsgInvalidTaskFilter
	case errors.Is(err, domain.ErrActorRequired):
		return http.StatusUnauthorized, apierrors.MsgActorRequired
	default:
		return http.StatusInternalServerError, ""
	}
}

func respondBadRequest(c *gin.Context, msgKey string) {
	apierrors.Write(c, http.StatusBadRequest, msgKey, middleware.GetLang(c))
}

func parseIDParam(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// bindJSONWithFields binds and validates the body into req and also returns
// the raw top-level fields, so partial updates can tell absent from null.
func bindJSONWithFields(c *gin.Context, req any) (map[string]json.RawMessage, error) {
	body, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if err := binding.JSON.BindBody(body, req); err != nil {
		return nil, err
	}
	return raw, nil
}
