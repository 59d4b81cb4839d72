package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"housetasks/internal/adapter/http/mapper"
	"housetasks/internal/core/ports"
	"housetasks/pkg/apierrors"
)

type HouseHandler struct {
	taskService ports.TaskService
}

func NewHouseHandler(taskService ports.TaskService) *HouseHandler {
	return &HouseHandler{taskService: taskService}
}

func (h *HouseHandler) GetHouse(c *gin.Context) {
	houseID, ok := parseIDParam(c, "id")
	if !ok {
		respondBadRequest(c, apierrors.MsgInvalidHouseID)
		return
	}

	house, err := h.taskService.GetHouse(c.Request.Context(), houseID)
	if err != nil {
		respondError(c, err, apierrors.MsgFailGetHouse, "failed to get house", zap.Uint64("house_id", houseID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToHouseItem(house))
}
