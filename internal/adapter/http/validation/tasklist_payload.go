package validation

import (
	"encoding/json"
	"strings"

	"housetasks/internal/adapter/http/dto"
	"housetasks/internal/core/domain"
)

func BuildCreateTaskListInput(req dto.CreateTaskListRequest) (domain.CreateTaskListInput, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.CreateTaskListInput{}, ErrInvalidTaskListPayload
	}
	return domain.CreateTaskListInput{
		HouseID:     req.HouseID,
		Name:        name,
		Description: req.Description,
	}, nil
}

// BuildUpdateTaskListInput accepts name and description only. A task list
// status is always derived from its tasks.
func BuildUpdateTaskListInput(id uint64, req dto.UpdateTaskListRequest, raw map[string]json.RawMessage) (domain.UpdateTaskListInput, error) {
	if hasJSONField(raw, "status") || !hasAnyField(raw, "name", "description") {
		return domain.UpdateTaskListInput{}, ErrInvalidTaskListPayload
	}

	var name *string
	if hasJSONField(raw, "name") && req.Name == nil {
		return domain.UpdateTaskListInput{}, ErrInvalidTaskListPayload
	}
	if req.Name != nil {
		value := strings.TrimSpace(*req.Name)
		if value == "" {
			return domain.UpdateTaskListInput{}, ErrInvalidTaskListPayload
		}
		name = &value
	}

	descriptionSet := hasJSONField(raw, "description")
	if descriptionSet && !isJSONNull(raw["description"]) && req.Description == nil {
		return domain.UpdateTaskListInput{}, ErrInvalidTaskListPayload
	}

	return domain.UpdateTaskListInput{
		ID:             id,
		Name:           name,
		Description:    req.Description,
		DescriptionSet: descriptionSet,
	}, nil
}
