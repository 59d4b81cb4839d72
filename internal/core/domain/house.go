package domain

import "time"

// PointsPerTask is awarded to a house for each newly completed task.
const PointsPerTask = 10

type House struct {
	ID                  uint64
	Name                string
	Points              int
	CompletedTasksCount int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HouseAdjustment describes what ApplyTransition did to a house.
type HouseAdjustment struct {
	Changed       bool
	PointsClamped bool
	CountClamped  bool
}

// ApplyTransition adjusts points and the completed counter for a classified
// transition. Decrements never take either field below zero.
func (h *House) ApplyTransition(kind TransitionKind, next Status) HouseAdjustment {
	switch {
	case kind.NewlyComplete(next):
		h.Points += PointsPerTask
		h.CompletedTasksCount++
		return HouseAdjustment{Changed: true}
	case kind == TransitionBecameNotComplete:
		adj := HouseAdjustment{Changed: true}
		if h.Points >= PointsPerTask {
			h.Points -= PointsPerTask
		} else {
			adj.PointsClamped = true
		}
		if h.CompletedTasksCount > 0 {
			h.CompletedTasksCount--
		} else {
			adj.CountClamped = true
		}
		return adj
	default:
		return HouseAdjustment{}
	}
}
