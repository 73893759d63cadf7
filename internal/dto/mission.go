package dto

import (
	"time"

	"pattamap/internal/core"
)

type MissionProgressResponseDto struct {
	MissionKey string             `json:"missionKey"`
	Period     core.MissionPeriod `json:"period"`
	Progress   int                `json:"progress"`
	Target     int                `json:"target"`
	Completed  bool               `json:"completed"`
	ResetAt    time.Time          `json:"resetAt"`
}
