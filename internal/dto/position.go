package dto

import (
	"time"

	"pattamap/internal/core"
)

// SetPositionDto 自由工作者更新自己的地圖標記；舊標記會被收起。
type SetPositionDto struct {
	Zone    core.Zone `json:"zone" binding:"required,zone"`
	GridRow int       `json:"gridRow" binding:"min=0"`
	GridCol int       `json:"gridCol" binding:"min=0"`
}

type PositionResponseDto struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Zone       core.Zone `json:"zone"`
	GridRow    int       `json:"gridRow"`
	GridCol    int       `json:"gridCol"`
	IsActive   bool      `json:"isActive"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
