package dto

import (
	"time"

	"pattamap/internal/core"
)

// 建立店家
type CreateEstablishmentDto struct {
	Name     string                     `json:"name" binding:"required"`
	Category core.EstablishmentCategory `json:"category" binding:"required,establishment_category"`
	Zone     core.Zone                  `json:"zone" binding:"required,zone"`
	GridRow  int                        `json:"gridRow" binding:"min=0"`
	GridCol  int                        `json:"gridCol" binding:"min=0"`
}

// 更新店家
type UpdateEstablishmentDto struct {
	Name     *string                     `json:"name,omitempty"`
	Category *core.EstablishmentCategory `json:"category,omitempty" binding:"omitempty,establishment_category"`
	Zone     *core.Zone                  `json:"zone,omitempty" binding:"omitempty,zone"`
	GridRow  *int                        `json:"gridRow,omitempty" binding:"omitempty,min=0"`
	GridCol  *int                        `json:"gridCol,omitempty" binding:"omitempty,min=0"`
	Status   *core.Status                `json:"status,omitempty"`
}

// 店家列表查詢參數
type ListEstablishmentsDto struct {
	Category core.EstablishmentCategory `form:"category" binding:"omitempty,establishment_category"`
	Zone     core.Zone                  `form:"zone" binding:"omitempty,zone"`
	Page     int64                      `form:"page" binding:"omitempty,min=0"`
	Size     int64                      `form:"size" binding:"omitempty,min=1,max=100"`
}

type EstablishmentResponseDto struct {
	ID        string                     `json:"id"`
	Name      string                     `json:"name"`
	Category  core.EstablishmentCategory `json:"category"`
	Zone      core.Zone                  `json:"zone"`
	GridRow   int                        `json:"gridRow"`
	GridCol   int                        `json:"gridCol"`
	Status    core.Status                `json:"status"`
	CreatedAt time.Time                  `json:"createdAt"`
	UpdatedAt time.Time                  `json:"updatedAt"`
}

// 儀表板統計
type DashboardResponseDto struct {
	EstablishmentsByCategory map[core.EstablishmentCategory]int64 `json:"establishmentsByCategory"`
	TotalEstablishments      int64                                `json:"totalEstablishments"`
	TotalEmployees           int64                                `json:"totalEmployees"`
	FreelanceEmployees       int64                                `json:"freelanceEmployees"`
	GeneratedAt              time.Time                            `json:"generatedAt"`
}
