package dto

import (
	"time"

	"pattamap/internal/core"
)

// 建立員工檔案
type CreateEmployeeDto struct {
	Nickname    string `json:"nickname" binding:"required,max=64"`
	Bio         string `json:"bio,omitempty" binding:"omitempty,max=500"`
	PhotoURL    string `json:"photoUrl,omitempty" binding:"omitempty,url"`
	IsFreelance bool   `json:"isFreelance"`
}

// 更新員工檔案。isFreelance 的切換受目前聘僱關聯限制，
// 先清掉不符規則的關聯才能換身分。
type UpdateEmployeeDto struct {
	Nickname    *string `json:"nickname,omitempty" binding:"omitempty,max=64"`
	Bio         *string `json:"bio,omitempty" binding:"omitempty,max=500"`
	PhotoURL    *string `json:"photoUrl,omitempty" binding:"omitempty,url"`
	IsFreelance *bool   `json:"isFreelance,omitempty"`
}

// 員工列表查詢參數
type ListEmployeesDto struct {
	Freelance *bool `form:"freelance"`
	Page      int64 `form:"page" binding:"omitempty,min=0"`
	Size      int64 `form:"size" binding:"omitempty,min=1,max=100"`
}

type EmployeeResponseDto struct {
	ID          string      `json:"id"`
	Nickname    string      `json:"nickname"`
	Bio         string      `json:"bio,omitempty"`
	PhotoURL    string      `json:"photoUrl,omitempty"`
	IsFreelance bool        `json:"isFreelance"`
	IsVerified  bool        `json:"isVerified"`
	Status      core.Status `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	// 目前掛靠的店家（查詢時帶出）
	CurrentEstablishments []EstablishmentResponseDto `json:"currentEstablishments,omitempty"`
}
