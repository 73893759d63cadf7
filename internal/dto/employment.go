package dto

import (
	"time"

	"pattamap/internal/pkg/request"
)

// ReplaceAssociationsDto 以傳入清單整批取代員工目前的掛靠。
// 空清單代表解除所有掛靠。
type ReplaceAssociationsDto struct {
	EstablishmentIDs []string `json:"establishmentIds" binding:"required,dive,required"`
}

func (dto *ReplaceAssociationsDto) GetMessages() request.ValidatorMessages {
	return request.ValidatorMessages{
		"EstablishmentIDs.required":   "establishmentIds is required; send an empty list to clear all associations",
		"EstablishmentIDs.*.required": "establishmentIds entries must be non-empty ids",
	}
}

type EmploymentResponseDto struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employeeId"`
	EstablishmentID string     `json:"establishmentId"`
	IsCurrent       bool       `json:"isCurrent"`
	StartDate       time.Time  `json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// ReplaceAssociationsResultDto 回報一次取代動作的結果
type ReplaceAssociationsResultDto struct {
	Deactivated int64                   `json:"deactivated"`
	Created     []EmploymentResponseDto `json:"created"`
}
