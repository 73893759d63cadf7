package handler

import (
	"pattamap/internal/core"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"
	"pattamap/utils/validate"

	"github.com/gin-gonic/gin"
)

type PositionHandler struct {
	trace           *telemetry.Trace
	positionService *service.PositionService
	employeeService *service.EmployeeService
}

func NewPositionHandler(
	trace *telemetry.Trace,
	positionService *service.PositionService,
	employeeService *service.EmployeeService,
) *PositionHandler {
	return &PositionHandler{
		trace:           trace,
		positionService: positionService,
		employeeService: employeeService,
	}
}

// Set 更新地圖標記
// @Summary 自由工作者更新自己的地圖標記（舊標記自動收起）
// @Tags Position
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param body body dto.SetPositionDto true "標記位置"
// @Success 200 {object} dto.PositionResponseDto
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /employees/{employeeID}/position [put]
func (h *PositionHandler) Set(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	employeeID, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var req dto.SetPositionDto
	if cause, respErr = validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if !isStaff(actorRole(c)) {
		actor, authErr := actorUserID(c)
		if authErr != nil {
			response.AbortWithError(c, authErr)
			return
		}
		if err := h.employeeService.AssertOwner(ctx, employeeID, actor); err != nil {
			response.AbortWithError(c, err)
			return
		}
	}

	position, err := h.positionService.SetPosition(ctx, employeeID, &req)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, position)
}

// Get 目前的地圖標記
// @Summary 取得員工目前生效的地圖標記
// @Tags Position
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.PositionResponseDto
// @Failure 404 {object} map[string]string
// @Router /employees/{employeeID}/position [get]
func (h *PositionHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	employeeID, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	position, err := h.positionService.GetActivePosition(ctx, employeeID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, position)
}

// Clear 收起地圖標記
// @Summary 收起員工目前的地圖標記
// @Tags Position
// @Security BearerAuth
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /employees/{employeeID}/position [delete]
func (h *PositionHandler) Clear(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	employeeID, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if !isStaff(actorRole(c)) {
		actor, authErr := actorUserID(c)
		if authErr != nil {
			response.AbortWithError(c, authErr)
			return
		}
		if err := h.employeeService.AssertOwner(ctx, employeeID, actor); err != nil {
			response.AbortWithError(c, err)
			return
		}
	}

	if err := h.positionService.ClearPosition(ctx, employeeID); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "position cleared")
}

// ListByZone 分區內的標記
// @Summary 取得分區內所有生效中的自由工作者標記
// @Tags Position
// @Produce json
// @Param zone query string true "分區"
// @Success 200 {array} dto.PositionResponseDto
// @Failure 400 {object} map[string]string
// @Router /positions [get]
func (h *PositionHandler) ListByZone(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	zone := c.Query("zone")
	if !validate.IsValidZone(zone) {
		response.AbortWithError(c, cErr.BadRequestParams("unknown zone"))
		return
	}

	positions, err := h.positionService.ListPositionsByZone(ctx, core.Zone(zone))
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, positions)
}
