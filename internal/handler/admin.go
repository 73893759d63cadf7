package handler

import (
	"pattamap/internal/dto"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"
	"pattamap/utils/validate"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	trace                *telemetry.Trace
	dashboardService     *service.DashboardService
	employeeService      *service.EmployeeService
	establishmentService *service.EstablishmentService
}

func NewAdminHandler(
	trace *telemetry.Trace,
	dashboardService *service.DashboardService,
	employeeService *service.EmployeeService,
	establishmentService *service.EstablishmentService,
) *AdminHandler {
	return &AdminHandler{
		trace:                trace,
		dashboardService:     dashboardService,
		employeeService:      employeeService,
		establishmentService: establishmentService,
	}
}

// Dashboard 營運統計
// @Summary 取得儀表板統計（5 分鐘快取）
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Success 200 {object} dto.DashboardResponseDto
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	dashboard, err := h.dashboardService.GetDashboard(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, dashboard)
}

// VerifyEmployee 審核員工檔案
// @Summary 審核員工檔案（approve=false 代表退回）
// @Tags Admin
// @Security BearerAuth
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param approve query bool true "是否通過"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/employees/{employeeID}/verify [patch]
func (h *AdminHandler) VerifyEmployee(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	approved := c.Query("approve") == "true"
	if err := h.employeeService.VerifyEmployee(ctx, id, approved); err != nil {
		response.AbortWithError(c, err)
		return
	}
	if approved {
		response.Success(c, "employee approved")
		return
	}
	response.Success(c, "employee rejected")
}

// CreateEstablishment 新增店家
// @Summary 新增店家
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateEstablishmentDto true "店家資訊"
// @Success 201 {object} dto.EstablishmentResponseDto
// @Failure 400 {object} map[string]string
// @Router /admin/establishments [post]
func (h *AdminHandler) CreateEstablishment(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateEstablishmentDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	establishment, err := h.establishmentService.CreateEstablishment(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, establishment)
}

// UpdateEstablishment 更新店家
// @Summary 更新店家欄位
// @Tags Admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param establishmentID path string true "Establishment ID"
// @Param body body dto.UpdateEstablishmentDto true "更新欄位"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/establishments/{establishmentID} [patch]
func (h *AdminHandler) UpdateEstablishment(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "establishmentID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var req dto.UpdateEstablishmentDto
	if cause, respErr = validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	if err := h.establishmentService.UpdateEstablishmentByID(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "establishment updated successfully")
}
