package handler

import (
	"pattamap/internal/dto"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"
	"pattamap/utils/validate"

	"github.com/gin-gonic/gin"
)

type EmploymentHandler struct {
	trace             *telemetry.Trace
	employmentService *service.EmploymentService
	employeeService   *service.EmployeeService
}

func NewEmploymentHandler(
	trace *telemetry.Trace,
	employmentService *service.EmploymentService,
	employeeService *service.EmployeeService,
) *EmploymentHandler {
	return &EmploymentHandler{
		trace:             trace,
		employmentService: employmentService,
		employeeService:   employeeService,
	}
}

// Replace 整批取代掛靠
// @Summary 以傳入清單整批取代員工目前的掛靠（空清單代表全部解除）
// @Tags Employment
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param body body dto.ReplaceAssociationsDto true "店家 ID 清單"
// @Success 200 {object} dto.ReplaceAssociationsResultDto
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{employeeID}/associations [put]
func (h *EmploymentHandler) Replace(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	employeeID, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var req dto.ReplaceAssociationsDto
	if cause, respErr = validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	actor, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}
	if !isStaff(actorRole(c)) {
		if err := h.employeeService.AssertOwner(ctx, employeeID, actor); err != nil {
			response.AbortWithError(c, err)
			return
		}
	}

	result, err := h.employmentService.ReplaceAssociations(ctx, employeeID, &req, actor)
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, result)
}

// ListByEmployee 員工掛靠紀錄
// @Summary 取得員工的掛靠紀錄（current=true 只列目前生效的）
// @Tags Employment
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param current query bool false "只列目前生效"
// @Success 200 {array} dto.EmploymentResponseDto
// @Failure 404 {object} map[string]string
// @Router /employees/{employeeID}/associations [get]
func (h *EmploymentHandler) ListByEmployee(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	employeeID, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	currentOnly := c.Query("current") == "true"
	employments, err := h.employmentService.GetAssociations(ctx, employeeID, currentOnly)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, employments)
}

// ListByEstablishment 店家目前的在籍員工
// @Summary 取得店家目前生效的掛靠
// @Tags Employment
// @Produce json
// @Param establishmentID path string true "Establishment ID"
// @Success 200 {array} dto.EmploymentResponseDto
// @Failure 404 {object} map[string]string
// @Router /establishments/{establishmentID}/employees [get]
func (h *EmploymentHandler) ListByEstablishment(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	establishmentID, cause, respErr := validate.ParseObjectID(c, "establishmentID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	employments, err := h.employmentService.ListCurrentByEstablishment(ctx, establishmentID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, employments)
}
