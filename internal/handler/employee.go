package handler

import (
	"pattamap/internal/dto"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"
	"pattamap/utils/validate"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	trace           *telemetry.Trace
	employeeService *service.EmployeeService
}

func NewEmployeeHandler(trace *telemetry.Trace, employeeService *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{trace: trace, employeeService: employeeService}
}

// Create 建立員工檔案
// @Summary 建立員工檔案（綁定目前登入帳號，狀態 pending 待審核）
// @Tags Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body dto.CreateEmployeeDto true "員工資訊"
// @Success 201 {object} dto.EmployeeResponseDto
// @Failure 400 {object} map[string]string
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	var req dto.CreateEmployeeDto
	if cause, respErr := validate.BindAndValidate(c, &req); cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	owner, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	employee, err := h.employeeService.CreateEmployee(ctx, &req, &owner)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Create(c, employee)
}

// Get 員工詳情
// @Summary 取得員工檔案，含目前掛靠的店家
// @Tags Employee
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Success 200 {object} dto.EmployeeResponseDto
// @Failure 404 {object} map[string]string
// @Router /employees/{employeeID} [get]
func (h *EmployeeHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	employee, err := h.employeeService.GetEmployeeByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, employee)
}

// List 員工列表
// @Summary 取得員工列表（可篩選自由工作者）
// @Tags Employee
// @Produce json
// @Param freelance query bool false "只列自由工作者"
// @Param page query int false "頁碼"
// @Param size query int false "每頁筆數"
// @Success 200 {array} dto.EmployeeResponseDto
// @Router /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	req := dto.ListEmployeesDto{
		Page: getInt64Query(c, "page", 0),
		Size: getInt64Query(c, "size", 20),
	}
	if v := c.Query("freelance"); v != "" {
		freelance := v == "true"
		req.Freelance = &freelance
	}

	employees, err := h.employeeService.ListEmployees(ctx, &req)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, employees)
}

// Update 更新員工檔案
// @Summary 更新員工檔案（限本人或管理員）
// @Tags Employee
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param employeeID path string true "Employee ID"
// @Param body body dto.UpdateEmployeeDto true "更新欄位"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /employees/{employeeID} [patch]
func (h *EmployeeHandler) Update(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "employeeID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	var req dto.UpdateEmployeeDto
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
		if err := h.employeeService.AssertOwner(ctx, id, actor); err != nil {
			response.AbortWithError(c, err)
			return
		}
	}

	if err := h.employeeService.UpdateEmployeeByID(ctx, id, &req); err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, "employee updated successfully")
}
