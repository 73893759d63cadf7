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

type EstablishmentHandler struct {
	trace                *telemetry.Trace
	establishmentService *service.EstablishmentService
}

func NewEstablishmentHandler(trace *telemetry.Trace, establishmentService *service.EstablishmentService) *EstablishmentHandler {
	return &EstablishmentHandler{trace: trace, establishmentService: establishmentService}
}

// List 店家列表
// @Summary 取得店家列表（可依分類與分區篩選）
// @Tags Establishment
// @Produce json
// @Param category query string false "分類"
// @Param zone query string false "分區"
// @Param page query int false "頁碼"
// @Param size query int false "每頁筆數"
// @Success 200 {array} dto.EstablishmentResponseDto
// @Failure 400 {object} map[string]string
// @Router /establishments [get]
func (h *EstablishmentHandler) List(c *gin.Context) {
	ctx, span, end := h.trace.WithSpan(c)
	defer end(nil)

	req := dto.ListEstablishmentsDto{
		Category: core.EstablishmentCategory(c.Query("category")),
		Zone:     core.Zone(c.Query("zone")),
		Page:     getInt64Query(c, "page", 0),
		Size:     getInt64Query(c, "size", 50),
	}
	if req.Category != "" && !validate.IsValidCategory(string(req.Category)) {
		response.AbortWithError(c, cErr.BadRequestParams("unknown category"))
		return
	}
	if req.Zone != "" && !validate.IsValidZone(string(req.Zone)) {
		response.AbortWithError(c, cErr.BadRequestParams("unknown zone"))
		return
	}

	establishments, err := h.establishmentService.ListEstablishments(ctx, &req)
	filter := map[string]any{}
	if req.Category != "" {
		filter["category"] = string(req.Category)
	}
	if req.Zone != "" {
		filter["zone"] = string(req.Zone)
	}
	h.trace.ApplyTraceAttributes(span, core.TraceListMeta{
		Page:        req.Page,
		Size:        req.Size,
		Filter:      filter,
		ResultCount: len(establishments),
	})
	if err != nil {
		end(err)
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, establishments)
}

// Get 店家詳情
// @Summary 取得單一店家
// @Tags Establishment
// @Produce json
// @Param establishmentID path string true "Establishment ID"
// @Success 200 {object} dto.EstablishmentResponseDto
// @Failure 404 {object} map[string]string
// @Router /establishments/{establishmentID} [get]
func (h *EstablishmentHandler) Get(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	id, cause, respErr := validate.ParseObjectID(c, "establishmentID")
	if cause != nil {
		end(cause)
		response.AbortWithError(c, respErr)
		return
	}

	establishment, err := h.establishmentService.GetEstablishmentByID(ctx, id)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, establishment)
}

// Categories 各分類店家數
// @Summary 取得各分類的店家統計
// @Tags Establishment
// @Produce json
// @Success 200 {object} map[string]int64
// @Router /establishments/categories [get]
func (h *EstablishmentHandler) Categories(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	counts, err := h.establishmentService.GetCategoryCounts(ctx)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, counts)
}
