package handler

import (
	"pattamap/internal/core"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/pkg/response"
	"pattamap/internal/service"
	"pattamap/internal/telemetry"

	"github.com/gin-gonic/gin"
)

type MissionHandler struct {
	trace          *telemetry.Trace
	missionService *service.MissionService
}

func NewMissionHandler(trace *telemetry.Trace, missionService *service.MissionService) *MissionHandler {
	return &MissionHandler{trace: trace, missionService: missionService}
}

// GetProgress 自己的任務進度
// @Summary 取得自己本期的任務進度
// @Tags Mission
// @Security BearerAuth
// @Produce json
// @Success 200 {array} dto.MissionProgressResponseDto
// @Router /missions [get]
func (h *MissionHandler) GetProgress(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	userID, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	progress, err := h.missionService.GetProgress(ctx, userID)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, progress)
}

// Track 回報任務進度
// @Summary 回報一次任務進度（達標時自動發完成通知）
// @Tags Mission
// @Security BearerAuth
// @Produce json
// @Param missionKey path string true "任務代號"
// @Success 200 {object} dto.MissionProgressResponseDto
// @Failure 404 {object} map[string]string
// @Router /missions/{missionKey}/track [post]
func (h *MissionHandler) Track(c *gin.Context) {
	ctx, _, end := h.trace.WithSpan(c)
	defer end(nil)

	userID, authErr := actorUserID(c)
	if authErr != nil {
		response.AbortWithError(c, authErr)
		return
	}

	mission, ok := core.MissionByKey(c.Param("missionKey"))
	if !ok {
		response.AbortWithError(c, cErr.NotFound("unknown mission"))
		return
	}

	progress, err := h.missionService.TrackProgress(ctx, userID, mission.Key, mission.Period, mission.Target)
	if err != nil {
		response.AbortWithError(c, err)
		return
	}
	response.Success(c, progress)
}
