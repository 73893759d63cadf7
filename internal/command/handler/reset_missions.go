package command

import (
	"context"
	"time"

	"pattamap/internal/core"
	"pattamap/internal/service"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ResetMissionsHandler 手動重置任務進度，與排程走同一條路
type ResetMissionsHandler struct {
	logger         *zap.Logger
	missionService *service.MissionService
}

func NewResetMissionsHandler(logger *zap.Logger, missionService *service.MissionService) *ResetMissionsHandler {
	return &ResetMissionsHandler{
		logger:         logger,
		missionService: missionService,
	}
}

func (handler *ResetMissionsHandler) Reset(cmd *cobra.Command, args []string) error {
	period := core.MissionPeriod(args[0])
	if period != core.MissionPeriodDaily && period != core.MissionPeriodWeekly {
		cmd.PrintErrf("unknown period %q, expected daily or weekly\n", args[0])
		return cmd.Usage()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	count, err := handler.missionService.ResetPeriod(ctx, period, time.Now())
	if err != nil {
		handler.logger.Error("mission reset failed",
			zap.String("period", string(period)),
			zap.Error(err),
		)
		return err
	}

	handler.logger.Info("mission progress reset",
		zap.String("period", string(period)),
		zap.Int64("count", count),
	)
	cmd.Printf("reset %d %s mission progress records\n", count, period)
	return nil
}
