package service

import (
	"context"
	"time"

	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type missionStore interface {
	ResetByPeriod(contextValue context.Context, period core.MissionPeriod, resetAt time.Time) (int64, error)
	ListByUser(contextValue context.Context, userIdentifier primitive.ObjectID) ([]*model.MissionProgress, error)
	IncrementProgress(contextValue context.Context, userIdentifier primitive.ObjectID, missionKey string, period core.MissionPeriod, target int) (*model.MissionProgress, error)
	MarkCompleted(contextValue context.Context, progressIdentifier primitive.ObjectID) error
}

type missionNotifier interface {
	NotifyMany(contextValue context.Context, userIDs []primitive.ObjectID, notificationType core.NotificationType, i18nKey string, i18nParams map[string]string, relatedID primitive.ObjectID)
}

// MissionService VIP 任務進度。重置由排程與管理指令觸發。
type MissionService struct {
	logger   *zap.Logger
	trace    *telemetry.Trace
	missions missionStore
	notifier missionNotifier
}

func NewMissionService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	missions missionStore,
	notifier missionNotifier,
) *MissionService {
	return &MissionService{
		logger:   logger,
		trace:    trace,
		missions: missions,
		notifier: notifier,
	}
}

// ResetPeriod 清掉指定週期所有用戶的進度，回傳重置筆數
func (s *MissionService) ResetPeriod(ctx context.Context, period core.MissionPeriod, firedAt time.Time) (int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	count, err := s.missions.ResetByPeriod(ctx, period, firedAt.UTC())
	if err != nil {
		return 0, err
	}
	s.logger.Info("mission progress reset",
		zap.String("period", string(period)),
		zap.Int64("count", count))
	return count, nil
}

// GetProgress 用戶任務進度
func (s *MissionService) GetProgress(ctx context.Context, userID primitive.ObjectID) ([]*dto.MissionProgressResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	progresses, err := s.missions.ListByUser(ctx, userID)
	if err != nil {
		return nil, cErr.DatabaseError("database ListByUser error")
	}
	resp := make([]*dto.MissionProgressResponseDto, len(progresses))
	for i, progress := range progresses {
		resp[i] = modelToMissionProgressResponseDto(progress)
	}
	return resp, nil
}

// TrackProgress 進度 +1；第一次達標時標記完成並通知用戶
func (s *MissionService) TrackProgress(ctx context.Context, userID primitive.ObjectID, missionKey string, period core.MissionPeriod, target int) (*dto.MissionProgressResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	progress, err := s.missions.IncrementProgress(ctx, userID, missionKey, period, target)
	if err != nil {
		return nil, cErr.DatabaseError("database IncrementProgress error")
	}

	if !progress.Completed && progress.Progress >= progress.Target {
		if err = s.missions.MarkCompleted(ctx, progress.ID); err != nil {
			return nil, cErr.DatabaseError("database MarkCompleted error")
		}
		progress.Completed = true
		s.notifier.NotifyMany(ctx, []primitive.ObjectID{userID}, core.NotificationMissionComplete,
			"notification.mission.complete",
			map[string]string{"missionKey": missionKey}, progress.ID)
	}
	return modelToMissionProgressResponseDto(progress), nil
}

func modelToMissionProgressResponseDto(progress *model.MissionProgress) *dto.MissionProgressResponseDto {
	resp := &dto.MissionProgressResponseDto{
		MissionKey: progress.MissionKey,
		Period:     progress.Period,
		Progress:   progress.Progress,
		Target:     progress.Target,
		Completed:  progress.Completed,
	}
	if progress.ResetAt != nil {
		resp.ResetAt = *progress.ResetAt
	}
	return resp
}
