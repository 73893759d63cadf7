package service

import (
	"context"
	"errors"

	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

type positionStore interface {
	Insert(contextValue context.Context, position *model.IndependentPosition) (*model.IndependentPosition, error)
	FindActiveByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) (*model.IndependentPosition, error)
	DeactivateByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) (int64, error)
	ListActiveByZone(contextValue context.Context, zone core.Zone) ([]*model.IndependentPosition, error)
}

// PositionService 自由工作者自己的地圖標記。每位員工同時間最多一筆
// 啟用中；更新一律先收起舊標記再建立新的。
type PositionService struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	positions positionStore
	employees employeeReader
}

func NewPositionService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	positions positionStore,
	employees employeeReader,
) *PositionService {
	return &PositionService{
		logger:    logger,
		trace:     trace,
		positions: positions,
		employees: employees,
	}
}

// SetPosition 停用舊標記失敗就中止，不建新標記，
// 不讓同一員工出現兩筆啟用中的紀錄。
func (s *PositionService) SetPosition(ctx context.Context, employeeID primitive.ObjectID, request *dto.SetPositionDto) (*dto.PositionResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database GetByID error")
	}
	if !employee.IsFreelance {
		return nil, cErr.Forbidden("only freelance workers may set an independent position")
	}

	deactivated, err := s.positions.DeactivateByEmployee(ctx, employeeID)
	if err != nil {
		return nil, cErr.DatabaseError("database DeactivateByEmployee error")
	}
	if deactivated > 0 {
		s.logger.Debug("previous position deactivated",
			zap.String("employeeId", employeeID.Hex()),
			zap.Int64("count", deactivated))
	}

	position := &model.IndependentPosition{
		EmployeeID: employeeID,
		Zone:       request.Zone,
		GridRow:    request.GridRow,
		GridCol:    request.GridCol,
		IsActive:   true,
	}
	created, err := s.positions.Insert(ctx, position)
	if err != nil {
		// partial unique index 擋下併發的第二筆
		if mongo.IsDuplicateKeyError(err) {
			return nil, cErr.PositionAlreadyActive("another active position was created concurrently")
		}
		return nil, cErr.DatabaseError("database Insert position error")
	}
	return modelToPositionResponseDto(created), nil
}

// GetActivePosition 沒有啟用中的標記回 404
func (s *PositionService) GetActivePosition(ctx context.Context, employeeID primitive.ObjectID) (*dto.PositionResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	position, err := s.positions.FindActiveByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("no active position")
		}
		return nil, cErr.DatabaseError("database FindActiveByEmployee error")
	}
	return modelToPositionResponseDto(position), nil
}

// ClearPosition 把標記從地圖上收起來
func (s *PositionService) ClearPosition(ctx context.Context, employeeID primitive.ObjectID) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	if _, err := s.positions.DeactivateByEmployee(ctx, employeeID); err != nil {
		return cErr.DatabaseError("database DeactivateByEmployee error")
	}
	return nil
}

// ListPositionsByZone 地圖分區顯示
func (s *PositionService) ListPositionsByZone(ctx context.Context, zone core.Zone) ([]*dto.PositionResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	positions, err := s.positions.ListActiveByZone(ctx, zone)
	if err != nil {
		return nil, cErr.DatabaseError("database ListActiveByZone error")
	}
	resp := make([]*dto.PositionResponseDto, len(positions))
	for i, position := range positions {
		resp[i] = modelToPositionResponseDto(position)
	}
	return resp, nil
}

func modelToPositionResponseDto(position *model.IndependentPosition) *dto.PositionResponseDto {
	return &dto.PositionResponseDto{
		ID:         position.ID.Hex(),
		EmployeeID: position.EmployeeID.Hex(),
		Zone:       position.Zone,
		GridRow:    position.GridRow,
		GridCol:    position.GridCol,
		IsActive:   position.IsActive,
		CreatedAt:  position.CreatedAt,
		UpdatedAt:  position.UpdatedAt,
	}
}
