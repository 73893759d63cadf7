package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pattamap/internal/cache"
	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// 聘僱關聯的資料存取介面，方便在測試裡以假物件替換
type employmentStore interface {
	Insert(contextValue context.Context, employment *model.Employment) (*model.Employment, error)
	FindCurrentByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID) ([]*model.Employment, error)
	DeactivateCurrentByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID, endDate time.Time) (int64, error)
	ListByEmployee(contextValue context.Context, employeeIdentifier primitive.ObjectID, currentOnly bool) ([]*model.Employment, error)
	ListCurrentByEstablishment(contextValue context.Context, establishmentIdentifier primitive.ObjectID) ([]*model.Employment, error)
}

type employeeReader interface {
	GetByID(contextValue context.Context, employeeIdentifier primitive.ObjectID) (*model.Employee, error)
}

type establishmentReader interface {
	GetByIDs(contextValue context.Context, establishmentIdentifiers []primitive.ObjectID) ([]*model.Establishment, error)
}

// 掛靠變動後對追蹤者發通知用
type followerNotifier interface {
	NotifyFollowers(contextValue context.Context, employeeIdentifier primitive.ObjectID, notificationType core.NotificationType, i18nKey string, i18nParams map[string]string)
}

// 掛靠變動後要失效的快取
type cacheInvalidator interface {
	Delete(contextValue context.Context, keys ...string)
	Invalidate(contextValue context.Context, pattern string)
}

type EmploymentService struct {
	logger         *zap.Logger
	trace          *telemetry.Trace
	metric         *telemetry.Metric
	employments    employmentStore
	employees      employeeReader
	establishments establishmentReader
	notifier       followerNotifier
	cache          cacheInvalidator
	now            func() time.Time
}

func NewEmploymentService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	employments employmentStore,
	employees employeeReader,
	establishments establishmentReader,
	notifier followerNotifier,
	cacheStore cacheInvalidator,
) *EmploymentService {
	return &EmploymentService{
		logger:         logger,
		trace:          trace,
		metric:         metric,
		employments:    employments,
		employees:      employees,
		establishments: establishments,
		notifier:       notifier,
		cache:          cacheStore,
		now:            time.Now,
	}
}

// ValidateAssociationRules 檢查一批目標店家對此員工是否全部合法。
// 規則：
//   - 一般員工最多掛靠一間店
//   - 自由工作者可掛靠多間，但僅限 Nightclub 類別
//   - 目標店家必須存在且為 active
//   - 清單內不得重複
//
// 只要有一筆不合法，整批拒絕，完全不動資料。
func (s *EmploymentService) ValidateAssociationRules(
	employee *model.Employee,
	establishments []*model.Establishment,
	requestedIDs []primitive.ObjectID,
) error {

	if len(requestedIDs) == 0 {
		return nil
	}

	seen := make(map[primitive.ObjectID]struct{}, len(requestedIDs))
	for _, id := range requestedIDs {
		if _, duplicated := seen[id]; duplicated {
			s.countReject("duplicate")
			return cErr.DuplicateAssociation(fmt.Sprintf("establishment %s requested more than once", id.Hex()))
		}
		seen[id] = struct{}{}
	}

	byID := make(map[primitive.ObjectID]*model.Establishment, len(establishments))
	for _, establishment := range establishments {
		byID[establishment.ID] = establishment
	}

	var invalid []string
	for _, id := range requestedIDs {
		establishment, found := byID[id]
		if !found {
			s.countReject("not_found")
			return cErr.NotFound(fmt.Sprintf("establishment %s not found", id.Hex()))
		}
		if establishment.Status != core.StatusActive {
			s.countReject("inactive")
			return cErr.EstablishmentNotActive(fmt.Sprintf("establishment %q is not active", establishment.Name))
		}
		if employee.IsFreelance && establishment.Category != core.PrivilegedCategory {
			invalid = append(invalid, fmt.Sprintf("%s (%s)", establishment.Name, establishment.Category))
		}
	}
	if len(invalid) > 0 {
		s.countReject("category")
		return cErr.CategoryNotAllowed(fmt.Sprintf("freelance workers may only associate with %s establishments, invalid: %s", core.PrivilegedCategory, strings.Join(invalid, ", ")))
	}

	if !employee.IsFreelance && len(requestedIDs) > 1 {
		s.countReject("limit")
		return cErr.AssociationLimitExceeded("regular employees may hold at most one association")
	}
	return nil
}

// ReplaceAssociations 以傳入清單整批取代員工目前掛靠。
// 先全數驗證，再停用舊紀錄，最後逐筆建立新紀錄；
// 停用失敗即中止，不建立任何新紀錄。
func (s *EmploymentService) ReplaceAssociations(
	ctx context.Context,
	employeeID primitive.ObjectID,
	request *dto.ReplaceAssociationsDto,
	actorUserID primitive.ObjectID,
) (*dto.ReplaceAssociationsResultDto, error) {

	ctx, span, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database GetByID error")
	}

	requestedIDs := make([]primitive.ObjectID, 0, len(request.EstablishmentIDs))
	for _, raw := range request.EstablishmentIDs {
		id, parseError := primitive.ObjectIDFromHex(raw)
		if parseError != nil {
			return nil, cErr.BadRequestBody(fmt.Sprintf("invalid establishment id %q", raw))
		}
		requestedIDs = append(requestedIDs, id)
	}

	meta := core.TraceAssociationMeta{
		EmployeeID:     employeeID.Hex(),
		IsFreelance:    employee.IsFreelance,
		RequestedCount: len(requestedIDs),
	}

	var establishments []*model.Establishment
	if len(requestedIDs) > 0 {
		establishments, err = s.establishments.GetByIDs(ctx, requestedIDs)
		if err != nil {
			return nil, cErr.DatabaseError("database GetByIDs error")
		}
	}

	if err = s.ValidateAssociationRules(employee, establishments, requestedIDs); err != nil {
		errText := err.Error()
		meta.Error = &errText
		s.trace.ApplyTraceAttributes(span, meta)
		return nil, err
	}

	deactivated, err := s.employments.DeactivateCurrentByEmployee(ctx, employeeID, s.now().UTC())
	if err != nil {
		s.countSwap("deactivate_failed")
		return nil, cErr.DatabaseError("database DeactivateCurrentByEmployee error")
	}
	meta.DeactivatedCount = deactivated

	result := &dto.ReplaceAssociationsResultDto{Deactivated: deactivated}
	for _, establishmentID := range requestedIDs {
		employment := &model.Employment{
			EmployeeID:      employeeID,
			EstablishmentID: establishmentID,
			IsCurrent:       true,
			StartDate:       s.now().UTC(),
			CreatedByUserID: actorUserID,
		}
		created, insertError := s.employments.Insert(ctx, employment)
		if insertError != nil {
			// 舊紀錄已停用、部分新紀錄已寫入；記 error 讓呼叫端重送整批清單即可復原
			s.countSwap("partial_failure")
			s.logger.Error("association insert failed mid-replace",
				zap.String("employeeId", employeeID.Hex()),
				zap.String("establishmentId", establishmentID.Hex()),
				zap.Error(insertError))
			return nil, cErr.DatabaseError("database Insert employment error")
		}
		result.Created = append(result.Created, *modelToEmploymentResponseDto(created))
	}
	meta.InsertedCount = len(result.Created)
	s.trace.ApplyTraceAttributes(span, meta)
	s.countSwap("success")

	s.invalidateAssociationCaches(ctx, requestedIDs)
	s.notifier.NotifyFollowers(ctx, employeeID, core.NotificationFollowerUpdate,
		"notification.follower.associationChanged",
		map[string]string{"nickname": employee.Nickname})

	return result, nil
}

// GetAssociations 員工掛靠紀錄；currentOnly=true 只回現行掛靠
func (s *EmploymentService) GetAssociations(ctx context.Context, employeeID primitive.ObjectID, currentOnly bool) ([]*dto.EmploymentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employments, err := s.employments.ListByEmployee(ctx, employeeID, currentOnly)
	if err != nil {
		return nil, cErr.DatabaseError("database ListByEmployee error")
	}
	resp := make([]*dto.EmploymentResponseDto, len(employments))
	for i, employment := range employments {
		resp[i] = modelToEmploymentResponseDto(employment)
	}
	return resp, nil
}

// GetActivePrivilegedAssociations 回傳現行掛靠中屬於 Nightclub 類別的那些。
// 自由工作者個人頁的「駐店清單」只顯示這一批。
func (s *EmploymentService) GetActivePrivilegedAssociations(ctx context.Context, employeeID primitive.ObjectID) ([]*dto.EmploymentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employments, err := s.employments.FindCurrentByEmployee(ctx, employeeID)
	if err != nil {
		return nil, cErr.DatabaseError("database FindCurrentByEmployee error")
	}
	if len(employments) == 0 {
		return []*dto.EmploymentResponseDto{}, nil
	}

	establishmentIDs := make([]primitive.ObjectID, len(employments))
	for i, employment := range employments {
		establishmentIDs[i] = employment.EstablishmentID
	}
	establishments, err := s.establishments.GetByIDs(ctx, establishmentIDs)
	if err != nil {
		return nil, cErr.DatabaseError("database GetByIDs error")
	}
	privileged := make(map[primitive.ObjectID]bool, len(establishments))
	for _, establishment := range establishments {
		privileged[establishment.ID] = establishment.Category == core.PrivilegedCategory
	}

	resp := make([]*dto.EmploymentResponseDto, 0, len(employments))
	for _, employment := range employments {
		if privileged[employment.EstablishmentID] {
			resp = append(resp, modelToEmploymentResponseDto(employment))
		}
	}
	return resp, nil
}

// ListCurrentByEstablishment 店家頁側邊欄：目前掛靠在此店的聘僱紀錄
func (s *EmploymentService) ListCurrentByEstablishment(ctx context.Context, establishmentID primitive.ObjectID) ([]*dto.EmploymentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employments, err := s.employments.ListCurrentByEstablishment(ctx, establishmentID)
	if err != nil {
		return nil, cErr.DatabaseError("database ListCurrentByEstablishment error")
	}
	resp := make([]*dto.EmploymentResponseDto, len(employments))
	for i, employment := range employments {
		resp[i] = modelToEmploymentResponseDto(employment)
	}
	return resp, nil
}

// 掛靠變動會影響店家詳情頁與列表頁
func (s *EmploymentService) invalidateAssociationCaches(ctx context.Context, establishmentIDs []primitive.ObjectID) {
	keys := make([]string, len(establishmentIDs))
	for i, id := range establishmentIDs {
		keys[i] = cache.BuildKey(string(core.CacheKeyEstablishment), id.Hex())
	}
	s.cache.Delete(ctx, keys...)
	s.cache.Invalidate(ctx, cache.BuildPattern(string(core.CacheKeyEstablishmentList)))
}

func (s *EmploymentService) countSwap(status string) {
	if s.metric != nil && s.metric.AssociationSwapTotal != nil {
		s.metric.AssociationSwapTotal.WithLabelValues(status).Inc()
	}
}

func (s *EmploymentService) countReject(reason string) {
	if s.metric != nil && s.metric.AssociationRejectTotal != nil {
		s.metric.AssociationRejectTotal.WithLabelValues(reason).Inc()
	}
}

func modelToEmploymentResponseDto(employment *model.Employment) *dto.EmploymentResponseDto {
	return &dto.EmploymentResponseDto{
		ID:              employment.ID.Hex(),
		EmployeeID:      employment.EmployeeID.Hex(),
		EstablishmentID: employment.EstablishmentID.Hex(),
		IsCurrent:       employment.IsCurrent,
		StartDate:       employment.StartDate,
		EndDate:         employment.EndDate,
		CreatedAt:       employment.CreatedAt,
	}
}
