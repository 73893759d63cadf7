package service

import (
	"context"
	"errors"
	"strconv"

	"pattamap/internal/cache"
	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/model"
	"pattamap/internal/database/mongodb/repository"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// 快取 TTL（秒）。列表比詳情短，類別幾乎不變
const (
	establishmentDetailTTL = 600
	establishmentListTTL   = 300
	categoriesTTL          = 3600
)

type EstablishmentService struct {
	trace             *telemetry.Trace
	cache             *cache.Store
	establishmentRepo *repository.EstablishmentRepository
}

func NewEstablishmentService(
	trace *telemetry.Trace,
	cacheStore *cache.Store,
	establishmentRepo *repository.EstablishmentRepository,
) *EstablishmentService {
	return &EstablishmentService{
		trace:             trace,
		cache:             cacheStore,
		establishmentRepo: establishmentRepo,
	}
}

// 新增店家（管理端）
func (s *EstablishmentService) CreateEstablishment(ctx context.Context, request *dto.CreateEstablishmentDto) (*dto.EstablishmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	establishment := &model.Establishment{
		ID:       primitive.NewObjectID(),
		Name:     request.Name,
		Category: request.Category,
		Zone:     request.Zone,
		GridRow:  request.GridRow,
		GridCol:  request.GridCol,
		Status:   core.StatusActive,
	}
	created, err := s.establishmentRepo.Create(ctx, establishment)
	if err != nil {
		return nil, cErr.DatabaseError("database CreateEstablishment error")
	}
	s.cache.Invalidate(ctx, cache.BuildPattern(string(core.CacheKeyEstablishmentList)))
	s.cache.Delete(ctx, cache.BuildKey(string(core.CacheKeyCategories)))

	return modelToEstablishmentResponseDto(created), nil
}

// 依 id 查詢，cache-aside
func (s *EstablishmentService) GetEstablishmentByID(ctx context.Context, id primitive.ObjectID) (*dto.EstablishmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	cacheKey := cache.BuildKey(string(core.CacheKeyEstablishment), id.Hex())
	var cached dto.EstablishmentResponseDto
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	establishment, err := s.establishmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("establishment not found")
		}
		return nil, cErr.DatabaseError("database GetEstablishmentByID error")
	}

	resp := modelToEstablishmentResponseDto(establishment)
	s.cache.Set(ctx, cacheKey, resp, establishmentDetailTTL)
	return resp, nil
}

// 列表查詢，以 category/zone/page/size 組快取 key
func (s *EstablishmentService) ListEstablishments(ctx context.Context, request *dto.ListEstablishmentsDto) ([]*dto.EstablishmentResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	size := request.Size
	if size == 0 {
		size = 50
	}
	cacheKey := cache.BuildKey(
		string(core.CacheKeyEstablishmentList),
		string(request.Category), string(request.Zone),
		"p"+strconv.FormatInt(request.Page, 10)+"s"+strconv.FormatInt(size, 10),
	)
	var cached []*dto.EstablishmentResponseDto
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	filter := bson.M{"status": core.StatusActive}
	if request.Category != "" {
		filter["category"] = request.Category
	}
	if request.Zone != "" {
		filter["zone"] = request.Zone
	}
	establishments, err := s.establishmentRepo.List(ctx, core.ListOptions{Filter: filter, Page: request.Page, Size: size})
	if err != nil {
		return nil, cErr.DatabaseError("database ListEstablishments error")
	}

	resp := make([]*dto.EstablishmentResponseDto, len(establishments))
	for i, establishment := range establishments {
		resp[i] = modelToEstablishmentResponseDto(establishment)
	}
	s.cache.Set(ctx, cacheKey, resp, establishmentListTTL)
	return resp, nil
}

// 更新店家；詳情與列表快取一併失效
func (s *EstablishmentService) UpdateEstablishmentByID(ctx context.Context, id primitive.ObjectID, request *dto.UpdateEstablishmentDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if request.Name != nil {
		update["name"] = *request.Name
	}
	if request.Category != nil {
		update["category"] = *request.Category
	}
	if request.Zone != nil {
		update["zone"] = *request.Zone
	}
	if request.GridRow != nil {
		update["gridRow"] = *request.GridRow
	}
	if request.GridCol != nil {
		update["gridCol"] = *request.GridCol
	}
	if request.Status != nil {
		update["status"] = *request.Status
	}
	if len(update) == 0 {
		return nil
	}

	matched, err := s.establishmentRepo.UpdateByID(ctx, id, update)
	if err != nil {
		return cErr.DatabaseError("database UpdateEstablishmentByID error")
	}
	if matched == 0 {
		return cErr.NotFound("establishment not found")
	}

	s.cache.Delete(ctx, cache.BuildKey(string(core.CacheKeyEstablishment), id.Hex()))
	s.cache.Invalidate(ctx, cache.BuildPattern(string(core.CacheKeyEstablishmentList)))
	if request.Category != nil {
		s.cache.Delete(ctx, cache.BuildKey(string(core.CacheKeyCategories)))
	}
	return nil
}

// GetCategoryCounts 各類別啟用中店家數，首頁分類籤用
func (s *EstablishmentService) GetCategoryCounts(ctx context.Context) (map[core.EstablishmentCategory]int64, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	cacheKey := cache.BuildKey(string(core.CacheKeyCategories))
	var cached map[core.EstablishmentCategory]int64
	if s.cache.Get(ctx, cacheKey, &cached) {
		return cached, nil
	}

	counts, err := s.establishmentRepo.CountByCategory(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database CountByCategory error")
	}
	// 沒有任何店家的類別補 0，前端不用自己補
	for _, category := range core.Categories {
		if _, present := counts[category]; !present {
			counts[category] = 0
		}
	}
	s.cache.Set(ctx, cacheKey, counts, categoriesTTL)
	return counts, nil
}

func modelToEstablishmentResponseDto(establishment *model.Establishment) *dto.EstablishmentResponseDto {
	return &dto.EstablishmentResponseDto{
		ID:        establishment.ID.Hex(),
		Name:      establishment.Name,
		Category:  establishment.Category,
		Zone:      establishment.Zone,
		GridRow:   establishment.GridRow,
		GridCol:   establishment.GridCol,
		Status:    establishment.Status,
		CreatedAt: establishment.CreatedAt,
		UpdatedAt: establishment.UpdatedAt,
	}
}
