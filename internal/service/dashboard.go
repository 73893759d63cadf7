package service

import (
	"context"
	"time"

	"pattamap/internal/cache"
	"pattamap/internal/core"
	"pattamap/internal/database/mongodb/repository"
	"pattamap/internal/dto"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
)

const dashboardTTL = 300

// DashboardService 管理端統計。聚合相對昂貴，結果進快取。
type DashboardService struct {
	trace             *telemetry.Trace
	cache             *cache.Store
	establishmentRepo *repository.EstablishmentRepository
	employeeRepo      *repository.EmployeeRepository
}

func NewDashboardService(
	trace *telemetry.Trace,
	cacheStore *cache.Store,
	establishmentRepo *repository.EstablishmentRepository,
	employeeRepo *repository.EmployeeRepository,
) *DashboardService {
	return &DashboardService{
		trace:             trace,
		cache:             cacheStore,
		establishmentRepo: establishmentRepo,
		employeeRepo:      employeeRepo,
	}
}

func (s *DashboardService) GetDashboard(ctx context.Context) (*dto.DashboardResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	cacheKey := cache.BuildKey(string(core.CacheKeyDashboard))
	var cached dto.DashboardResponseDto
	if s.cache.Get(ctx, cacheKey, &cached) {
		return &cached, nil
	}

	byCategory, err := s.establishmentRepo.CountByCategory(ctx)
	if err != nil {
		return nil, cErr.DatabaseError("database CountByCategory error")
	}
	var totalEstablishments int64
	for _, count := range byCategory {
		totalEstablishments += count
	}

	totalEmployees, err := s.employeeRepo.CountByFilter(ctx, bson.M{"status": core.StatusActive})
	if err != nil {
		return nil, cErr.DatabaseError("database CountByFilter error")
	}
	freelanceEmployees, err := s.employeeRepo.CountByFilter(ctx, bson.M{"status": core.StatusActive, "isFreelance": true})
	if err != nil {
		return nil, cErr.DatabaseError("database CountByFilter error")
	}

	resp := &dto.DashboardResponseDto{
		EstablishmentsByCategory: byCategory,
		TotalEstablishments:      totalEstablishments,
		TotalEmployees:           totalEmployees,
		FreelanceEmployees:       freelanceEmployees,
		GeneratedAt:              time.Now().UTC(),
	}
	s.cache.Set(ctx, cacheKey, resp, dashboardTTL)
	return resp, nil
}
