package service

import (
	"context"
	"errors"

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

type EmployeeService struct {
	trace             *telemetry.Trace
	employeeRepo      *repository.EmployeeRepository
	employmentRepo    *repository.EmploymentRepository
	establishmentRepo *repository.EstablishmentRepository
	notifier          *NotificationService
}

func NewEmployeeService(
	trace *telemetry.Trace,
	employeeRepo *repository.EmployeeRepository,
	employmentRepo *repository.EmploymentRepository,
	establishmentRepo *repository.EstablishmentRepository,
	notifier *NotificationService,
) *EmployeeService {
	return &EmployeeService{
		trace:             trace,
		employeeRepo:      employeeRepo,
		employmentRepo:    employmentRepo,
		establishmentRepo: establishmentRepo,
		notifier:          notifier,
	}
}

// 建立員工檔案，初始狀態 pending 等審核
func (s *EmployeeService) CreateEmployee(ctx context.Context, request *dto.CreateEmployeeDto, ownerUserID *primitive.ObjectID) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee := &model.Employee{
		ID:          primitive.NewObjectID(),
		Nickname:    request.Nickname,
		Bio:         request.Bio,
		PhotoURL:    request.PhotoURL,
		IsFreelance: request.IsFreelance,
		Status:      core.StatusPending,
		OwnerUserID: ownerUserID,
	}
	created, err := s.employeeRepo.Create(ctx, employee)
	if err != nil {
		return nil, cErr.DatabaseError("database CreateEmployee error")
	}
	s.notifier.NotifyAdmins(ctx, core.NotificationAdminAlert,
		"notification.admin.employeePending",
		map[string]string{"nickname": created.Nickname})

	return modelToEmployeeResponseDto(created), nil
}

// 員工詳情，帶出目前掛靠的店家
func (s *EmployeeService) GetEmployeeByID(ctx context.Context, id primitive.ObjectID) (*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cErr.NotFound("employee not found")
		}
		return nil, cErr.DatabaseError("database GetEmployeeByID error")
	}
	resp := modelToEmployeeResponseDto(employee)

	employments, err := s.employmentRepo.FindCurrentByEmployee(ctx, id)
	if err != nil {
		return nil, cErr.DatabaseError("database FindCurrentByEmployee error")
	}
	if len(employments) > 0 {
		establishmentIDs := make([]primitive.ObjectID, len(employments))
		for i, employment := range employments {
			establishmentIDs[i] = employment.EstablishmentID
		}
		establishments, err := s.establishmentRepo.GetByIDs(ctx, establishmentIDs)
		if err != nil {
			return nil, cErr.DatabaseError("database GetByIDs error")
		}
		resp.CurrentEstablishments = make([]dto.EstablishmentResponseDto, len(establishments))
		for i, establishment := range establishments {
			resp.CurrentEstablishments[i] = *modelToEstablishmentResponseDto(establishment)
		}
	}
	return resp, nil
}

// 員工列表
func (s *EmployeeService) ListEmployees(ctx context.Context, request *dto.ListEmployeesDto) ([]*dto.EmployeeResponseDto, error) {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	size := request.Size
	if size == 0 {
		size = 50
	}
	filter := bson.M{"status": core.StatusActive}
	if request.Freelance != nil {
		filter["isFreelance"] = *request.Freelance
	}
	employees, err := s.employeeRepo.List(ctx, core.ListOptions{Filter: filter, Page: request.Page, Size: size})
	if err != nil {
		return nil, cErr.DatabaseError("database ListEmployees error")
	}
	resp := make([]*dto.EmployeeResponseDto, len(employees))
	for i, employee := range employees {
		resp[i] = modelToEmployeeResponseDto(employee)
	}
	return resp, nil
}

// 更新員工檔案
func (s *EmployeeService) UpdateEmployeeByID(ctx context.Context, id primitive.ObjectID, request *dto.UpdateEmployeeDto) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	update := bson.M{}
	if request.Nickname != nil {
		update["nickname"] = *request.Nickname
	}
	if request.Bio != nil {
		update["bio"] = *request.Bio
	}
	if request.PhotoURL != nil {
		update["photoUrl"] = *request.PhotoURL
	}
	if request.IsFreelance != nil {
		if err := s.assertConvertible(ctx, id, *request.IsFreelance); err != nil {
			return err
		}
		update["isFreelance"] = *request.IsFreelance
	}
	if len(update) == 0 {
		return nil
	}

	matched, err := s.employeeRepo.UpdateByID(ctx, id, update)
	if err != nil {
		return cErr.DatabaseError("database UpdateEmployeeByID error")
	}
	if matched == 0 {
		return cErr.NotFound("employee not found")
	}
	return nil
}

// assertConvertible 身分切換前檢查目前的聘僱關聯：
// 轉自由工作者時既有關聯必須全部屬於特許分類；
// 轉一般員工時最多只能保留一筆關聯。
func (s *EmployeeService) assertConvertible(ctx context.Context, id primitive.ObjectID, toFreelance bool) error {
	employments, err := s.employmentRepo.FindCurrentByEmployee(ctx, id)
	if err != nil {
		return cErr.DatabaseError("database FindCurrentByEmployee error")
	}
	if len(employments) == 0 {
		return nil
	}

	if !toFreelance {
		if len(employments) > 1 {
			return cErr.AssociationLimitExceeded("clear extra associations before becoming a regular employee")
		}
		return nil
	}

	establishmentIDs := make([]primitive.ObjectID, len(employments))
	for i, employment := range employments {
		establishmentIDs[i] = employment.EstablishmentID
	}
	establishments, err := s.establishmentRepo.GetByIDs(ctx, establishmentIDs)
	if err != nil {
		return cErr.DatabaseError("database GetByIDs error")
	}
	for _, establishment := range establishments {
		if establishment.Category != core.PrivilegedCategory {
			return cErr.CategoryNotAllowed("current association with " + establishment.Name + " blocks the freelance switch")
		}
	}
	return nil
}

// AssertOwner 檢查操作者是否為該員工檔案的綁定帳號
func (s *EmployeeService) AssertOwner(ctx context.Context, employeeID, userID primitive.ObjectID) error {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("employee not found")
		}
		return cErr.DatabaseError("database GetEmployeeByID error")
	}
	if employee.OwnerUserID == nil || *employee.OwnerUserID != userID {
		return cErr.NotOwner("employee profile belongs to another account")
	}
	return nil
}

// VerifyEmployee 審核通過或退回；結果通知員工本人綁定的帳號
func (s *EmployeeService) VerifyEmployee(ctx context.Context, id primitive.ObjectID, approved bool) error {
	ctx, _, end := s.trace.WithSpan(ctx)
	defer end(nil)

	employee, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cErr.NotFound("employee not found")
		}
		return cErr.DatabaseError("database GetEmployeeByID error")
	}

	update := bson.M{"isVerified": approved}
	if approved {
		update["status"] = core.StatusActive
	}
	if _, err = s.employeeRepo.UpdateByID(ctx, id, update); err != nil {
		return cErr.DatabaseError("database VerifyEmployee error")
	}

	if employee.OwnerUserID != nil {
		notificationType := core.NotificationVerifyApproved
		i18nKey := "notification.verify.approved"
		if !approved {
			notificationType = core.NotificationVerifyRejected
			i18nKey = "notification.verify.rejected"
		}
		s.notifier.NotifyMany(ctx, []primitive.ObjectID{*employee.OwnerUserID}, notificationType, i18nKey,
			map[string]string{"nickname": employee.Nickname}, id)
	}
	return nil
}

func modelToEmployeeResponseDto(employee *model.Employee) *dto.EmployeeResponseDto {
	return &dto.EmployeeResponseDto{
		ID:          employee.ID.Hex(),
		Nickname:    employee.Nickname,
		Bio:         employee.Bio,
		PhotoURL:    employee.PhotoURL,
		IsFreelance: employee.IsFreelance,
		IsVerified:  employee.IsVerified,
		Status:      employee.Status,
		CreatedAt:   employee.CreatedAt,
		UpdatedAt:   employee.UpdatedAt,
	}
}
