package repository

import (
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson"
)

// 統一管理所有 MongoDB repository
type MongoDBRepository struct {
	userRepo                *UserRepository
	employeeRepo            *EmployeeRepository
	establishmentRepo       *EstablishmentRepository
	employmentRepo          *EmploymentRepository
	independentPositionRepo *IndependentPositionRepository
	notificationRepo        *NotificationRepository
	missionProgressRepo     *MissionProgressRepository
}

// 建立 MongoDB repository 物件
func NewMongoDBRepository(
	userRepo *UserRepository,
	employeeRepo *EmployeeRepository,
	establishmentRepo *EstablishmentRepository,
	employmentRepo *EmploymentRepository,
	independentPositionRepo *IndependentPositionRepository,
	notificationRepo *NotificationRepository,
	missionProgressRepo *MissionProgressRepository,
) *MongoDBRepository {
	return &MongoDBRepository{
		userRepo:                userRepo,
		employeeRepo:            employeeRepo,
		establishmentRepo:       establishmentRepo,
		employmentRepo:          employmentRepo,
		independentPositionRepo: independentPositionRepo,
		notificationRepo:        notificationRepo,
		missionProgressRepo:     missionProgressRepo,
	}
}

// Wire 依賴提供
var ProviderSet = wire.NewSet(
	NewUserRepository,
	NewEmployeeRepository,
	NewEstablishmentRepository,
	NewEmploymentRepository,
	NewIndependentPositionRepository,
	NewNotificationRepository,
	NewMissionProgressRepository,
	NewMongoDBRepository)

func withUpdatedAt(update bson.M) bson.M {
	// 確保 $currentDate 存在
	currentDate, ok := update["$currentDate"].(bson.M)
	if !ok || currentDate == nil {
		currentDate = bson.M{}
	}
	currentDate["updatedAt"] = true
	update["$currentDate"] = currentDate
	return update
}
