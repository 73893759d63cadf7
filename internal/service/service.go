package service

import (
	"pattamap/internal/service/push"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	push.NewSender,
	NewNotificationService,
	NewEmploymentService,
	NewEstablishmentService,
	NewEmployeeService,
	NewPositionService,
	NewMissionService,
	NewDashboardService,
	NewHealthService,
)
