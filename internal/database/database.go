package database

import (
	client "pattamap/internal/database/client"
	fluentdRepo "pattamap/internal/database/fluentd/repository"
	mongoRepo "pattamap/internal/database/mongodb/repository"
	redisRepo "pattamap/internal/database/redis/repository"

	"github.com/google/wire"
)

// ProviderSet 定義所有 DB Client 的依賴
var ProviderSet = wire.NewSet(
	client.NewMongoClient,
	client.NewRedisClient,
	client.NewFluentdClient,
	mongoRepo.ProviderSet,
	redisRepo.ProviderSet,
	fluentdRepo.ProviderSet,
)
