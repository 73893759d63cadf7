package middleware

import "github.com/google/wire"

var ProviderSet = wire.NewSet(
	NewLogger,
	NewRecovery,
	NewResponse,
	NewCors,
	NewTraceEntry,
	NewAuth,
	NewRateLimit,
	NewCompress,
)
