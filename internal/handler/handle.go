package handler

import (
	"pattamap/internal/core"
	"pattamap/internal/middleware"
	cErr "pattamap/internal/pkg/error"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProviderSet Provider对象集合
var ProviderSet = wire.NewSet(
	NewEstablishmentHandler,
	NewEmployeeHandler,
	NewEmploymentHandler,
	NewPositionHandler,
	NewNotificationHandler,
	NewMissionHandler,
	NewAdminHandler,
	NewHealthHandler,
)

func getInt64Query(c *gin.Context, key string, defaultVal int64) int64 {
	if v := c.Query(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return defaultVal
}

// actorUserID 取出經過 Auth middleware 驗證的操作者 ID
func actorUserID(c *gin.Context) (primitive.ObjectID, *cErr.Error) {
	raw := c.GetString(middleware.ContextUserIDKey)
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, cErr.Unauthorized("invalid session subject")
	}
	return id, nil
}

func actorRole(c *gin.Context) core.Role {
	raw, ok := c.Get(middleware.ContextRoleKey)
	if !ok {
		return ""
	}
	role, ok := raw.(core.Role)
	if !ok {
		return ""
	}
	return role
}

// isStaff 管理員與審核員可跳過擁有者檢查
func isStaff(role core.Role) bool {
	return role == core.RoleAdmin || role == core.RoleModerator
}
