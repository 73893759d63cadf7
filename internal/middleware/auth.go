package middleware

import (
	"strings"

	"pattamap/config"
	"pattamap/internal/core"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/pkg/response"
	"pattamap/internal/telemetry"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	ContextUserIDKey = "userID"
	ContextRoleKey   = "userRole"
)

// Auth Bearer JWT 驗證；通過後把 userID 與 role 放進 gin.Context
type Auth struct {
	logger    *zap.Logger
	trace     *telemetry.Trace
	secretKey []byte
}

func NewAuth(logger *zap.Logger, trace *telemetry.Trace, conf *config.Configuration) *Auth {
	return &Auth{
		logger:    logger,
		trace:     trace,
		secretKey: []byte(conf.App.SecretKey),
	}
}

func (m *Auth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		_, _, end := m.trace.WithSpan(m.trace.GetTraceContext(c), string(core.SpanAuthMiddleware))

		claims, err := m.parseClaims(c.GetHeader("Authorization"))
		if err != nil {
			end(err)
			response.AbortWithError(c, err)
			return
		}
		if claims.Role == core.RoleBanned {
			cause := cErr.Forbidden("account is banned")
			end(cause)
			response.AbortWithError(c, cause)
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		end(nil)
		c.Next()
	}
}

// RequireRole 需先掛 Handler；角色不符回 403
func (m *Auth) RequireRole(roles ...core.Role) gin.HandlerFunc {
	allowed := make(map[core.Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return func(c *gin.Context) {
		raw, ok := c.Get(ContextRoleKey)
		if !ok {
			response.AbortWithError(c, cErr.Unauthorized("missing auth context"))
			return
		}
		role, _ := raw.(core.Role)
		if _, permitted := allowed[role]; !permitted {
			response.AbortWithError(c, cErr.Forbidden("insufficient role"))
			return
		}
		c.Next()
	}
}

func (m *Auth) parseClaims(authorizationHeader string) (*core.Claims, *cErr.Error) {
	if authorizationHeader == "" {
		return nil, cErr.Unauthorized("missing Authorization header")
	}
	tokenString, found := strings.CutPrefix(authorizationHeader, "Bearer ")
	if !found {
		return nil, cErr.Unauthorized("Authorization header is not a Bearer token")
	}

	claims := &core.Claims{}
	token, parseError := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secretKey, nil
	})
	if parseError != nil || !token.Valid {
		m.logger.Debug("jwt validation failed", zap.Error(parseError))
		return nil, cErr.InvalidSession("invalid or expired token")
	}
	if claims.UserID == "" {
		return nil, cErr.InvalidSession("token missing user id")
	}
	return claims, nil
}
