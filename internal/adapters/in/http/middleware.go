package http

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/his-appointment-scheduler/internal/config"
	"github.com/suchimauz/his-appointment-scheduler/internal/core/domain"
)

// Заголовки с идентичностью вызывающего: роль и идентификатор проставляет
// вышестоящий шлюз после проверки токена
const (
	callerRoleHeader = "X-User-Role"
	callerIDHeader   = "X-User-Id"
)

func basicAuth(cfg *config.Config) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		for _, client := range cfg.Auth.BasicClients {
			if subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1 &&
				subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1 {
				ctx.Next()
				return
			}
		}

		ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
		ctx.AbortWithStatus(http.StatusUnauthorized)
	}
}

func callerRole(ctx *gin.Context) domain.Role {
	return domain.Role(ctx.GetHeader(callerRoleHeader))
}

func callerID(ctx *gin.Context) string {
	return ctx.GetHeader(callerIDHeader)
}

// requireTechnician закрывает административные операции от остальных ролей
func requireTechnician() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if callerRole(ctx) != domain.RoleTechnician {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"errors": []string{"Only technician can perform this operation."},
			})
			return
		}
		ctx.Next()
	}
}
