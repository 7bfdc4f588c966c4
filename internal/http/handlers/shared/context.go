package shared

import (
	"strconv"

	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/service"

	"github.com/gin-gonic/gin"
)

// 上下文键，由鉴权中间件写入
const (
	ContextUserIDKey   = "user_id"
	ContextUserRoleKey = "user_role"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetActor 读取当前请求身份，业务调用显式传入
func GetActor(c *gin.Context) (service.Actor, bool) {
	uid, ok := GetContextUintWithKeys(c, ContextUserIDKey, "error.user_id_invalid", "error.user_id_type_invalid")
	if !ok {
		return service.Actor{}, false
	}
	role := c.GetString(ContextUserRoleKey)
	if uid == 0 || role == "" {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return service.Actor{}, false
	}
	return service.Actor{UserID: uid, Role: role}, true
}

// ParseUintParam 解析路径中的正整数 ID，失败时返回 400
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}
