package shared

import (
	"github.com/shupin-market/internal/http/response"
	"github.com/shupin-market/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	// ContextUserIDKey 上下文中的用户 ID 键
	ContextUserIDKey = "user_id"
	// ContextRoleKey 上下文中的角色键
	ContextRoleKey = "user_role"
)

// GetActor 从上下文读取当前操作者，缺失时统一返回 401。
func GetActor(c *gin.Context) (service.Actor, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		response.Unauthorized(c, "unauthorized")
		return service.Actor{}, false
	}
	userID, ok := value.(uint)
	if !ok || userID == 0 {
		response.Unauthorized(c, "unauthorized")
		return service.Actor{}, false
	}

	role := ""
	if roleValue, ok := c.Get(ContextRoleKey); ok {
		if r, ok := roleValue.(string); ok {
			role = r
		}
	}
	return service.Actor{UserID: userID, Role: role}, true
}
