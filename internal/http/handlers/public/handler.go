package public

import "github.com/storefront-next/internal/provider"

// Handler 买家侧接口处理器入口
// 说明：该处理器用于登录、购物车与订单等用户侧 API。
type Handler struct {
	*provider.Container
}

// New 创建买家侧处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
