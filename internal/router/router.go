package router

import (
	"fmt"
	"sort"
	"strings"

	"github.com/storefront-next/internal/authz"
	"github.com/storefront-next/internal/cache"
	"github.com/storefront-next/internal/config"
	"github.com/storefront-next/internal/constants"
	adminhandlers "github.com/storefront-next/internal/http/handlers/admin"
	publichandlers "github.com/storefront-next/internal/http/handlers/public"
	"github.com/storefront-next/internal/http/response"
	"github.com/storefront-next/internal/i18n"
	"github.com/storefront-next/internal/logger"
	"github.com/storefront-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按买家/管理端分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		MessageKey:    "error.too_many_requests",
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, i18n.T(i18n.ResolveLocale(c), "error.not_found"))
	})

	// 登录
	r.POST("/auth/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("email")), publicHandler.UserLogin)

	// 需鉴权接口，按角色校验路由访问
	authed := r.Group("")
	authed.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
	authed.Use(RoleAccessMiddleware(c.AuthzService))
	{
		authed.GET("/me", publicHandler.GetCurrentUser)

		// 买家购物车
		authed.GET("/carts", publicHandler.GetCart)
		authed.GET("/carts/all", adminHandler.GetAllCarts)
		authed.GET("/orders/user", publicHandler.ListMyOrders)
		authed.GET("/orders", adminHandler.GetAdminOrders)

		// 写操作：账号守卫先行拦截封禁账号
		guarded := authed.Group("")
		guarded.Use(AccountGuardMiddleware(c.AccountGuard))
		{
			guarded.POST("/carts/merge", publicHandler.MergeGuestCart)
			guarded.POST("/carts/:product_id", publicHandler.AddCartItem)
			guarded.PUT("/carts/:product_id", publicHandler.UpdateCartItem)
			guarded.DELETE("/carts/:product_id", publicHandler.RemoveCartItem)
			guarded.POST("/orders", publicHandler.CreateOrder)
			guarded.PUT("/orders/:id/status", publicHandler.UpdateOrderStatus)
		}

		authed.PUT("/users/:id/block", adminHandler.SetUserBlocked)
	}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	warnUngrantedRoutes(r, c.AuthzService)
	return r
}

// publicRoutes 无需鉴权的路由
var publicRoutes = map[string]struct{}{
	"POST:/auth/login": {},
	"GET:/health":      {},
}

type routePermissionItem struct {
	Module     string `json:"module"`
	Method     string `json:"method"`
	Object     string `json:"object"`
	Permission string `json:"permission"`
}

// buildRoutePermissionCatalog 列出需鉴权路由对应的授权资源
func buildRoutePermissionCatalog(engine *gin.Engine) []routePermissionItem {
	if engine == nil {
		return []routePermissionItem{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]routePermissionItem, 0, len(routes))

	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == "OPTIONS" || method == "HEAD" {
			continue
		}
		object := authz.NormalizeObject(item.Path)
		permission := method + ":" + object
		if _, exists := publicRoutes[permission]; exists {
			continue
		}
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, routePermissionItem{
			Module:     deriveRouteModule(object),
			Method:     method,
			Object:     object,
			Permission: permission,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Module == items[j].Module {
			if items[i].Object == items[j].Object {
				return items[i].Method < items[j].Method
			}
			return items[i].Object < items[j].Object
		}
		return items[i].Module < items[j].Module
	})

	return items
}

func deriveRouteModule(object string) string {
	normalized := strings.TrimPrefix(strings.TrimSpace(object), "/")
	if normalized == "" {
		return "system"
	}
	return strings.Split(normalized, "/")[0]
}

// ungrantedRoutes 返回没有任何内置角色可访问的路由
func ungrantedRoutes(engine *gin.Engine, authzService *authz.Service) []string {
	if authzService == nil {
		return nil
	}
	missing := make([]string, 0)
	for _, item := range buildRoutePermissionCatalog(engine) {
		granted := false
		for _, role := range []string{constants.RoleBuyer, constants.RoleAdmin} {
			if ok, err := authzService.EnforceRole(role, item.Object, item.Method); err == nil && ok {
				granted = true
				break
			}
		}
		if !granted {
			missing = append(missing, item.Permission)
		}
	}
	return missing
}

func warnUngrantedRoutes(engine *gin.Engine, authzService *authz.Service) {
	for _, permission := range ungrantedRoutes(engine, authzService) {
		logger.Warnw("route_without_role_policy", "permission", permission)
	}
}
