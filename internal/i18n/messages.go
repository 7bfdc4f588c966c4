package i18n

var messages = map[string]map[string]string{
	LocaleEN: {
		"error.bad_request":            "Invalid request",
		"error.not_found":              "Resource not found",
		"error.internal":               "Internal server error",
		"error.unauthorized":           "Please log in first",
		"error.forbidden":              "You do not have permission to perform this action",
		"error.jwt_secret_missing":     "Authentication is not configured",
		"error.auth_header_missing":    "Missing Authorization header",
		"error.auth_header_invalid":    "Authorization header must be a Bearer token",
		"error.token_invalid":          "Invalid or expired token",
		"error.token_revoked":          "Token has been revoked, please log in again",
		"error.user_id_invalid":        "Invalid user id",
		"error.user_id_type_invalid":   "Invalid user id type",
		"error.invalid_credentials":    "Incorrect email or password",
		"error.account_blocked":        "Your account has been blocked, please contact the administrator",
		"error.user_not_found":         "User not found",
		"error.product_not_found":      "User or product does not exist",
		"error.product_unavailable":    "Some products in your cart are no longer available",
		"error.invalid_quantity":       "Quantity must be a positive integer within the allowed limit",
		"error.cart_item_not_found":    "Cart item not found",
		"error.empty_cart":             "Your cart is empty",
		"error.order_not_found":        "Order not found",
		"error.invalid_status":         "Unknown order status",
		"error.invalid_transition":     "This status change is not allowed",
		"error.guest_cart_invalid":     "Guest cart is invalid or too large",
		"error.transaction_failed":     "The operation could not be completed, no changes were made",
		"error.too_many_requests":      "Too many requests, please retry in %d seconds",
		"error.rate_limit_unavailable": "Rate limiter is unavailable, please retry later",
		"error.cart_fetch_failed":      "Failed to load cart",
		"error.cart_update_failed":     "Failed to update cart",
		"error.order_fetch_failed":     "Failed to load orders",
		"error.order_create_failed":    "Failed to place order",
		"error.order_update_failed":    "Failed to update order",
		"error.login_failed":           "Login failed",
		"error.user_update_failed":     "Failed to update user",
		"error.cart_merge_failed":      "Failed to merge guest cart",
	},
	LocaleZH: {
		"error.bad_request":            "请求参数错误",
		"error.not_found":              "资源不存在",
		"error.internal":               "服务器内部错误",
		"error.unauthorized":           "请先登录",
		"error.forbidden":              "没有权限执行该操作",
		"error.jwt_secret_missing":     "认证未配置",
		"error.auth_header_missing":    "缺少 Authorization 头",
		"error.auth_header_invalid":    "Authorization 头格式应为 Bearer Token",
		"error.token_invalid":          "Token 无效或已过期",
		"error.token_revoked":          "Token 已失效，请重新登录",
		"error.user_id_invalid":        "用户 ID 无效",
		"error.user_id_type_invalid":   "用户 ID 类型错误",
		"error.invalid_credentials":    "邮箱或密码错误",
		"error.account_blocked":        "账号已被封禁，请联系管理员",
		"error.user_not_found":         "用户不存在",
		"error.product_not_found":      "用户或商品不存在",
		"error.product_unavailable":    "购物车中有商品已下架",
		"error.invalid_quantity":       "数量必须是允许范围内的正整数",
		"error.cart_item_not_found":    "购物车中没有该商品",
		"error.empty_cart":             "购物车为空",
		"error.order_not_found":        "订单不存在",
		"error.invalid_status":         "未知的订单状态",
		"error.invalid_transition":     "不允许该状态变更",
		"error.guest_cart_invalid":     "游客购物车无效或条目过多",
		"error.transaction_failed":     "操作未能完成，数据未发生变化",
		"error.too_many_requests":      "请求过于频繁，请 %d 秒后重试",
		"error.rate_limit_unavailable": "限流服务不可用，请稍后重试",
		"error.cart_fetch_failed":      "获取购物车失败",
		"error.cart_update_failed":     "更新购物车失败",
		"error.order_fetch_failed":     "获取订单失败",
		"error.order_create_failed":    "下单失败",
		"error.order_update_failed":    "更新订单失败",
		"error.login_failed":           "登录失败",
		"error.user_update_failed":     "更新用户失败",
		"error.cart_merge_failed":      "合并游客购物车失败",
	},
	LocaleTW: {
		"error.unauthorized":        "請先登入",
		"error.forbidden":           "沒有權限執行該操作",
		"error.invalid_credentials": "郵箱或密碼錯誤",
		"error.account_blocked":     "帳號已被封禁，請聯絡管理員",
		"error.empty_cart":          "購物車為空",
		"error.order_not_found":     "訂單不存在",
		"error.invalid_transition":  "不允許該狀態變更",
		"error.too_many_requests":   "請求過於頻繁，請 %d 秒後重試",
	},
}
