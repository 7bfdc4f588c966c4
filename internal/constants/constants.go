package constants

// 订单状态常量
const (
	OrderStatusPending   = "pending"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// 用户角色常量
const (
	RoleBuyer = "buyer"
	RoleAdmin = "admin"
)

// 异步任务类型常量
const (
	TaskGuestCartReconcile = "cart:guest_reconcile"
)

// 队列名称常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 游客购物车本地存储键
const (
	GuestCartStorageKey = "guestCart"
)

// 游客购物车合并方式
const (
	ReconcileModeQueued = "queued"
	ReconcileModeInline = "inline"
	ReconcileModeNone   = "none"
)

// 购物车单行数量默认上限
const (
	DefaultMaxQuantityPerLine = 999
)
