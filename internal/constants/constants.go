package constants

// 订单状态常量
const (
	OrderStatusPending   = "Pending"
	OrderStatusCompleted = "Completed"
	OrderStatusCancelled = "Cancelled"
)

// 用户角色常量
const (
	RoleUser  = "User"
	RoleAdmin = "Admin"
)

// 目录排序常量
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortNameAsc   = "name_asc"
	SortNameDesc  = "name_desc"
)

// 图书默认封面
const DefaultBookImage = "/images/books/default.jpg"

// 低库存阈值（仪表盘与库存预警）
const LowStockThreshold = 10

// 默认管理员账号
const (
	DefaultAdminEmail    = "admin@ebook.com"
	DefaultAdminPassword = "admin123"
)

// 异步队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskOrderCreated       = "order:created"
	TaskOrderPendingExpire = "order:pending_expire"
)

// 缓存 key
const (
	CacheKeyCategoryList = "catalog:categories"
	CacheKeyDashboard    = "admin:dashboard"
)
