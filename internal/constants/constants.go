package constants

// 商品状态常量
const (
	ProductStatusDraft     = "draft"
	ProductStatusPublished = "published"
	ProductStatusSuspended = "suspended"
)

// 商品付费类型常量
const (
	PaymentTypeOneTime   = "one_time"
	PaymentTypeRecurring = "recurring"
)

// 用户角色常量
const (
	RoleUser   = "user"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// 评分取值范围
const (
	ReviewRatingMin = 1
	ReviewRatingMax = 5
)

// 数字文件总大小上限（5 GiB）
const MaxDigitalPayloadBytes = int64(5) << 30

// 单个商品图片数量上限
const MaxProductImages = 10

// 队列名称常量
const (
	QueueDefault = "default"
)

// 异步任务类型常量
const (
	TaskSearchRepair  = "search:repair"
	TaskSearchReindex = "search:reindex"
)
