package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车条目表
type CartItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`                            // 主键
	UserID    uint      `gorm:"not null;uniqueIndex:uk_cart_user_product" json:"user_id"`    // 用户ID
	ProductID uint      `gorm:"not null;uniqueIndex:uk_cart_user_product;index" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null;default:1" json:"quantity"`              // 数量
	CreatedAt time.Time `json:"created_at"`                                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                      // 更新时间

	// 关联
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 商品信息
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// OrderItem 订单明细表
type OrderItem struct {
	ID        uint      `gorm:"primarykey" json:"id"`             // 主键
	OrderNo   string    `gorm:"size:64;not null;index" json:"order_no"` // 订单号
	UserID    uint      `gorm:"not null;index" json:"user_id"`    // 下单用户ID
	ProductID uint      `gorm:"not null;index" json:"product_id"` // 商品ID
	Quantity  int       `gorm:"not null;default:1" json:"quantity"` // 数量
	Price     Money     `gorm:"type:decimal(20,8);not null" json:"price"` // 成交单价
	CreatedAt time.Time `gorm:"index" json:"created_at"`          // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                       // 更新时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// Subscription 订阅表（周期付费商品）
type Subscription struct {
	ID        uint           `gorm:"primarykey" json:"id"`             // 主键
	UserID    uint           `gorm:"not null;index" json:"user_id"`    // 订阅用户ID
	ProductID uint           `gorm:"not null;index" json:"product_id"` // 商品ID
	Status    string         `gorm:"size:32;not null;default:'active'" json:"status"` // 订阅状态
	ExpiresAt *time.Time     `json:"expires_at,omitempty"`             // 到期时间
	CreatedAt time.Time      `json:"created_at"`                       // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                       // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                   // 软删除时间
}

// TableName 指定表名
func (Subscription) TableName() string {
	return "subscriptions"
}
