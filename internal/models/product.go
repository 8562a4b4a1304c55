package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/shupin-market/internal/constants"
)

// Product 商品表
type Product struct {
	ID            uint           `gorm:"primarykey" json:"id"`                                            // 主键
	StoreID       uint           `gorm:"not null;index" json:"store_id"`                                  // 所属店铺ID
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                               // 分类ID
	Slug          string         `gorm:"uniqueIndex;not null" json:"slug"`                                // 唯一标识
	Title         string         `gorm:"type:varchar(255);not null" json:"title"`                         // 标题
	Description   string         `gorm:"type:text" json:"description"`                                    // 描述
	Price         Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`              // 价格（定点小数）
	PaymentType   string         `gorm:"type:varchar(20);not null;default:'one_time'" json:"payment_type"` // 付费类型（one_time/recurring）
	Status        string         `gorm:"type:varchar(20);not null;default:'draft';index" json:"status"`   // 状态（draft/published/suspended）
	AverageRating *float64       `gorm:"type:decimal(3,2)" json:"average_rating"`                         // 平均评分（无评价时为 NULL，只由聚合计算写入）
	ViewCount     int64          `gorm:"not null;default:0" json:"view_count"`                            // 浏览次数
	IsActive      bool           `gorm:"index" json:"is_active"`                                          // 是否有效（软删标记，创建时由服务层显式赋值）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                                         // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                                      // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                                  // 软删除时间

	// 关联
	Store        Store         `gorm:"foreignKey:StoreID" json:"store,omitempty"`           // 店铺信息
	Category     Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`     // 分类信息
	Images       []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`       // 图片列表
	DigitalFiles []DigitalFile `gorm:"foreignKey:ProductID" json:"digital_files,omitempty"` // 数字文件列表
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// Indexable 判断商品是否应出现在搜索索引中
func (p *Product) Indexable() bool {
	return p != nil && p.IsActive && p.Status == constants.ProductStatusPublished
}

// ProductImage 商品图片表
type ProductImage struct {
	ID        uint      `gorm:"primarykey" json:"id"`           // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"` // 所属商品ID
	URL       string    `gorm:"type:varchar(500);not null" json:"url"` // 图片地址
	CreatedAt time.Time `json:"created_at"`                     // 创建时间
}

// TableName 指定表名
func (ProductImage) TableName() string {
	return "product_images"
}

// DigitalFile 商品数字文件表
type DigitalFile struct {
	ID        uint      `gorm:"primarykey" json:"id"`                       // 主键
	ProductID uint      `gorm:"not null;index" json:"product_id"`           // 所属商品ID
	FileName  string    `gorm:"type:varchar(255);not null" json:"file_name"` // 文件名
	FileSize  int64     `gorm:"not null;default:0" json:"file_size"`        // 文件大小（字节）
	FileURL   string    `gorm:"type:varchar(500);not null" json:"file_url"` // 文件地址（私有）
	CreatedAt time.Time `json:"created_at"`                                 // 创建时间
}

// TableName 指定表名
func (DigitalFile) TableName() string {
	return "digital_files"
}
