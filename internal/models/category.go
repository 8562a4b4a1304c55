package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 商品分类表
type Category struct {
	ID        uint           `gorm:"primarykey" json:"id"`                  // 主键
	Name      string         `gorm:"uniqueIndex;not null" json:"name"`      // 分类名称（唯一，匹配时不区分大小写）
	Emoji     string         `gorm:"type:varchar(16)" json:"emoji"`         // 展示用 emoji
	CreatedAt time.Time      `gorm:"index" json:"created_at"`               // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                        // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
