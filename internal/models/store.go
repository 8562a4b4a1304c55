package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// SocialLink 店铺社交链接
type SocialLink struct {
	Platform string `json:"platform"` // 平台名称
	URL      string `json:"url"`      // 链接地址
}

// SocialLinks 社交链接数组类型
type SocialLinks []SocialLink

// Value 实现 driver.Valuer 接口
func (s SocialLinks) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *SocialLinks) Scan(value interface{}) error {
	if value == nil {
		*s = SocialLinks{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, s)
}

// Store 店铺表
type Store struct {
	ID          uint           `gorm:"primarykey" json:"id"`                   // 主键
	OwnerID     uint           `gorm:"not null;index" json:"owner_id"`         // 店主用户ID
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`       // 唯一标识
	Name        string         `gorm:"type:varchar(255);not null" json:"name"` // 店铺名称
	Description string         `gorm:"type:text" json:"description"`           // 店铺描述
	LogoURL     string         `gorm:"type:varchar(500)" json:"logo_url"`      // Logo 地址
	Banner      string         `gorm:"type:varchar(100)" json:"banner"`        // Banner 主题
	SocialLinks SocialLinks    `gorm:"type:json" json:"social_links"`          // 社交链接
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                             // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                         // 软删除时间

	// 关联
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"` // 店主信息
}

// TableName 指定表名
func (Store) TableName() string {
	return "stores"
}
