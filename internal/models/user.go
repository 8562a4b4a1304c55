package models

import (
	"time"

	"gorm.io/gorm"
)

// User 用户表
type User struct {
	ID        uint           `gorm:"primarykey" json:"id"`                              // 主键
	Name      string         `gorm:"type:varchar(100);not null" json:"name"`            // 昵称
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`                 // 邮箱（唯一）
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`               // bcrypt 密码哈希
	Role      string         `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // 角色（user/seller/admin）
	Avatar    string         `gorm:"type:varchar(500)" json:"avatar"`                   // 头像地址
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                        // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                    // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}
