package repository

import "gorm.io/gorm"

// 单页上限，防止一页把整表拉回来
const maxPageSize = 200

// applyPagination 把页码换算为 limit/offset；pageSize 不合法时视为不分页
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
