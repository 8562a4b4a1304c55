package repository

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page         int
	PageSize     int
	StoreID      uint
	CategoryName string
	Search       string
	Status       string
	OnlyActive   bool
	OrderBy      string // created_at / price / view_count
	OrderDesc    bool
}

// ReviewListFilter 查询评价列表的过滤条件
type ReviewListFilter struct {
	Page      int
	PageSize  int
	ProductID uint
	UserID    uint
}
