package utils

// TotalPages 按总数和每页条数计算总页数（向上取整）
func TotalPages(total int64, limit int) int {
	if limit < 1 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// ClampPage 把页码夹到 [1, totalPages]，用于页面上的上一页/下一页
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages > 0 && page > totalPages {
		return totalPages
	}
	return page
}
