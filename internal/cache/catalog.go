package cache

import "github.com/ebookstore-next/internal/constants"

const (
	// CategoryList 前台分类列表
	CategoryList Entry = constants.CacheKeyCategoryList
	// Dashboard 后台仪表盘概览，订单或图书变更后失效
	Dashboard Entry = constants.CacheKeyDashboard
)
