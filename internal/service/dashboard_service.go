package service

import (
	"context"
	"time"

	"github.com/ebookstore-next/internal/cache"
	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/logger"
	"github.com/ebookstore-next/internal/models"
	"github.com/ebookstore-next/internal/repository"
)

const (
	dashboardRecentOrders = 5
	dashboardTrendDays    = 7
)

// DashboardService 仪表盘服务
// 说明：聚合后台首页核心经营数据。
type DashboardService struct {
	repo     repository.DashboardRepository
	cacheTTL time.Duration
}

// NewDashboardService 创建仪表盘服务
func NewDashboardService(repo repository.DashboardRepository, cacheTTL time.Duration) *DashboardService {
	return &DashboardService{repo: repo, cacheTTL: cacheTTL}
}

// DashboardOverview 仪表盘总览
type DashboardOverview struct {
	TotalBooks      int64                 `json:"total_books"`
	ActiveBooks     int64                 `json:"active_books"`
	TotalCategories int64                 `json:"total_categories"`
	TotalOrders     int64                 `json:"total_orders"`
	PendingOrders   int64                 `json:"pending_orders"`
	TotalUsers      int64                 `json:"total_users"`
	TotalRevenue    models.Money          `json:"total_revenue"`
	RecentOrders    []models.Order        `json:"recent_orders"`
	LowStockBooks   []models.Book         `json:"low_stock_books"`
	OrderTrend      []DashboardTrendPoint `json:"order_trend"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// DashboardTrendPoint 每日订单数
type DashboardTrendPoint struct {
	Day    string `json:"day"`
	Orders int64  `json:"orders"`
}

// GetOverview 获取仪表盘总览，forceRefresh 时跳过缓存
func (s *DashboardService) GetOverview(forceRefresh bool) (*DashboardOverview, error) {
	ctx := context.Background()
	if !forceRefresh {
		var cached DashboardOverview
		if hit, err := cache.Dashboard.Get(ctx, &cached); err != nil {
			logger.Warnw("dashboard_cache_read_failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	row, err := s.repo.GetOverview()
	if err != nil {
		return nil, err
	}
	recent, err := s.repo.GetRecentOrders(dashboardRecentOrders)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.repo.GetLowStockBooks(constants.LowStockThreshold)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	startAt := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(dashboardTrendDays - 1))
	trends, err := s.repo.GetOrderTrends(startAt, now.Add(time.Second))
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{
		TotalBooks:      row.TotalBooks,
		ActiveBooks:     row.ActiveBooks,
		TotalCategories: row.TotalCategories,
		TotalOrders:     row.TotalOrders,
		PendingOrders:   row.PendingOrders,
		TotalUsers:      row.TotalUsers,
		TotalRevenue:    row.TotalRevenue,
		RecentOrders:    recent,
		LowStockBooks:   lowStock,
		OrderTrend:      make([]DashboardTrendPoint, 0, len(trends)),
		GeneratedAt:     now,
	}
	for _, item := range trends {
		overview.OrderTrend = append(overview.OrderTrend, DashboardTrendPoint{Day: item.Day, Orders: item.OrdersTotal})
	}

	if err := cache.Dashboard.Set(ctx, overview, s.cacheTTL); err != nil {
		logger.Warnw("dashboard_cache_write_failed", "error", err)
	}
	return overview, nil
}
