package repository

import (
	"time"

	"github.com/ebookstore-next/internal/constants"
	"github.com/ebookstore-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DashboardRepository 后台仪表盘的聚合查询
type DashboardRepository interface {
	GetOverview() (DashboardOverviewRow, error)
	GetRecentOrders(limit int) ([]models.Order, error)
	GetLowStockBooks(threshold int) ([]models.Book, error)
	GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error)
}

// DashboardOverviewRow 仪表盘总览原始统计结果
type DashboardOverviewRow struct {
	TotalBooks      int64
	ActiveBooks     int64
	TotalCategories int64
	TotalOrders     int64
	PendingOrders   int64
	TotalUsers      int64
	TotalRevenue    models.Money
}

// DashboardOrderTrendRow 订单趋势统计
type DashboardOrderTrendRow struct {
	Day         string
	OrdersTotal int64
}

// GormDashboardRepository GORM 仪表盘聚合实现
type GormDashboardRepository struct {
	db *gorm.DB
}

// NewDashboardRepository 创建仪表盘仓库
func NewDashboardRepository(db *gorm.DB) *GormDashboardRepository {
	return &GormDashboardRepository{db: db}
}

// GetOverview 各项计数与营收，营收为全部订单金额之和（不区分状态）
func (r *GormDashboardRepository) GetOverview() (DashboardOverviewRow, error) {
	var row DashboardOverviewRow
	counters := []struct {
		model interface{}
		where string
		args  []interface{}
		dest  *int64
	}{
		{model: &models.Book{}, dest: &row.TotalBooks},
		{model: &models.Book{}, where: "is_active = ?", args: []interface{}{true}, dest: &row.ActiveBooks},
		{model: &models.Category{}, dest: &row.TotalCategories},
		{model: &models.Order{}, dest: &row.TotalOrders},
		{model: &models.Order{}, where: "status = ?", args: []interface{}{constants.OrderStatusPending}, dest: &row.PendingOrders},
		{model: &models.User{}, dest: &row.TotalUsers},
	}
	for _, counter := range counters {
		query := r.db.Model(counter.model)
		if counter.where != "" {
			query = query.Where(counter.where, counter.args...)
		}
		if err := query.Count(counter.dest).Error; err != nil {
			return row, err
		}
	}

	var revenue float64
	if err := r.db.Model(&models.Order{}).Select("COALESCE(SUM(total_amount), 0)").Scan(&revenue).Error; err != nil {
		return row, err
	}
	row.TotalRevenue = models.NewMoneyFromDecimal(decimal.NewFromFloat(revenue))
	return row, nil
}

// GetRecentOrders 最近订单
func (r *GormDashboardRepository) GetRecentOrders(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	var orders []models.Order
	if err := r.db.Preload("User").
		Order("order_date DESC, id DESC").
		Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// GetLowStockBooks 库存低于阈值的图书（含下架）
func (r *GormDashboardRepository) GetLowStockBooks(threshold int) ([]models.Book, error) {
	var books []models.Book
	if err := r.db.Where("stock < ?", threshold).
		Order("stock ASC, id ASC").
		Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

// GetOrderTrends 按天统计 [startAt, endAt) 内的订单数
func (r *GormDashboardRepository) GetOrderTrends(startAt, endAt time.Time) ([]DashboardOrderTrendRow, error) {
	const dayExpr = "CAST(date(order_date) AS TEXT)"
	var rows []DashboardOrderTrendRow
	if err := r.db.Model(&models.Order{}).
		Select(dayExpr+" AS day, COUNT(*) AS orders_total").
		Where("order_date >= ? AND order_date < ?", startAt, endAt).
		Group(dayExpr).
		Order("day ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
