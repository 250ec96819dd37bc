package repository

import (
	"time"

	"github.com/ebookstore-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order, details []models.OrderDetail) error
	GetByID(id uint) (*models.Order, error)
	ListByUser(filter OrderListFilter) ([]models.Order, int64, error)
	ListAdmin(filter OrderListFilter) ([]models.Order, int64, error)
	UpdateStatus(id uint, status string) (int64, error)
	UpdateStatusIf(id uint, from, to string) (int64, error)
	Delete(id uint) (int64, error)
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withDetails(query *gorm.DB) *gorm.DB {
	return query.Preload("Details", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Preload("Details.Book")
}

// Create 创建订单与订单明细
// 调用方负责开启事务，保证订单与明细同时落库
func (r *GormOrderRepository) Create(order *models.Order, details []models.OrderDetail) error {
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now()
	}
	if err := r.db.Omit("Details", "User").Create(order).Error; err != nil {
		return err
	}
	for i := range details {
		details[i].OrderID = order.ID
	}
	if len(details) > 0 {
		if err := r.db.Omit("Book").Create(&details).Error; err != nil {
			return err
		}
	}
	order.Details = details
	return nil
}

// GetByID 根据 ID 获取订单（含明细与图书、下单用户）
func (r *GormOrderRepository) GetByID(id uint) (*models.Order, error) {
	query := r.withDetails(r.db.Preload("User"))
	return first[models.Order](query, id)
}

// ListByUser 用户订单列表（最新在前）
func (r *GormOrderRepository) ListByUser(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Where("user_id = ?", filter.UserID)
	return r.list(query, filter)
}

// ListAdmin 管理端订单列表
func (r *GormOrderRepository) ListAdmin(filter OrderListFilter) ([]models.Order, int64, error) {
	query := r.db.Model(&models.Order{}).Preload("User")
	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	return r.list(query, filter)
}

func (r *GormOrderRepository) list(query *gorm.DB, filter OrderListFilter) ([]models.Order, int64, error) {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("order_date >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("order_date <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.withDetails(query).Scopes(paginate(filter.Page, filter.PageSize))

	var orders []models.Order
	if err := query.Order("order_date DESC, id DESC").Find(&orders).Error; err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// UpdateStatus 更新订单状态
func (r *GormOrderRepository) UpdateStatus(id uint, status string) (int64, error) {
	result := r.db.Model(&models.Order{}).Where("id = ?", id).Update("status", status)
	return result.RowsAffected, result.Error
}

// UpdateStatusIf 仅当订单处于 from 状态时更新为 to
func (r *GormOrderRepository) UpdateStatusIf(id uint, from, to string) (int64, error) {
	result := r.db.Model(&models.Order{}).Where("id = ? AND status = ?", id, from).Update("status", to)
	return result.RowsAffected, result.Error
}

// Delete 物理删除订单及其明细
// 调用方负责开启事务
func (r *GormOrderRepository) Delete(id uint) (int64, error) {
	if err := r.db.Where("order_id = ?", id).Delete(&models.OrderDetail{}).Error; err != nil {
		return 0, err
	}
	result := r.db.Delete(&models.Order{}, id)
	return result.RowsAffected, result.Error
}
