package repository

import (
	"errors"

	"gorm.io/gorm"
)

// first 查询单条记录，不存在时返回 nil, nil
func first[T any](query *gorm.DB, conds ...interface{}) (*T, error) {
	var record T
	err := query.First(&record, conds...).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// paginate 分页 scope，pageSize 不大于 0 时不分页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}
