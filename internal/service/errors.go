package service

import "errors"

var (
	// ErrNotFound 资源不存在
	ErrNotFound = errors.New("资源不存在")
	// ErrForbidden 无权访问他人资源
	ErrForbidden = errors.New("无权访问")
	// ErrInvalidInput 参数不合法
	ErrInvalidInput = errors.New("参数不合法")

	// ErrBookInactive 图书已下架
	ErrBookInactive = errors.New("图书已下架")
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = errors.New("分类不存在")
	// ErrCategoryExists 分类名称已存在
	ErrCategoryExists = errors.New("分类名称已存在")
	// ErrCategoryInUse 分类下仍有图书，不能删除
	ErrCategoryInUse = errors.New("分类下仍有图书")

	// ErrFavoriteExists 已收藏
	ErrFavoriteExists = errors.New("已收藏")

	// ErrInvalidOrder 订单数据不一致（明细为空、数量或金额错误）
	ErrInvalidOrder = errors.New("订单数据不合法")
	// ErrInvalidOrderStatus 订单状态不合法
	ErrInvalidOrderStatus = errors.New("订单状态不合法")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = errors.New("邮箱格式不正确")
	// ErrEmailExists 邮箱已注册
	ErrEmailExists = errors.New("邮箱已注册")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	// ErrWeakPassword 密码不符合策略
	ErrWeakPassword = errors.New("密码强度不足")
	// ErrInvalidToken token 无效
	ErrInvalidToken = errors.New("无效的 token")
)
