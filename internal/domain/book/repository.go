package book

import (
	"context"
)

// ListFilter 馆藏列表查询条件
type ListFilter struct {
	Search        string // 关键词(模糊匹配书名/作者/简介)
	Category      string // 分类精确匹配
	Author        string // 作者模糊匹配
	AvailableOnly bool   // 只看有可借副本的
}

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. LockByID/UpdateAvailableCopies由借还事务在TxManager作用域内调用
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书(保持id升序)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// FindAll 返回全部馆藏(id升序)
	// 检索评分引擎在内存中打分,需要完整数据集;
	// 返回顺序就是相同分数结果的稳定次序
	FindAll(ctx context.Context) ([]*Book, error)

	// List 条件查询馆藏列表,按created_at降序
	List(ctx context.Context, filter ListFilter) ([]*Book, error)

	// ListCategories 去重返回所有非空分类,按字母序
	ListCategories(ctx context.Context) ([]string, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	Delete(ctx context.Context, id uint) error

	// LockByID 悲观锁查询图书(借书事务中锁定副本计数)
	// 使用SELECT FOR UPDATE锁定行,防止并发借阅超借
	LockByID(ctx context.Context, id uint) (*Book, error)

	// UpdateAvailableCopies 原子调整可借副本数
	// delta为-1(借出)或+1(归还)
	// 内部保证调整后 0 <= available_copies <= total_copies,
	// 越界时分别返回ErrNoAvailableCopies/静默截断视实现而定——
	// 本仓储约定越界一律拒绝并返回对应业务错误
	UpdateAvailableCopies(ctx context.Context, id uint, delta int) error

	// FindAvailableByTaste 按口味选书(推荐引擎第一阶段)
	// 条件: 有可借副本,且分类命中categories或作者命中authors,
	// 排除excludeIDs(用户借过的书),最多limit本,id升序
	FindAvailableByTaste(ctx context.Context, categories, authors []string, excludeIDs []uint, limit int) ([]*Book, error)

	// ListPopular 人气榜(推荐引擎第二阶段回填)
	// 有可借副本的书按历史借阅次数降序、平均评分降序排列,
	// 排除excludeIDs,最多limit本
	ListPopular(ctx context.Context, excludeIDs []uint, limit int) ([]*Book, error)

	// Count 馆藏种数(仪表盘用)
	Count(ctx context.Context) (int64, error)

	// SumAvailableCopies 全馆可借副本总数(仪表盘用)
	SumAvailableCopies(ctx context.Context) (int64, error)

	// CountByCategory 按分类统计馆藏种数,数量降序(仪表盘用)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
}

// CategoryCount 分类统计项
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
