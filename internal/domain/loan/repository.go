package loan

import (
	"context"
	"time"
)

// ListFilter 借阅列表查询条件
// UserID为0表示不按用户过滤,Status为空表示不按状态过滤
type ListFilter struct {
	UserID uint
	Status Status
}

// BookStat 图书借阅量统计项(人气榜)
type BookStat struct {
	BookID     uint   `json:"book_id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"cover_image"`
	LoanCount  int64  `json:"loan_count"`
}

// BorrowerStat 读者借阅量统计项(活跃读者榜,只统计member)
type BorrowerStat struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	LoanCount int64  `json:"loan_count"`
}

// Repository 借阅仓储接口
// 设计说明:
// 1. Create/FindActive参与借书事务,实现必须从context提取事务DB
// 2. UpdateStatus是惰性逾期提升的持久化入口
type Repository interface {
	// Create 创建借阅记录
	Create(ctx context.Context, loan *Loan) error

	// FindByID 根据ID查找借阅,不存在返回ErrLoanNotFound
	FindByID(ctx context.Context, id uint) (*Loan, error)

	// FindActive 查找某用户对某书的active借阅
	// 不存在返回ErrLoanNotFound(借书事务用它检查重复借阅)
	FindActive(ctx context.Context, bookID, userID uint) (*Loan, error)

	// Update 更新借阅记录(归还时写status/returned_at)
	Update(ctx context.Context, loan *Loan) error

	// UpdateStatus 只更新状态字段(惰性逾期提升用)
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// List 条件查询借阅列表,按borrowed_at降序
	List(ctx context.Context, filter ListFilter) ([]*Loan, error)

	// ListBookIDsByUser 某用户借过的全部图书ID(任意状态,去重)
	ListBookIDsByUser(ctx context.Context, userID uint) ([]uint, error)

	// CountActiveByBook 某书当前未归还(active/overdue)的借阅数
	// 删除图书前的前置校验用
	CountActiveByBook(ctx context.Context, bookID uint) (int64, error)

	// CountByStatus 按状态统计借阅数(仪表盘用)
	CountByStatus(ctx context.Context, statuses ...Status) (int64, error)

	// ListRecent 最近limit条借阅,按borrowed_at降序(仪表盘用)
	ListRecent(ctx context.Context, limit int) ([]*Loan, error)

	// TopBooks 借阅量前limit的图书(仪表盘用)
	TopBooks(ctx context.Context, limit int) ([]BookStat, error)

	// TopBorrowers 借阅量前limit的member读者(仪表盘用)
	TopBorrowers(ctx context.Context, limit int) ([]BorrowerStat, error)
}

// Clock 时钟抽象
// 教学要点: 把time.Now注入领域服务,逾期判定才能在测试中确定性复现
type Clock func() time.Time
