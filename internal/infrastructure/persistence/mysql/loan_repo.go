package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/loan"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// loanRepository 借阅仓储实现(MySQL)
// 设计说明:
// 1. Create/FindActive参与借书事务,通过getDB(ctx)提取事务DB
// 2. UpdateStatus是惰性逾期提升的持久化入口,单字段UPDATE足够
type loanRepository struct {
	db *gorm.DB
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(db *gorm.DB) loan.Repository {
	return &loanRepository{db: db}
}

// Create 创建借阅记录
func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	model := &LoanModel{
		BookID:     l.BookID,
		UserID:     l.UserID,
		BorrowedAt: l.BorrowedAt,
		DueDate:    l.DueDate,
		ReturnedAt: l.ReturnedAt,
		Status:     string(l.Status),
	}

	db := getDB(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建借阅记录失败")
	}

	l.ID = model.ID
	return nil
}

// FindByID 根据ID查找借阅
func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	var model LoanModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// FindActive 查找某用户对某书的未归还借阅
// 教学要点:借书事务在锁定图书行之后调用,复合索引(book_id, user_id)覆盖查询
func (r *loanRepository) FindActive(ctx context.Context, bookID, userID uint) (*loan.Loan, error) {
	var model LoanModel
	db := getDB(ctx, r.db)
	err := db.Where("book_id = ? AND user_id = ? AND status IN ?",
		bookID, userID, []string{string(loan.StatusActive), string(loan.StatusOverdue)}).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loan.ErrLoanNotFound
		}
		return nil, apperrors.Wrap(err, "查询借阅记录失败")
	}

	return toLoanEntity(&model), nil
}

// Update 更新借阅记录(归还时写status/returned_at)
func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	db := getDB(ctx, r.db)
	err := db.Model(&LoanModel{}).
		Where("id = ?", l.ID).
		Updates(map[string]interface{}{
			"status":      string(l.Status),
			"returned_at": l.ReturnedAt,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新借阅记录失败")
	}
	return nil
}

// UpdateStatus 只更新状态字段(惰性逾期提升用)
func (r *loanRepository) UpdateStatus(ctx context.Context, id uint, status loan.Status) error {
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新借阅状态失败")
	}
	return nil
}

// List 条件查询借阅列表,按borrowed_at降序
func (r *loanRepository) List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	query := r.db.WithContext(ctx).Model(&LoanModel{})

	if filter.UserID != 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}

	var models []LoanModel
	if err := query.Order("borrowed_at DESC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询借阅列表失败")
	}

	return toLoanEntities(models), nil
}

// ListBookIDsByUser 某用户借过的全部图书ID(任意状态,去重)
func (r *loanRepository) ListBookIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Where("user_id = ?", userID).
		Distinct("book_id").
		Pluck("book_id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询借阅历史失败")
	}
	return ids, nil
}

// CountActiveByBook 某书当前未归还的借阅数(删除图书前的前置校验)
func (r *loanRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Where("book_id = ? AND status IN ?",
			bookID, []string{string(loan.StatusActive), string(loan.StatusOverdue)}).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计未归还借阅失败")
	}
	return count, nil
}

// CountByStatus 按状态统计借阅数
func (r *loanRepository) CountByStatus(ctx context.Context, statuses ...loan.Status) (int64, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Where("status IN ?", values).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "按状态统计借阅失败")
	}
	return count, nil
}

// ListRecent 最近limit条借阅,按borrowed_at降序
func (r *loanRepository) ListRecent(ctx context.Context, limit int) ([]*loan.Loan, error) {
	var models []LoanModel
	err := r.db.WithContext(ctx).
		Order("borrowed_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询最近借阅失败")
	}

	return toLoanEntities(models), nil
}

// TopBooks 借阅量前limit的图书(仪表盘人气榜)
// 教学要点:JOIN后GROUP BY,一次查询带出书名/作者,避免N+1
func (r *loanRepository) TopBooks(ctx context.Context, limit int) ([]loan.BookStat, error) {
	var stats []loan.BookStat
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Select("loans.book_id, books.title, books.author, books.cover_image, COUNT(*) AS loan_count").
		Joins("JOIN books ON books.id = loans.book_id").
		Group("loans.book_id, books.title, books.author, books.cover_image").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计图书借阅量失败")
	}
	return stats, nil
}

// TopBorrowers 借阅量前limit的member读者(仪表盘活跃榜)
func (r *loanRepository) TopBorrowers(ctx context.Context, limit int) ([]loan.BorrowerStat, error) {
	var stats []loan.BorrowerStat
	err := r.db.WithContext(ctx).Model(&LoanModel{}).
		Select("loans.user_id, users.name, users.email, COUNT(*) AS loan_count").
		Joins("JOIN users ON users.id = loans.user_id").
		Where("users.role = ?", "member").
		Group("loans.user_id, users.name, users.email").
		Order("loan_count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "统计读者借阅量失败")
	}
	return stats, nil
}

// toLoanEntity GORM模型 → 领域实体
func toLoanEntity(model *LoanModel) *loan.Loan {
	return &loan.Loan{
		ID:         model.ID,
		BookID:     model.BookID,
		UserID:     model.UserID,
		BorrowedAt: model.BorrowedAt,
		DueDate:    model.DueDate,
		ReturnedAt: model.ReturnedAt,
		Status:     loan.Status(model.Status),
	}
}

func toLoanEntities(models []LoanModel) []*loan.Loan {
	loans := make([]*loan.Loan, len(models))
	for i := range models {
		loans[i] = toLoanEntity(&models[i])
	}
	return loans
}
