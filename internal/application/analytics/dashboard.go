// Package analytics 运营仪表盘用例
package analytics

import (
	"context"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
)

// DashboardUseCase 仪表盘用例(馆方人员查看)
// 聚合馆藏、读者、借阅三个维度的统计数据
type DashboardUseCase struct {
	bookRepo book.Repository
	userRepo user.Repository
	loanRepo loan.Repository
}

// NewDashboardUseCase 创建仪表盘用例
func NewDashboardUseCase(
	bookRepo book.Repository,
	userRepo user.Repository,
	loanRepo loan.Repository,
) *DashboardUseCase {
	return &DashboardUseCase{
		bookRepo: bookRepo,
		userRepo: userRepo,
		loanRepo: loanRepo,
	}
}

// Dashboard 仪表盘数据
type Dashboard struct {
	TotalBooks           int64                `json:"total_books"`            // 馆藏种数
	TotalAvailableCopies int64                `json:"total_available_copies"` // 可借副本总数
	TotalUsers           int64                `json:"total_users"`            // 注册用户数
	ActiveLoans          int64                `json:"active_loans"`           // 未归还借阅数(含逾期)
	OverdueLoans         int64                `json:"overdue_loans"`          // 逾期借阅数
	CategoryBreakdown    []book.CategoryCount `json:"category_breakdown"`    // 分类分布
	PopularBooks         []loan.BookStat      `json:"popular_books"`         // 借阅量榜
	ActiveBorrowers      []loan.BorrowerStat  `json:"active_borrowers"`      // 活跃读者榜
	RecentLoans          []RecentLoan         `json:"recent_loans"`          // 最近借阅
}

// RecentLoan 最近借阅项
type RecentLoan struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	BorrowedAt string `json:"borrowed_at"`
	Status     string `json:"status"`
}

// 榜单长度
const (
	topBooksLimit     = 5
	topBorrowersLimit = 5
	recentLoansLimit  = 10
)

// Execute 聚合仪表盘数据
func (uc *DashboardUseCase) Execute(ctx context.Context) (*Dashboard, error) {
	dash := &Dashboard{}

	var err error
	if dash.TotalBooks, err = uc.bookRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dash.TotalAvailableCopies, err = uc.bookRepo.SumAvailableCopies(ctx); err != nil {
		return nil, err
	}
	if dash.TotalUsers, err = uc.userRepo.Count(ctx); err != nil {
		return nil, err
	}
	if dash.ActiveLoans, err = uc.loanRepo.CountByStatus(ctx, loan.StatusActive, loan.StatusOverdue); err != nil {
		return nil, err
	}
	if dash.OverdueLoans, err = uc.loanRepo.CountByStatus(ctx, loan.StatusOverdue); err != nil {
		return nil, err
	}
	if dash.CategoryBreakdown, err = uc.bookRepo.CountByCategory(ctx); err != nil {
		return nil, err
	}
	if dash.PopularBooks, err = uc.loanRepo.TopBooks(ctx, topBooksLimit); err != nil {
		return nil, err
	}
	if dash.ActiveBorrowers, err = uc.loanRepo.TopBorrowers(ctx, topBorrowersLimit); err != nil {
		return nil, err
	}

	recent, err := uc.loanRepo.ListRecent(ctx, recentLoansLimit)
	if err != nil {
		return nil, err
	}
	dash.RecentLoans = make([]RecentLoan, len(recent))
	for i, l := range recent {
		dash.RecentLoans[i] = RecentLoan{
			ID:         l.ID,
			BookID:     l.BookID,
			UserID:     l.UserID,
			BorrowedAt: l.BorrowedAt.Format(time.RFC3339),
			Status:     string(l.Status),
		}
	}

	return dash, nil
}
