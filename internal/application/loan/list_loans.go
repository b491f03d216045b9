package loan

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
)

// ListLoansUseCase 借阅列表用例
// 设计说明:
// 1. 读路径经过loan.Service,active且已过期的记录被惰性提升为overdue
// 2. 批量补充图书与借阅人信息,避免逐条查询(N+1)
type ListLoansUseCase struct {
	loanService loan.Service
	bookRepo    book.Repository
	userRepo    user.Repository
}

// NewListLoansUseCase 创建借阅列表用例
func NewListLoansUseCase(
	loanService loan.Service,
	bookRepo book.Repository,
	userRepo user.Repository,
) *ListLoansUseCase {
	return &ListLoansUseCase{
		loanService: loanService,
		bookRepo:    bookRepo,
		userRepo:    userRepo,
	}
}

// ListLoansRequest 借阅列表请求
// UserID为0表示不过滤(馆方人员查看全部)
type ListLoansRequest struct {
	UserID uint
	Status string
}

// LoanDetail 借阅明细(补充图书与借阅人信息)
type LoanDetail struct {
	LoanResponse
	BookTitle  string `json:"book_title"`
	BookAuthor string `json:"book_author"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
}

// Execute 执行列表查询
func (uc *ListLoansUseCase) Execute(ctx context.Context, req ListLoansRequest) ([]*LoanDetail, error) {
	loans, err := uc.loanService.ListLoans(ctx, loan.ListFilter{
		UserID: req.UserID,
		Status: loan.Status(req.Status),
	})
	if err != nil {
		return nil, err
	}

	if len(loans) == 0 {
		return []*LoanDetail{}, nil
	}

	// 批量取图书与借阅人,去重后一次查询
	bookIDs := uniqueIDs(loans, func(l *loan.Loan) uint { return l.BookID })
	userIDs := uniqueIDs(loans, func(l *loan.Loan) uint { return l.UserID })

	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}

	bookMap := make(map[uint]*book.Book, len(books))
	for _, b := range books {
		bookMap[b.ID] = b
	}
	userMap := make(map[uint]*user.User, len(users))
	for _, u := range users {
		userMap[u.ID] = u
	}

	details := make([]*LoanDetail, len(loans))
	for i, l := range loans {
		detail := &LoanDetail{LoanResponse: *toLoanResponse(l)}
		if b, ok := bookMap[l.BookID]; ok {
			detail.BookTitle = b.Title
			detail.BookAuthor = b.Author
		}
		if u, ok := userMap[l.UserID]; ok {
			detail.UserName = u.Name
			detail.UserEmail = u.Email
		}
		details[i] = detail
	}
	return details, nil
}

// GetLoanUseCase 借阅详情用例(读路径同样触发惰性逾期提升)
type GetLoanUseCase struct {
	loanService loan.Service
}

// NewGetLoanUseCase 创建借阅详情用例
func NewGetLoanUseCase(loanService loan.Service) *GetLoanUseCase {
	return &GetLoanUseCase{loanService: loanService}
}

// Execute 执行详情查询
func (uc *GetLoanUseCase) Execute(ctx context.Context, id uint) (*LoanResponse, error) {
	l, err := uc.loanService.GetLoan(ctx, id)
	if err != nil {
		return nil, err
	}
	return toLoanResponse(l), nil
}

// uniqueIDs 提取去重ID,保持首次出现顺序
func uniqueIDs(loans []*loan.Loan, key func(*loan.Loan) uint) []uint {
	seen := make(map[uint]bool, len(loans))
	var ids []uint
	for _, l := range loans {
		id := key(l)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}
