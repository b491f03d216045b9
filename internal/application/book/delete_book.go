package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
)

// DeleteBookUseCase 图书下架用例(馆方人员操作)
// 业务规则: 存在未归还借阅的图书不能删除
type DeleteBookUseCase struct {
	bookService book.Service
	loanRepo    loan.Repository
}

// NewDeleteBookUseCase 创建下架用例
func NewDeleteBookUseCase(bookService book.Service, loanRepo loan.Repository) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
		loanRepo:    loanRepo,
	}
}

// Execute 执行删除
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	// 前置校验:图书必须存在
	if _, err := uc.bookService.GetBookByID(ctx, id); err != nil {
		return err
	}

	// 前置校验:没有未归还的借阅
	active, err := uc.loanRepo.CountActiveByBook(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return book.ErrBookHasActiveLoans
	}

	return uc.bookService.RemoveBook(ctx, id)
}
