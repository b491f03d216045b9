package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
)

// UpdateBookUseCase 图书信息维护用例(馆方人员操作)
// 业务规则: 调整TotalCopies时AvailableCopies同步偏移相同差值
// (由domain层的AdjustTotalCopies保证)
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建维护用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookService: bookService}
}

// Execute 执行更新
func (uc *UpdateBookUseCase) Execute(ctx context.Context, id uint, req UpdateBookRequest) (*BookResponse, error) {
	b, err := uc.bookService.UpdateBook(ctx, id,
		req.Title, req.Author, req.ISBN, req.Publisher, req.PublishedYear,
		req.Category, req.Description, req.CoverImage, req.TotalCopies, req.Tags)
	if err != nil {
		return nil, err
	}

	return toBookResponse(b), nil
}

// UpdateBookRequest 更新请求(零值字段跳过)
type UpdateBookRequest struct {
	Title         string
	Author        string
	ISBN          string
	Publisher     string
	PublishedYear int
	Category      string
	Description   string
	CoverImage    string
	TotalCopies   int // 0表示不调整副本总数
	Tags          string
}
