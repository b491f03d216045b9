package book

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// ListBooksUseCase 馆藏列表用例
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{bookService: bookService}
}

// Execute 执行列表查询
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookResponse, error) {
	books, err := uc.bookService.ListBooks(ctx, book.ListFilter{
		Search:        req.Search,
		Category:      req.Category,
		Author:        req.Author,
		AvailableOnly: req.AvailableOnly,
	})
	if err != nil {
		return nil, err
	}

	result := make([]*BookResponse, len(books))
	for i, b := range books {
		result[i] = toBookResponse(b)
	}
	return result, nil
}

// ListBooksRequest 列表查询请求
type ListBooksRequest struct {
	Search        string
	Category      string
	Author        string
	AvailableOnly bool
}

// GetBookUseCase 图书详情用例
// 详情页额外补充评分汇总(平均分/评价数)
type GetBookUseCase struct {
	bookService book.Service
	reviewRepo  review.Repository
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service, reviewRepo review.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		reviewRepo:  reviewRepo,
	}
}

// BookDetail 图书详情(含评分汇总)
type BookDetail struct {
	BookResponse
	AverageRating *float64 `json:"average_rating"` // 零评价时为null
	ReviewCount   int64    `json:"review_count"`
}

// Execute 执行详情查询
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetail, error) {
	b, err := uc.bookService.GetBookByID(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := uc.reviewRepo.AggregateByBook(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		BookResponse:  *toBookResponse(b),
		AverageRating: summary.Average,
		ReviewCount:   summary.Count,
	}, nil
}

// ListCategoriesUseCase 分类列表用例
type ListCategoriesUseCase struct {
	bookService book.Service
}

// NewListCategoriesUseCase 创建分类列表用例
func NewListCategoriesUseCase(bookService book.Service) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{bookService: bookService}
}

// Execute 执行分类查询
func (uc *ListCategoriesUseCase) Execute(ctx context.Context) ([]string, error) {
	return uc.bookService.ListCategories(ctx)
}
