package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
)

// SubmitReviewUseCase 提交评价用例
// 业务规则:
// 1. 图书必须存在
// 2. 覆盖式提交:同一读者对同一本书重复评价时更新原记录,不新增
type SubmitReviewUseCase struct {
	reviewService review.Service
	bookService   book.Service
}

// NewSubmitReviewUseCase 创建提交评价用例
func NewSubmitReviewUseCase(reviewService review.Service, bookService book.Service) *SubmitReviewUseCase {
	return &SubmitReviewUseCase{
		reviewService: reviewService,
		bookService:   bookService,
	}
}

// SubmitReviewRequest 提交评价请求
type SubmitReviewRequest struct {
	BookID  uint
	UserID  uint
	Rating  int
	Comment string
}

// ReviewResponse 评价响应DTO
type ReviewResponse struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	UserID    uint   `json:"user_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
	UserName  string `json:"user_name,omitempty"`
	CreatedAt string `json:"created_at"`
}

// Execute 执行提交
func (uc *SubmitReviewUseCase) Execute(ctx context.Context, req SubmitReviewRequest) (*ReviewResponse, error) {
	// 前置校验:图书必须存在
	if _, err := uc.bookService.GetBookByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	rv, err := uc.reviewService.Submit(ctx, req.BookID, req.UserID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}

	return &ReviewResponse{
		ID:        rv.ID,
		BookID:    rv.BookID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
