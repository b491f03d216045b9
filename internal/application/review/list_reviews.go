package review

import (
	"context"

	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
)

// ListReviewsUseCase 图书评价列表用例
type ListReviewsUseCase struct {
	reviewService review.Service
}

// NewListReviewsUseCase 创建评价列表用例
func NewListReviewsUseCase(reviewService review.Service) *ListReviewsUseCase {
	return &ListReviewsUseCase{reviewService: reviewService}
}

// Execute 执行列表查询
func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID uint) ([]*ReviewResponse, error) {
	reviews, err := uc.reviewService.ListByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	result := make([]*ReviewResponse, len(reviews))
	for i, rv := range reviews {
		result[i] = &ReviewResponse{
			ID:        rv.ID,
			BookID:    rv.BookID,
			UserID:    rv.UserID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
			UserName:  rv.UserName,
			CreatedAt: rv.CreatedAt.Format("2006-01-02 15:04:05"),
		}
	}
	return result, nil
}

// DeleteReviewUseCase 删除评价用例
// 业务规则: 评价作者本人或admin可以删除
type DeleteReviewUseCase struct {
	reviewService review.Service
}

// NewDeleteReviewUseCase 创建删除评价用例
func NewDeleteReviewUseCase(reviewService review.Service) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{reviewService: reviewService}
}

// Execute 执行删除
func (uc *DeleteReviewUseCase) Execute(ctx context.Context, reviewID, requesterID uint, requesterRole user.Role) error {
	return uc.reviewService.Delete(ctx, reviewID, requesterID, requesterRole)
}
