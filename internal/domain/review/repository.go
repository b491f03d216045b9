package review

import (
	"context"
)

// Repository 评价仓储接口
type Repository interface {
	// Create 创建评价
	Create(ctx context.Context, review *Review) error

	// Update 更新评价(覆盖评分/评语)
	Update(ctx context.Context, review *Review) error

	// FindByID 根据ID查找评价,不存在返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// FindByBookAndUser 查找某用户对某书的评价
	// 不存在返回ErrReviewNotFound(覆盖式提交的判定依据)
	FindByBookAndUser(ctx context.Context, bookID, userID uint) (*Review, error)

	// ListByBook 某书的全部评价(带评价人姓名),按created_at降序
	ListByBook(ctx context.Context, bookID uint) ([]*BookReview, error)

	// ListByUserMinRating 某用户评分>=minRating的全部评价
	// 推荐引擎提取口味信号用
	ListByUserMinRating(ctx context.Context, userID uint, minRating int) ([]*Review, error)

	// Delete 删除评价
	Delete(ctx context.Context, id uint) error

	// AggregateByBook 某书的平均评分与评价数
	// 零条评价时Average为nil、Count为0(不算错误)
	AggregateByBook(ctx context.Context, bookID uint) (RatingSummary, error)
}
