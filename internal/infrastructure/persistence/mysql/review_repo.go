package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/library/internal/domain/review"
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// reviewRepository 评价仓储实现(MySQL)
// (book_id, user_id)唯一索引兜底并发下的重复提交
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create 创建评价
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:  rv.BookID,
		UserID:  rv.UserID,
		Rating:  rv.Rating,
		Comment: rv.Comment,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			// 并发下两个请求同时走到Create,唯一索引拦下后者
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "评价已存在")
		}
		return apperrors.Wrap(err, "创建评价失败")
	}

	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt

	return nil
}

// Update 更新评价(覆盖评分/评语)
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{
			"rating":  rv.Rating,
			"comment": rv.Comment,
		}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新评价失败")
	}
	return nil
}

// FindByID 根据ID查找评价
func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}

	return toReviewEntity(&model), nil
}

// FindByBookAndUser 查找某用户对某书的评价
func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*review.Review, error) {
	var model ReviewModel
	err := r.db.WithContext(ctx).
		Where("book_id = ? AND user_id = ?", bookID, userID).
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}

	return toReviewEntity(&model), nil
}

// ListByBook 某书的全部评价(带评价人姓名),按created_at降序
func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.BookReview, error) {
	type row struct {
		ReviewModel
		UserName string
	}

	var rows []row
	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("reviews.*, users.name AS user_name").
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.book_id = ?", bookID).
		Order("reviews.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书评价失败")
	}

	result := make([]*review.BookReview, len(rows))
	for i := range rows {
		result[i] = &review.BookReview{
			Review:   *toReviewEntity(&rows[i].ReviewModel),
			UserName: rows[i].UserName,
		}
	}
	return result, nil
}

// ListByUserMinRating 某用户评分>=minRating的全部评价(推荐引擎口味信号)
func (r *reviewRepository) ListByUserMinRating(ctx context.Context, userID uint, minRating int) ([]*review.Review, error) {
	var models []ReviewModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND rating >= ?", userID, minRating).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户评价失败")
	}

	result := make([]*review.Review, len(models))
	for i := range models {
		result[i] = toReviewEntity(&models[i])
	}
	return result, nil
}

// Delete 删除评价
func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&ReviewModel{}, id)

	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}

	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}

	return nil
}

// AggregateByBook 某书的平均评分与评价数
// 零条评价时Average为nil(区别于"平均0分")
func (r *reviewRepository) AggregateByBook(ctx context.Context, bookID uint) (review.RatingSummary, error) {
	var agg struct {
		Average *float64
		Count   int64
	}

	err := r.db.WithContext(ctx).Model(&ReviewModel{}).
		Select("AVG(rating) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&agg).Error
	if err != nil {
		return review.RatingSummary{}, apperrors.Wrap(err, "统计图书评分失败")
	}

	return review.RatingSummary{Average: agg.Average, Count: agg.Count}, nil
}

// toReviewEntity GORM模型 → 领域实体
func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		BookID:    model.BookID,
		UserID:    model.UserID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
