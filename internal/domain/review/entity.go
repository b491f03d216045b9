package review

import (
	"time"
)

// Review 评价实体(聚合根)
// DDD设计说明:
// 1. 同一(BookID, UserID)最多一条记录:再次提交覆盖原评分/评语,
//    不产生新行(数据库UNIQUE索引兜底)
// 2. Rating为1-5的整数星级
type Review struct {
	ID        uint
	BookID    uint
	UserID    uint
	Rating    int    // 1-5星
	Comment   string // 评语(可选)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewReview 创建新评价(工厂方法)
func NewReview(bookID, userID uint, rating int, comment string) *Review {
	now := time.Now()
	return &Review{
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Revise 覆盖评分与评语(再次提交时)
func (r *Review) Revise(rating int, comment string) {
	r.Rating = rating
	r.Comment = comment
	r.UpdatedAt = time.Now()
}

// IsValidRating 评分取值校验
func IsValidRating(rating int) bool {
	return rating >= 1 && rating <= 5
}

// RatingSummary 某本书的评分聚合
// Average在零条评价时为nil(区别于平均0分)
type RatingSummary struct {
	Average *float64 `json:"average_rating"`
	Count   int64    `json:"review_count"`
}

// BookReview 带评价人姓名的评价(列表展示用)
type BookReview struct {
	Review
	UserName string `json:"user_name"`
}
