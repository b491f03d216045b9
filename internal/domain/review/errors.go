package review

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidRating, "评分必须是1-5的整数")

	// ErrDeleteForbidden 无权删除他人评价
	ErrDeleteForbidden = apperrors.New(apperrors.ErrCodeForbidden, "只有评价作者本人或管理员可以删除")
)
