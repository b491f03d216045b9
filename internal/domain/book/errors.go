package book

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrAuthorRequired 作者必填
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空")

	// ErrInvalidCopies 无效的副本数
	ErrInvalidCopies = apperrors.New(apperrors.ErrCodeInvalidParams, "馆藏副本数必须>=1")

	// ErrBookHasActiveLoans 存在未归还的借阅
	ErrBookHasActiveLoans = apperrors.New(apperrors.ErrCodeBookHasLoans, "该图书存在未归还的借阅,不能删除")

	// ErrNoAvailableCopies 无可借副本(借出时仓储层的计数守护触发)
	ErrNoAvailableCopies = apperrors.New(apperrors.ErrCodeBookUnavailable, "该图书暂无可借副本")
)
