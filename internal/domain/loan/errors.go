package loan

import (
	apperrors "github.com/xiebiao/library/pkg/errors"
)

// 借阅领域错误定义
var (
	// ErrLoanNotFound 借阅记录不存在
	ErrLoanNotFound = apperrors.New(apperrors.ErrCodeLoanNotFound, "借阅记录不存在")

	// ErrDuplicateLoan 同一本书已有未归还的借阅
	ErrDuplicateLoan = apperrors.New(apperrors.ErrCodeDuplicateLoan, "您已借阅此书且尚未归还")

	// ErrAlreadyReturned 重复归还
	ErrAlreadyReturned = apperrors.New(apperrors.ErrCodeAlreadyReturned, "该借阅已归还,请勿重复操作")

	// ErrReturnForbidden 无权归还他人的借阅
	ErrReturnForbidden = apperrors.New(apperrors.ErrCodeForbidden, "只有借阅人本人或馆方人员可以归还")

	// ErrInvalidStatus 非法的状态筛选值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的借阅状态")
)
