package loan

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// ReturnLoanUseCase 还书用例
// 业务规则:
// 1. 借阅人本人或馆方人员(admin/librarian)可以执行归还
// 2. 已归还的记录再次归还返回冲突错误(不是幂等成功)
// 3. 归还写记录与副本计数+1在同一事务内完成
type ReturnLoanUseCase struct {
	loanRepo  loan.Repository
	bookRepo  bookCopyAdjuster
	txManager TxManager
	now       loan.Clock
	publisher EventPublisher
	metrics   *metrics.Metrics
}

// bookCopyAdjuster 还书用例对图书仓储的最小依赖
type bookCopyAdjuster interface {
	UpdateAvailableCopies(ctx context.Context, id uint, delta int) error
}

// NewReturnLoanUseCase 创建还书用例
func NewReturnLoanUseCase(
	loanRepo loan.Repository,
	bookRepo bookCopyAdjuster,
	txManager TxManager,
	now loan.Clock,
	publisher EventPublisher,
	m *metrics.Metrics,
) *ReturnLoanUseCase {
	if now == nil {
		now = time.Now
	}
	return &ReturnLoanUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		now:       now,
		publisher: publisher,
		metrics:   m,
	}
}

// ReturnLoanRequest 还书请求
type ReturnLoanRequest struct {
	LoanID        uint      // 借阅记录ID
	RequesterID   uint      // 发起人ID(从JWT中提取)
	RequesterRole user.Role // 发起人角色
}

// Execute 执行还书
func (uc *ReturnLoanUseCase) Execute(ctx context.Context, req ReturnLoanRequest) (*LoanResponse, error) {
	var returned *loan.Loan

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 查找借阅记录
		l, err := uc.loanRepo.FindByID(txCtx, req.LoanID)
		if err != nil {
			return err
		}

		// 2. 权限校验:本人或馆方人员
		if !l.CanBeReturnedBy(req.RequesterID, req.RequesterRole) {
			return loan.ErrReturnForbidden
		}

		// 3. 状态流转:已归还的记录拒绝再次归还
		if err := l.MarkReturned(uc.now()); err != nil {
			return err
		}

		// 4. 持久化归还
		if err := uc.loanRepo.Update(txCtx, l); err != nil {
			return err
		}

		// 5. 可借副本+1(与借出对称,同一事务保证不变量)
		if err := uc.bookRepo.UpdateAvailableCopies(txCtx, l.BookID, 1); err != nil {
			return err
		}

		returned = l
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoanReturned()
	}
	uc.publishEvent(mq.RoutingKeyLoanReturned, returned)

	return toLoanResponse(returned), nil
}

// publishEvent 发布归还事件
func (uc *ReturnLoanUseCase) publishEvent(routingKey string, l *loan.Loan) {
	if uc.publisher == nil {
		return
	}
	event := mq.LoanEvent{
		LoanID:     l.ID,
		BookID:     l.BookID,
		UserID:     l.UserID,
		Status:     string(l.Status),
		DueDate:    l.DueDate,
		OccurredAt: time.Now(),
	}
	if err := uc.publisher.Publish(routingKey, event); err != nil {
		log.Printf("发布归还事件失败: loan_id=%d, err=%v", l.ID, err)
	}
}
