package loan

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/pkg/metrics"
	"github.com/xiebiao/library/pkg/mq"
)

// TxManager 事务管理器抽象
// 应用层只依赖这个最小接口,单测可以用内存实现替换MySQL事务
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 借还事件发布抽象(RabbitMQ或空实现)
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// BorrowBookUseCase 借书用例
// 教学要点:这是整个系统最核心的用例
// 涉及:事务处理、悲观锁、重复借阅校验、副本计数维护
type BorrowBookUseCase struct {
	loanRepo  loan.Repository
	bookRepo  book.Repository
	txManager TxManager
	now       loan.Clock
	publisher EventPublisher   // 可为nil(未启用消息队列)
	metrics   *metrics.Metrics // 可为nil(测试环境)
}

// NewBorrowBookUseCase 创建借书用例
func NewBorrowBookUseCase(
	loanRepo loan.Repository,
	bookRepo book.Repository,
	txManager TxManager,
	now loan.Clock,
	publisher EventPublisher,
	m *metrics.Metrics,
) *BorrowBookUseCase {
	if now == nil {
		now = time.Now
	}
	return &BorrowBookUseCase{
		loanRepo:  loanRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
		now:       now,
		publisher: publisher,
		metrics:   m,
	}
}

// BorrowBookRequest 借书请求
type BorrowBookRequest struct {
	BookID uint // 图书ID
	UserID uint // 借阅人ID(从JWT中提取)
}

// LoanResponse 借阅响应DTO
type LoanResponse struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	BorrowedAt string `json:"borrowed_at"`
	DueDate    string `json:"due_date"`
	ReturnedAt string `json:"returned_at,omitempty"`
	Status     string `json:"status"`
}

// Execute 执行借书
// 教学重点:防止超借的完整流程
//
// 核心问题:可借副本超扣
// 场景:某书可借1本,两个读者同时借
// 错误实现:先SELECT判断再UPDATE,两个请求都通过判断,借出2本
//
// 正确实现:悲观锁+原子扣减
//  1. SELECT FOR UPDATE 锁定图书行
//  2. 检查是否有可借副本、是否重复借阅
//  3. 创建借阅记录
//  4. 条件UPDATE原子扣减可借副本
//  5. COMMIT释放锁
func (uc *BorrowBookUseCase) Execute(ctx context.Context, req BorrowBookRequest) (*LoanResponse, error) {
	var created *loan.Loan

	err := uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		// 1. 锁定图书行(悲观锁,防止并发超借)
		b, err := uc.bookRepo.LockByID(txCtx, req.BookID)
		if err != nil {
			return err
		}

		// 2. 检查可借副本
		// 必须在锁定后检查,否则可能并发扣减导致超借
		if !b.IsAvailable() {
			return book.ErrNoAvailableCopies
		}

		// 3. 重复借阅校验:同一读者对同一本书最多一条未归还记录
		_, err = uc.loanRepo.FindActive(txCtx, req.BookID, req.UserID)
		if err == nil {
			return loan.ErrDuplicateLoan
		}
		if !errors.Is(err, loan.ErrLoanNotFound) {
			return err
		}

		// 4. 创建借阅记录(到期日=借出时刻+14天)
		created = loan.NewLoan(req.BookID, req.UserID, uc.now())
		if err := uc.loanRepo.Create(txCtx, created); err != nil {
			return err
		}

		// 5. 原子扣减可借副本
		return uc.bookRepo.UpdateAvailableCopies(txCtx, req.BookID, -1)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.LoanBorrowed()
	}
	uc.publishEvent(mq.RoutingKeyLoanBorrowed, created)

	return toLoanResponse(created), nil
}

// publishEvent 发布借还事件(尽力而为,失败只记日志)
func (uc *BorrowBookUseCase) publishEvent(routingKey string, l *loan.Loan) {
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
		log.Printf("发布借阅事件失败: loan_id=%d, err=%v", l.ID, err)
	}
}

// toLoanResponse 领域实体 → 应用层DTO
func toLoanResponse(l *loan.Loan) *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		BookID:     l.BookID,
		UserID:     l.UserID,
		BorrowedAt: l.BorrowedAt.Format(time.RFC3339),
		DueDate:    l.DueDate.Format(time.RFC3339),
		Status:     string(l.Status),
	}
	if l.ReturnedAt != nil {
		resp.ReturnedAt = l.ReturnedAt.Format(time.RFC3339)
	}
	return resp
}
