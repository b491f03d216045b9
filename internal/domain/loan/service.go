package loan

import (
	"context"
	"time"
)

// Service 借阅领域服务接口
// 设计说明:
// 1. 本服务承担借阅生命周期的"读侧":查询 + 惰性逾期提升
//    借/还属于跨聚合事务(要同时改副本计数),由应用层用例在TxManager中编排
// 2. 读即修正(read-with-side-effect):GetLoan/ListLoans在返回前,
//    把已过期的active借阅持久化为overdue——这是接口契约的一部分,
//    调用方拿到的状态保证与库中一致
type Service interface {
	// GetLoan 查询单条借阅(含惰性逾期提升)
	GetLoan(ctx context.Context, id uint) (*Loan, error)

	// ListLoans 条件查询借阅列表(含惰性逾期提升),按borrowed_at降序
	ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error)
}

// OverdueHook 逾期提升回调(指标计数、事件发布)
// 为nil时跳过;回调失败不影响主流程
type OverdueHook func(l *Loan)

type service struct {
	repo      Repository
	now       Clock
	onOverdue OverdueHook
}

// NewService 创建借阅领域服务
// now为nil时使用time.Now
func NewService(repo Repository, now Clock, onOverdue OverdueHook) Service {
	if now == nil {
		now = time.Now
	}
	return &service{repo: repo, now: now, onOverdue: onOverdue}
}

// GetLoan 查询单条借阅
func (s *service) GetLoan(ctx context.Context, id uint) (*Loan, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.promoteIfOverdue(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

// ListLoans 条件查询借阅列表
// 逾期提升逐条持久化后才返回,保证后续任何读取都看到overdue
func (s *service) ListLoans(ctx context.Context, filter ListFilter) ([]*Loan, error) {
	loans, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	for _, l := range loans {
		if err := s.promoteIfOverdue(ctx, l); err != nil {
			return nil, err
		}
	}

	return loans, nil
}

// promoteIfOverdue 惰性逾期提升
// active且now严格晚于dueDate → 先持久化overdue,再改内存状态
func (s *service) promoteIfOverdue(ctx context.Context, l *Loan) error {
	if !l.ShouldPromoteToOverdue(s.now()) {
		return nil
	}

	if err := s.repo.UpdateStatus(ctx, l.ID, StatusOverdue); err != nil {
		return err
	}
	l.MarkOverdue()

	if s.onOverdue != nil {
		s.onOverdue(l)
	}
	return nil
}
