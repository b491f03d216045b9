package loan

import (
	"time"

	"github.com/xiebiao/library/internal/domain/user"
)

// Status 借阅状态
// 教学要点:
// 1. 状态机只有三个状态,合法流转: active → returned / active → overdue → returned
// 2. overdue不是定时任务驱动的状态,而是读路径上的惰性提升:
//    每次读到active且已过期的借阅,先持久化为overdue再返回
// 3. 使用string类型存储(与API表现层一致,便于排查问题)
type Status string

const (
	StatusActive   Status = "active"   // 在借
	StatusReturned Status = "returned" // 已归还
	StatusOverdue  Status = "overdue"  // 已逾期(仍未归还)
)

// IsValid 校验状态取值
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusReturned, StatusOverdue:
		return true
	}
	return false
}

// LoanPeriod 借阅期限:整14天(UTC时刻运算,与时区无关)
const LoanPeriod = 14 * 24 * time.Hour

// Loan 借阅记录实体(聚合根)
// 不变量:
// 1. 同一(BookID, UserID)最多存在一条active状态的记录
// 2. DueDate恒等于BorrowedAt + 14天
// 3. 记录除级联删除外从不物理删除
type Loan struct {
	ID         uint
	BookID     uint
	UserID     uint
	BorrowedAt time.Time
	DueDate    time.Time
	ReturnedAt *time.Time // 未归还时为nil
	Status     Status
}

// NewLoan 创建新借阅(工厂方法)
// 借出时刻即now,到期日=now+14天
func NewLoan(bookID, userID uint, now time.Time) *Loan {
	now = now.UTC()
	return &Loan{
		BookID:     bookID,
		UserID:     userID,
		BorrowedAt: now,
		DueDate:    now.Add(LoanPeriod),
		Status:     StatusActive,
	}
}

// IsPastDue 是否已过期("过期"=当前时刻严格晚于到期日)
func (l *Loan) IsPastDue(now time.Time) bool {
	return now.After(l.DueDate)
}

// ShouldPromoteToOverdue 是否需要惰性提升为overdue
// 只有active状态的记录才会被提升;overdue是持久状态,不会回退
func (l *Loan) ShouldPromoteToOverdue(now time.Time) bool {
	return l.Status == StatusActive && l.IsPastDue(now)
}

// MarkOverdue 标记为逾期
func (l *Loan) MarkOverdue() {
	l.Status = StatusOverdue
}

// MarkReturned 标记为已归还(领域行为)
// 业务规则: 已归还的记录不能再次归还(幂等冲突由调用方转换为业务错误)
func (l *Loan) MarkReturned(now time.Time) error {
	if l.Status == StatusReturned {
		return ErrAlreadyReturned
	}
	now = now.UTC()
	l.Status = StatusReturned
	l.ReturnedAt = &now
	return nil
}

// CanBeReturnedBy 归还权限校验
// 业务规则: 借阅人本人,或馆方人员(admin/librarian)可以执行归还
func (l *Loan) CanBeReturnedBy(userID uint, role user.Role) bool {
	return l.UserID == userID || role.IsStaff()
}
