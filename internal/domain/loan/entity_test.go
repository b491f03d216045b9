package loan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
)

func TestNewLoan(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 30, 0, 0, time.FixedZone("CST", 8*3600))
	l := loan.NewLoan(7, 42, now)

	assert.Equal(t, uint(7), l.BookID)
	assert.Equal(t, uint(42), l.UserID)
	assert.Equal(t, loan.StatusActive, l.Status)
	assert.Nil(t, l.ReturnedAt)

	// 内部一律UTC,到期日为借出时刻+14天
	assert.Equal(t, time.UTC, l.BorrowedAt.Location())
	assert.Equal(t, now.UTC(), l.BorrowedAt)
	assert.Equal(t, now.UTC().Add(14*24*time.Hour), l.DueDate)
}

func TestIsPastDue(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l := loan.NewLoan(1, 1, borrowed)

	assert.False(t, l.IsPastDue(borrowed), "刚借出未过期")
	assert.False(t, l.IsPastDue(l.DueDate), "到期日当刻不算过期")
	assert.True(t, l.IsPastDue(l.DueDate.Add(time.Second)), "严格晚于到期日才过期")
}

func TestShouldPromoteToOverdue(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	late := borrowed.Add(15 * 24 * time.Hour)

	t.Run("active且过期需要提升", func(t *testing.T) {
		l := loan.NewLoan(1, 1, borrowed)
		assert.True(t, l.ShouldPromoteToOverdue(late))
	})

	t.Run("已是overdue不重复提升", func(t *testing.T) {
		l := loan.NewLoan(1, 1, borrowed)
		l.MarkOverdue()
		assert.False(t, l.ShouldPromoteToOverdue(late))
	})

	t.Run("已归还不提升", func(t *testing.T) {
		l := loan.NewLoan(1, 1, borrowed)
		require.NoError(t, l.MarkReturned(late))
		assert.False(t, l.ShouldPromoteToOverdue(late))
	})
}

func TestMarkReturned(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	returnedAt := borrowed.Add(3 * 24 * time.Hour)

	l := loan.NewLoan(1, 1, borrowed)
	require.NoError(t, l.MarkReturned(returnedAt))
	assert.Equal(t, loan.StatusReturned, l.Status)
	require.NotNil(t, l.ReturnedAt)
	assert.Equal(t, returnedAt, *l.ReturnedAt)

	// 重复归还报业务错误,状态不变
	err := l.MarkReturned(returnedAt.Add(time.Hour))
	assert.ErrorIs(t, err, loan.ErrAlreadyReturned)
	assert.Equal(t, returnedAt, *l.ReturnedAt)
}

func TestMarkReturned_OverdueLoan(t *testing.T) {
	borrowed := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	l := loan.NewLoan(1, 1, borrowed)
	l.MarkOverdue()

	// 逾期的借阅照常归还
	require.NoError(t, l.MarkReturned(borrowed.Add(20*24*time.Hour)))
	assert.Equal(t, loan.StatusReturned, l.Status)
}

func TestCanBeReturnedBy(t *testing.T) {
	l := loan.NewLoan(1, 42, time.Now())

	assert.True(t, l.CanBeReturnedBy(42, user.RoleMember), "本人可还")
	assert.False(t, l.CanBeReturnedBy(43, user.RoleMember), "他人不可还")
	assert.True(t, l.CanBeReturnedBy(43, user.RoleLibrarian), "馆员可代还")
	assert.True(t, l.CanBeReturnedBy(43, user.RoleAdmin), "管理员可代还")
}
