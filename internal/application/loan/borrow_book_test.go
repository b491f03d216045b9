package loan_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apploan "github.com/xiebiao/library/internal/application/loan"
	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

// loanTestEnv 借/还用例的端到端测试环境(内存仓储)
type loanTestEnv struct {
	bookRepo book.Repository
	loanRepo loan.Repository
	borrow   *apploan.BorrowBookUseCase
	ret      *apploan.ReturnLoanUseCase
}

func newLoanTestEnv(now time.Time) *loanTestEnv {
	store := memory.NewStore()
	bookRepo := memory.NewBookRepository(store)
	loanRepo := memory.NewLoanRepository(store)
	tx := memory.NewTxManager()
	clock := func() time.Time { return now }

	return &loanTestEnv{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
		borrow:   apploan.NewBorrowBookUseCase(loanRepo, bookRepo, tx, clock, nil, nil),
		ret:      apploan.NewReturnLoanUseCase(loanRepo, bookRepo, tx, clock, nil, nil),
	}
}

func (e *loanTestEnv) addBook(t *testing.T, copies int) *book.Book {
	t.Helper()
	b := book.NewBook("Dune", "Herbert", "", "", 0, "Science Fiction", "", "", copies, "")
	require.NoError(t, e.bookRepo.Create(context.Background(), b))
	return b
}

func (e *loanTestEnv) availableCopies(t *testing.T, bookID uint) int {
	t.Helper()
	b, err := e.bookRepo.FindByID(context.Background(), bookID)
	require.NoError(t, err)
	return b.AvailableCopies
}

func TestBorrowBook(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("借书成功并扣减可借数", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 2)

		resp, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		assert.Equal(t, b.ID, resp.BookID)
		assert.Equal(t, string(loan.StatusActive), resp.Status)
		assert.Equal(t, now.Format(time.RFC3339), resp.BorrowedAt)
		assert.Equal(t, now.Add(14*24*time.Hour).Format(time.RFC3339), resp.DueDate)
		assert.Equal(t, 1, env.availableCopies(t, b.ID))
	})

	t.Run("无可借副本时拒绝", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		_, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		// 唯一副本已借出,其他用户借不到
		_, err = env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 2})
		assert.ErrorIs(t, err, book.ErrNoAvailableCopies)
		assert.Equal(t, 0, env.availableCopies(t, b.ID))
	})

	t.Run("同一用户不能重复在借同一本书", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 3)

		_, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		_, err = env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		assert.ErrorIs(t, err, loan.ErrDuplicateLoan)
		assert.Equal(t, 2, env.availableCopies(t, b.ID), "失败的借阅不扣副本")
	})

	t.Run("逾期未归还同样算重复借阅", func(t *testing.T) {
		// 逾期提升后借阅仍是未归还状态,不能再借同一本书的第二个副本
		env := newLoanTestEnv(now)
		b := env.addBook(t, 3)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)
		require.NoError(t, env.loanRepo.UpdateStatus(context.Background(), borrowed.ID, loan.StatusOverdue))

		_, err = env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		assert.ErrorIs(t, err, loan.ErrDuplicateLoan)
	})

	t.Run("图书不存在", func(t *testing.T) {
		env := newLoanTestEnv(now)
		_, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: 999, UserID: 1})
		assert.ErrorIs(t, err, book.ErrBookNotFound)
	})
}

func TestReturnLoan(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("归还成功并回加可借数", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)
		require.Equal(t, 0, env.availableCopies(t, b.ID))

		resp, err := env.ret.Execute(context.Background(), apploan.ReturnLoanRequest{
			LoanID: borrowed.ID, RequesterID: 1, RequesterRole: user.RoleMember,
		})
		require.NoError(t, err)

		assert.Equal(t, string(loan.StatusReturned), resp.Status)
		assert.NotEmpty(t, resp.ReturnedAt)
		assert.Equal(t, 1, env.availableCopies(t, b.ID))
	})

	t.Run("重复归还报错且副本数不变", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		req := apploan.ReturnLoanRequest{LoanID: borrowed.ID, RequesterID: 1, RequesterRole: user.RoleMember}
		_, err = env.ret.Execute(context.Background(), req)
		require.NoError(t, err)

		_, err = env.ret.Execute(context.Background(), req)
		assert.ErrorIs(t, err, loan.ErrAlreadyReturned)
		assert.Equal(t, 1, env.availableCopies(t, b.ID))
	})

	t.Run("非借阅人且非馆方人员不能归还", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		_, err = env.ret.Execute(context.Background(), apploan.ReturnLoanRequest{
			LoanID: borrowed.ID, RequesterID: 2, RequesterRole: user.RoleMember,
		})
		assert.ErrorIs(t, err, loan.ErrReturnForbidden)
		assert.Equal(t, 0, env.availableCopies(t, b.ID))
	})

	t.Run("馆员可以代还", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		_, err = env.ret.Execute(context.Background(), apploan.ReturnLoanRequest{
			LoanID: borrowed.ID, RequesterID: 9, RequesterRole: user.RoleLibrarian,
		})
		assert.NoError(t, err)
	})

	t.Run("归还后可以再次借阅同一本书", func(t *testing.T) {
		env := newLoanTestEnv(now)
		b := env.addBook(t, 1)

		borrowed, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)

		_, err = env.ret.Execute(context.Background(), apploan.ReturnLoanRequest{
			LoanID: borrowed.ID, RequesterID: 1, RequesterRole: user.RoleMember,
		})
		require.NoError(t, err)

		again, err := env.borrow.Execute(context.Background(), apploan.BorrowBookRequest{BookID: b.ID, UserID: 1})
		require.NoError(t, err)
		assert.NotEqual(t, borrowed.ID, again.ID, "新借阅是一条新记录")
	})

	t.Run("借阅记录不存在", func(t *testing.T) {
		env := newLoanTestEnv(now)
		_, err := env.ret.Execute(context.Background(), apploan.ReturnLoanRequest{
			LoanID: 999, RequesterID: 1, RequesterRole: user.RoleAdmin,
		})
		assert.ErrorIs(t, err, loan.ErrLoanNotFound)
	})
}
