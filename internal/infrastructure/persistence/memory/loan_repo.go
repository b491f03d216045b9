package memory

import (
	"context"
	"sort"

	"github.com/xiebiao/library/internal/domain/loan"
)

// loanRepository 借阅仓储内存实现
type loanRepository struct {
	store *Store
}

// NewLoanRepository 创建借阅仓储
func NewLoanRepository(store *Store) loan.Repository {
	return &loanRepository{store: store}
}

func (r *loanRepository) Create(ctx context.Context, l *loan.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l.ID = r.store.nextLoanID
	r.store.nextLoanID++

	clone := *l
	r.store.loans[l.ID] = &clone
	return nil
}

func (r *loanRepository) FindByID(ctx context.Context, id uint) (*loan.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.loans[id]
	if !ok {
		return nil, loan.ErrLoanNotFound
	}
	clone := *l
	return &clone, nil
}

func (r *loanRepository) FindActive(ctx context.Context, bookID, userID uint) (*loan.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, l := range r.store.loans {
		if l.BookID == bookID && l.UserID == userID && l.Status != loan.StatusReturned {
			clone := *l
			return &clone, nil
		}
	}
	return nil, loan.ErrLoanNotFound
}

func (r *loanRepository) Update(ctx context.Context, l *loan.Loan) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.loans[l.ID]; !ok {
		return loan.ErrLoanNotFound
	}
	clone := *l
	r.store.loans[l.ID] = &clone
	return nil
}

func (r *loanRepository) UpdateStatus(ctx context.Context, id uint, status loan.Status) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	l, ok := r.store.loans[id]
	if !ok {
		return loan.ErrLoanNotFound
	}
	l.Status = status
	return nil
}

func (r *loanRepository) List(ctx context.Context, filter loan.ListFilter) ([]*loan.Loan, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var loans []*loan.Loan
	for _, l := range r.store.loans {
		if filter.UserID != 0 && l.UserID != filter.UserID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		clone := *l
		loans = append(loans, &clone)
	}

	sort.SliceStable(loans, func(i, j int) bool {
		return loans[i].BorrowedAt.After(loans[j].BorrowedAt)
	})
	return loans, nil
}

func (r *loanRepository) ListBookIDsByUser(ctx context.Context, userID uint) ([]uint, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[uint]bool)
	var ids []uint
	for _, l := range r.store.loans {
		if l.UserID == userID && !seen[l.BookID] {
			seen[l.BookID] = true
			ids = append(ids, l.BookID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (r *loanRepository) CountActiveByBook(ctx context.Context, bookID uint) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var count int64
	for _, l := range r.store.loans {
		if l.BookID == bookID && l.Status != loan.StatusReturned {
			count++
		}
	}
	return count, nil
}

func (r *loanRepository) CountByStatus(ctx context.Context, statuses ...loan.Status) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	want := make(map[loan.Status]bool, len(statuses))
	for _, s := range statuses {
		want[s] = true
	}

	var count int64
	for _, l := range r.store.loans {
		if want[l.Status] {
			count++
		}
	}
	return count, nil
}

func (r *loanRepository) ListRecent(ctx context.Context, limit int) ([]*loan.Loan, error) {
	loans, err := r.List(ctx, loan.ListFilter{})
	if err != nil {
		return nil, err
	}
	if len(loans) > limit {
		loans = loans[:limit]
	}
	return loans, nil
}

func (r *loanRepository) TopBooks(ctx context.Context, limit int) ([]loan.BookStat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counts := make(map[uint]int64)
	for _, l := range r.store.loans {
		counts[l.BookID]++
	}

	stats := make([]loan.BookStat, 0, len(counts))
	for bookID, count := range counts {
		stat := loan.BookStat{BookID: bookID, LoanCount: count}
		if b, ok := r.store.books[bookID]; ok {
			stat.Title = b.Title
			stat.Author = b.Author
			stat.CoverImage = b.CoverImage
		}
		stats = append(stats, stat)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].LoanCount != stats[j].LoanCount {
			return stats[i].LoanCount > stats[j].LoanCount
		}
		return stats[i].BookID < stats[j].BookID
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}

func (r *loanRepository) TopBorrowers(ctx context.Context, limit int) ([]loan.BorrowerStat, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counts := make(map[uint]int64)
	for _, l := range r.store.loans {
		counts[l.UserID]++
	}

	stats := make([]loan.BorrowerStat, 0, len(counts))
	for userID, count := range counts {
		u, ok := r.store.users[userID]
		if !ok || u.Role.IsStaff() {
			continue
		}
		stats = append(stats, loan.BorrowerStat{
			UserID:    userID,
			Name:      u.Name,
			Email:     u.Email,
			LoanCount: count,
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].LoanCount != stats[j].LoanCount {
			return stats[i].LoanCount > stats[j].LoanCount
		}
		return stats[i].UserID < stats[j].UserID
	})

	if len(stats) > limit {
		stats = stats[:limit]
	}
	return stats, nil
}
