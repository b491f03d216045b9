package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/xiebiao/library/internal/domain/book"
)

// bookRepository 图书仓储内存实现
// 排序语义与MySQL实现保持一致:FindAll按id升序,List按created_at降序
type bookRepository struct {
	store *Store
}

// NewBookRepository 创建图书仓储
func NewBookRepository(store *Store) book.Repository {
	return &bookRepository{store: store}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b.ID = r.store.nextBookID
	r.store.nextBookID++
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now

	clone := *b
	r.store.books[b.ID] = &clone
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.findLocked(id)
}

func (r *bookRepository) findLocked(id uint) (*book.Book, error) {
	b, ok := r.store.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	books := make([]*book.Book, 0, len(ids))
	for _, id := range ids {
		if b, ok := r.store.books[id]; ok {
			clone := *b
			books = append(books, &clone)
		}
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *bookRepository) FindAll(ctx context.Context) ([]*book.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return r.allLocked(), nil
}

// allLocked 全部图书按id升序
func (r *bookRepository) allLocked() []*book.Book {
	books := make([]*book.Book, 0, len(r.store.books))
	for _, b := range r.store.books {
		clone := *b
		books = append(books, &clone)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books
}

func (r *bookRepository) List(ctx context.Context, filter book.ListFilter) ([]*book.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var books []*book.Book
	for _, b := range r.allLocked() {
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			haystack := strings.ToLower(b.Title + " " + b.Author + " " + b.Description)
			if !strings.Contains(haystack, needle) {
				continue
			}
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.Author != "" && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(filter.Author)) {
			continue
		}
		if filter.AvailableOnly && !b.IsAvailable() {
			continue
		}
		books = append(books, b)
	}

	sort.SliceStable(books, func(i, j int) bool {
		return books[i].CreatedAt.After(books[j].CreatedAt)
	})
	return books, nil
}

func (r *bookRepository) ListCategories(ctx context.Context) ([]string, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	seen := make(map[string]bool)
	var categories []string
	for _, b := range r.store.books {
		if b.Category != "" && !seen[b.Category] {
			seen[b.Category] = true
			categories = append(categories, b.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.books[b.ID]; !ok {
		return book.ErrBookNotFound
	}
	b.UpdatedAt = time.Now()
	clone := *b
	r.store.books[b.ID] = &clone
	return nil
}

func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.books[id]; !ok {
		return book.ErrBookNotFound
	}
	delete(r.store.books, id)
	return nil
}

// LockByID 内存实现没有行锁,等价于FindByID
// (仓储整体持互斥锁,单测场景下已足够串行化)
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	return r.FindByID(ctx, id)
}

func (r *bookRepository) UpdateAvailableCopies(ctx context.Context, id uint, delta int) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	b, ok := r.store.books[id]
	if !ok {
		return book.ErrBookNotFound
	}

	next := b.AvailableCopies + delta
	if next < 0 {
		return book.ErrNoAvailableCopies
	}
	if next > b.TotalCopies {
		return book.ErrInvalidCopies
	}

	b.AvailableCopies = next
	b.UpdatedAt = time.Now()
	return nil
}

func (r *bookRepository) FindAvailableByTaste(ctx context.Context, categories, authors []string, excludeIDs []uint, limit int) ([]*book.Book, error) {
	if len(categories) == 0 && len(authors) == 0 {
		return []*book.Book{}, nil
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	excluded := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}
	wantCat := make(map[string]bool, len(categories))
	for _, c := range categories {
		wantCat[c] = true
	}
	wantAuthor := make(map[string]bool, len(authors))
	for _, a := range authors {
		wantAuthor[a] = true
	}

	var books []*book.Book
	for _, b := range r.allLocked() {
		if !b.IsAvailable() || excluded[b.ID] {
			continue
		}
		if wantCat[b.Category] || wantAuthor[b.Author] {
			books = append(books, b)
		}
		if len(books) == limit {
			break
		}
	}
	return books, nil
}

// ListPopular 排序键与MySQL实现一致:借阅次数降序 → 平均评分降序 → id升序
func (r *bookRepository) ListPopular(ctx context.Context, excludeIDs []uint, limit int) ([]*book.Book, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	excluded := make(map[uint]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	loanCounts := make(map[uint]int64)
	for _, l := range r.store.loans {
		loanCounts[l.BookID]++
	}
	ratingSums := make(map[uint]int)
	ratingCounts := make(map[uint]int)
	for _, rv := range r.store.reviews {
		ratingSums[rv.BookID] += rv.Rating
		ratingCounts[rv.BookID]++
	}
	avgRating := func(bookID uint) float64 {
		if ratingCounts[bookID] == 0 {
			return 0
		}
		return float64(ratingSums[bookID]) / float64(ratingCounts[bookID])
	}

	var books []*book.Book
	for _, b := range r.allLocked() {
		if b.IsAvailable() && !excluded[b.ID] {
			books = append(books, b)
		}
	}

	sort.SliceStable(books, func(i, j int) bool {
		ci, cj := loanCounts[books[i].ID], loanCounts[books[j].ID]
		if ci != cj {
			return ci > cj
		}
		return avgRating(books[i].ID) > avgRating(books[j].ID)
	})

	if len(books) > limit {
		books = books[:limit]
	}
	return books, nil
}

func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	return int64(len(r.store.books)), nil
}

func (r *bookRepository) SumAvailableCopies(ctx context.Context) (int64, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var total int64
	for _, b := range r.store.books {
		total += int64(b.AvailableCopies)
	}
	return total, nil
}

func (r *bookRepository) CountByCategory(ctx context.Context) ([]book.CategoryCount, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	counts := make(map[string]int64)
	for _, b := range r.store.books {
		if b.Category != "" {
			counts[b.Category]++
		}
	}

	result := make([]book.CategoryCount, 0, len(counts))
	for category, count := range counts {
		result = append(result, book.CategoryCount{Category: category, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Category < result[j].Category
	})
	return result, nil
}
