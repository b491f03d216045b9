package memory

import (
	"context"
	"sort"
	"time"

	"github.com/xiebiao/library/internal/domain/review"
)

// reviewRepository 评价仓储内存实现
type reviewRepository struct {
	store *Store
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(store *Store) review.Repository {
	return &reviewRepository{store: store}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rv.ID = r.store.nextReviewID
	r.store.nextReviewID++
	now := time.Now()
	rv.CreatedAt = now
	rv.UpdatedAt = now

	clone := *rv
	r.store.reviews[rv.ID] = &clone
	return nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reviews[rv.ID]; !ok {
		return review.ErrReviewNotFound
	}
	rv.UpdatedAt = time.Now()
	clone := *rv
	r.store.reviews[rv.ID] = &clone
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rv, ok := r.store.reviews[id]
	if !ok {
		return nil, review.ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *reviewRepository) FindByBookAndUser(ctx context.Context, bookID, userID uint) (*review.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, rv := range r.store.reviews {
		if rv.BookID == bookID && rv.UserID == userID {
			clone := *rv
			return &clone, nil
		}
	}
	return nil, review.ErrReviewNotFound
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.BookReview, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*review.BookReview
	for _, rv := range r.store.reviews {
		if rv.BookID != bookID {
			continue
		}
		item := &review.BookReview{Review: *rv}
		if u, ok := r.store.users[rv.UserID]; ok {
			item.UserName = u.Name
		}
		result = append(result, item)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *reviewRepository) ListByUserMinRating(ctx context.Context, userID uint, minRating int) ([]*review.Review, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*review.Review
	for _, rv := range r.store.reviews {
		if rv.UserID == userID && rv.Rating >= minRating {
			clone := *rv
			result = append(result, &clone)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.reviews[id]; !ok {
		return review.ErrReviewNotFound
	}
	delete(r.store.reviews, id)
	return nil
}

func (r *reviewRepository) AggregateByBook(ctx context.Context, bookID uint) (review.RatingSummary, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var sum, count int64
	for _, rv := range r.store.reviews {
		if rv.BookID == bookID {
			sum += int64(rv.Rating)
			count++
		}
	}

	summary := review.RatingSummary{Count: count}
	if count > 0 {
		avg := float64(sum) / float64(count)
		summary.Average = &avg
	}
	return summary, nil
}
