package recommend_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/loan"
	"github.com/xiebiao/library/internal/domain/recommend"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

type recommendFixture struct {
	svc        *recommend.Service
	bookRepo   book.Repository
	loanRepo   loan.Repository
	reviewRepo review.Repository
}

func newRecommendFixture() *recommendFixture {
	store := memory.NewStore()
	bookRepo := memory.NewBookRepository(store)
	loanRepo := memory.NewLoanRepository(store)
	reviewRepo := memory.NewReviewRepository(store)
	return &recommendFixture{
		svc:        recommend.NewService(bookRepo, loanRepo, reviewRepo),
		bookRepo:   bookRepo,
		loanRepo:   loanRepo,
		reviewRepo: reviewRepo,
	}
}

func (f *recommendFixture) addBook(t *testing.T, title, author, category string) *book.Book {
	t.Helper()
	b := book.NewBook(title, author, "", "", 0, category, "", "", 2, "")
	require.NoError(t, f.bookRepo.Create(context.Background(), b))
	return b
}

func (f *recommendFixture) borrow(t *testing.T, bookID, userID uint) {
	t.Helper()
	l := loan.NewLoan(bookID, userID, time.Now())
	require.NoError(t, f.loanRepo.Create(context.Background(), l))
}

func (f *recommendFixture) rate(t *testing.T, bookID, userID uint, rating int) {
	t.Helper()
	require.NoError(t, f.reviewRepo.Create(context.Background(), review.NewReview(bookID, userID, rating, "")))
}

func TestForUser_PopularFallbackForNewUser(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	b1 := f.addBook(t, "Hot Book", "A", "Fiction")
	b2 := f.addBook(t, "Warm Book", "B", "Fiction")
	f.addBook(t, "Cold Book", "C", "Fiction")

	// 其他用户的借阅制造热度: b1两次, b2一次
	f.borrow(t, b1.ID, 100)
	f.borrow(t, b1.ID, 101)
	f.borrow(t, b2.ID, 100)

	// 用户1没有任何评价和借阅
	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)

	require.Len(t, results, 3)
	assert.Equal(t, b1.ID, results[0].ID, "借阅量高的在前")
	assert.Equal(t, b2.ID, results[1].ID)
	for _, r := range results {
		assert.Equal(t, recommend.ReasonPopular, r.Reason)
	}
}

func TestForUser_TasteMatchPrecedesBackfill(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	liked := f.addBook(t, "Dune", "Herbert", "Science Fiction")
	sameCategory := f.addBook(t, "Foundation", "Asimov", "Science Fiction")
	sameAuthor := f.addBook(t, "Messiah", "Herbert", "Fiction")
	other := f.addBook(t, "Cookbook", "Chef", "Cooking")

	// 用户1借过并给liked打了5分
	f.borrow(t, liked.ID, 1)
	f.rate(t, liked.ID, 1, 5)

	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)

	require.Len(t, results, 3, "借过的书不再推荐")
	for _, r := range results {
		assert.NotEqual(t, liked.ID, r.ID)
	}

	// 品味匹配命中同分类与同作者的两本,排在热门补齐之前
	reasons := map[uint]string{}
	for _, r := range results {
		reasons[r.ID] = r.Reason
	}
	assert.Equal(t, recommend.ReasonTaste, reasons[sameCategory.ID])
	assert.Equal(t, recommend.ReasonTaste, reasons[sameAuthor.ID])
	assert.Equal(t, recommend.ReasonPopular, reasons[other.ID])
	assert.Equal(t, recommend.ReasonTaste, results[0].Reason)
	assert.Equal(t, recommend.ReasonTaste, results[1].Reason)
}

func TestForUser_LowRatingsDoNotShapeTaste(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	disliked := f.addBook(t, "Dune", "Herbert", "Science Fiction")
	f.addBook(t, "Foundation", "Asimov", "Science Fiction")

	// 3分不构成"喜欢",全部走热门补齐
	f.rate(t, disliked.ID, 1, 3)

	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)
	for _, r := range results {
		assert.Equal(t, recommend.ReasonPopular, r.Reason)
	}
}

func TestForUser_NoBackfillWhenTasteIsEnough(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	liked := f.addBook(t, "Dune", "Herbert", "Science Fiction")
	for i := 0; i < 6; i++ {
		f.addBook(t, fmt.Sprintf("SF %d", i), "Various", "Science Fiction")
	}
	outlier := f.addBook(t, "Cookbook", "Chef", "Cooking")

	f.rate(t, liked.ID, 1, 4)

	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)

	// 品味匹配已有7条(>=5),不触发热门补齐
	for _, r := range results {
		assert.Equal(t, recommend.ReasonTaste, r.Reason)
		assert.NotEqual(t, outlier.ID, r.ID)
	}
}

func TestForUser_CapAtTen(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	liked := f.addBook(t, "Dune", "Herbert", "Science Fiction")
	for i := 0; i < 15; i++ {
		f.addBook(t, fmt.Sprintf("SF %d", i), "Various", "Science Fiction")
	}
	f.rate(t, liked.ID, 1, 5)

	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, results, 10, "推荐最多10条")
}

func TestForUser_RatingAnnotation(t *testing.T) {
	f := newRecommendFixture()
	ctx := context.Background()

	b := f.addBook(t, "Hot Book", "A", "Fiction")
	f.rate(t, b.ID, 100, 4)
	f.rate(t, b.ID, 101, 5)

	results, err := f.svc.ForUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.NotNil(t, results[0].AverageRating)
	assert.InDelta(t, 4.5, *results[0].AverageRating, 0.001)
	assert.Equal(t, int64(2), results[0].ReviewCount)
}
