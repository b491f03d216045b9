package search_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/search"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

// newSearchService 用内存仓储搭建检索服务
func newSearchService(t *testing.T) (*search.Service, book.Repository) {
	t.Helper()
	store := memory.NewStore()
	bookRepo := memory.NewBookRepository(store)
	reviewRepo := memory.NewReviewRepository(store)
	return search.NewService(bookRepo, reviewRepo), bookRepo
}

func addBook(t *testing.T, repo book.Repository, title, author, description, tags string, available int) *book.Book {
	t.Helper()
	b := book.NewBook(title, author, "", "", 0, "", description, "", available+1, tags)
	b.AvailableCopies = available
	require.NoError(t, repo.Create(context.Background(), b))
	return b
}

func TestSearch_RankingAndFilter(t *testing.T) {
	svc, repo := newSearchService(t)
	ctx := context.Background()

	// 书名命中两词: 10+10+2 = 22
	strong := addBook(t, repo, "Space Robot", "Somebody", "", "", 1)
	// 作者命中一词: 8+2 = 10
	weak := addBook(t, repo, "Gardening", "Space Jones", "", "", 1)
	// 无命中但可借: 只有可借加分2,仍进入结果集
	justAvailable := addBook(t, repo, "Cooking", "Chef", "", "", 1)
	// 无命中且不可借: 0分,被过滤
	addBook(t, repo, "Knitting", "Crafter", "", "", 0)

	results, err := svc.Search(ctx, "space robot")
	require.NoError(t, err)

	require.Len(t, results, 3, "零分图书应该被过滤")
	assert.Equal(t, strong.ID, results[0].ID, "高分在前")
	assert.Equal(t, 22, results[0].Score)
	assert.Equal(t, weak.ID, results[1].ID)
	assert.Equal(t, 10, results[1].Score)
	assert.Equal(t, justAvailable.ID, results[2].ID)
	assert.Equal(t, 2, results[2].Score)
}

func TestSearch_EmptyQuery(t *testing.T) {
	svc, repo := newSearchService(t)
	addBook(t, repo, "Space Robot", "x", "", "", 1)

	results, err := svc.Search(context.Background(), "a of")
	require.NoError(t, err)
	assert.Empty(t, results, "没有有效检索词时返回空集")
}

func TestSearch_TopTwentyAndStableTie(t *testing.T) {
	svc, repo := newSearchService(t)
	ctx := context.Background()

	// 25本同分书(书名都命中,都可借): 只返回前20本,且同分按id升序
	for i := 0; i < 25; i++ {
		addBook(t, repo, fmt.Sprintf("Robot Tale %d", i), "Author", "", "", 1)
	}

	results, err := svc.Search(ctx, "robot")
	require.NoError(t, err)

	require.Len(t, results, 20, "最多返回20条")
	for i := 1; i < len(results); i++ {
		assert.Less(t, results[i-1].ID, results[i].ID, "同分时保持id升序")
	}
}

func TestSearch_RatingAnnotation(t *testing.T) {
	store := memory.NewStore()
	bookRepo := memory.NewBookRepository(store)
	reviewRepo := memory.NewReviewRepository(store)
	svc := search.NewService(bookRepo, reviewRepo)
	ctx := context.Background()

	b := addBook(t, bookRepo, "Robot Dreams", "Asimov", "", "", 1)

	// 两条评价: 4分与5分,平均4.5
	for i, rating := range []int{4, 5} {
		rv := review.NewReview(b.ID, uint(i+1), rating, "")
		require.NoError(t, reviewRepo.Create(ctx, rv))
	}

	results, err := svc.Search(ctx, "robot")
	require.NoError(t, err)
	require.Len(t, results, 1)

	require.NotNil(t, results[0].AverageRating)
	assert.InDelta(t, 4.5, *results[0].AverageRating, 0.001)
	assert.Equal(t, int64(2), results[0].ReviewCount)
}
