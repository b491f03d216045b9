package review_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/review"
	"github.com/xiebiao/library/internal/domain/user"
	"github.com/xiebiao/library/internal/infrastructure/persistence/memory"
)

func newReviewService() (review.Service, review.Repository) {
	repo := memory.NewReviewRepository(memory.NewStore())
	return review.NewService(repo), repo
}

func TestSubmit_CreateAndOverwrite(t *testing.T) {
	svc, repo := newReviewService()
	ctx := context.Background()

	first, err := svc.Submit(ctx, 1, 42, 5, "经典")
	require.NoError(t, err)
	require.NotZero(t, first.ID)

	// 同一(书,用户)再次提交: 覆盖原记录而非新增
	second, err := svc.Submit(ctx, 1, 42, 3, "重读后降星")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Rating)
	assert.Equal(t, "重读后降星", second.Comment)

	stored, err := repo.FindByBookAndUser(ctx, 1, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Rating)

	// 其他用户评同一本书是独立记录
	other, err := svc.Submit(ctx, 1, 43, 4, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestSubmit_InvalidRating(t *testing.T) {
	svc, _ := newReviewService()
	ctx := context.Background()

	for _, rating := range []int{0, 6, -1} {
		_, err := svc.Submit(ctx, 1, 42, rating, "")
		assert.ErrorIs(t, err, review.ErrInvalidRating)
	}
}

func TestDelete_Permission(t *testing.T) {
	ctx := context.Background()

	t.Run("作者本人可删", func(t *testing.T) {
		svc, repo := newReviewService()
		r, err := svc.Submit(ctx, 1, 42, 5, "")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, r.ID, 42, user.RoleMember))
		_, err = repo.FindByID(ctx, r.ID)
		assert.ErrorIs(t, err, review.ErrReviewNotFound)
	})

	t.Run("admin可删任何评价", func(t *testing.T) {
		svc, _ := newReviewService()
		r, err := svc.Submit(ctx, 1, 42, 5, "")
		require.NoError(t, err)
		assert.NoError(t, svc.Delete(ctx, r.ID, 99, user.RoleAdmin))
	})

	t.Run("其他读者不可删", func(t *testing.T) {
		svc, repo := newReviewService()
		r, err := svc.Submit(ctx, 1, 42, 5, "")
		require.NoError(t, err)

		err = svc.Delete(ctx, r.ID, 43, user.RoleMember)
		assert.ErrorIs(t, err, review.ErrDeleteForbidden)
		_, err = repo.FindByID(ctx, r.ID)
		assert.NoError(t, err, "删除被拒后记录仍在")
	})

	t.Run("librarian不是admin也不可删他人评价", func(t *testing.T) {
		svc, _ := newReviewService()
		r, err := svc.Submit(ctx, 1, 42, 5, "")
		require.NoError(t, err)
		assert.ErrorIs(t, svc.Delete(ctx, r.ID, 43, user.RoleLibrarian), review.ErrDeleteForbidden)
	})
}

func TestDelete_NotFound(t *testing.T) {
	svc, _ := newReviewService()
	err := svc.Delete(context.Background(), 999, 42, user.RoleAdmin)
	assert.ErrorIs(t, err, review.ErrReviewNotFound)
}
