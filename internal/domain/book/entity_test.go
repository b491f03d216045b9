package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/library/internal/domain/book"
)

func TestNewBook(t *testing.T) {
	b := book.NewBook("Dune", "Herbert", "9780441172719", "Ace", 1965,
		"Science Fiction", "沙丘星球的史诗", "", 3, "space,desert")

	assert.Equal(t, 3, b.TotalCopies)
	assert.Equal(t, 3, b.AvailableCopies, "新书可借数等于总数")
	assert.True(t, b.IsAvailable())
}

func TestAdjustTotalCopies(t *testing.T) {
	t.Run("增加馆藏同步增加可借数", func(t *testing.T) {
		b := book.NewBook("Dune", "Herbert", "", "", 0, "", "", "", 3, "")
		b.AvailableCopies = 1 // 2本在借

		require.NoError(t, b.AdjustTotalCopies(5))
		assert.Equal(t, 5, b.TotalCopies)
		assert.Equal(t, 3, b.AvailableCopies)
	})

	t.Run("减少馆藏不收回在借副本", func(t *testing.T) {
		b := book.NewBook("Dune", "Herbert", "", "", 0, "", "", "", 5, "")
		b.AvailableCopies = 1 // 4本在借

		// 总数降到2,偏移后可借=-2,钳到0
		require.NoError(t, b.AdjustTotalCopies(2))
		assert.Equal(t, 2, b.TotalCopies)
		assert.Equal(t, 0, b.AvailableCopies)
	})

	t.Run("总数不能小于1", func(t *testing.T) {
		b := book.NewBook("Dune", "Herbert", "", "", 0, "", "", "", 3, "")
		assert.ErrorIs(t, b.AdjustTotalCopies(0), book.ErrInvalidCopies)
		assert.Equal(t, 3, b.TotalCopies, "失败时状态不变")
	})
}

func TestUpdateInfo_SkipsEmptyValues(t *testing.T) {
	b := book.NewBook("Dune", "Herbert", "isbn-1", "Ace", 1965, "Science Fiction", "desc", "", 3, "space")

	b.UpdateInfo("Dune Messiah", "", "", "", 0, "", "", "", "")

	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Equal(t, "Herbert", b.Author, "空值字段保持原样")
	assert.Equal(t, 1965, b.PublishedYear)
	assert.Equal(t, "space", b.Tags)
}

func TestIsAvailable(t *testing.T) {
	b := book.NewBook("Dune", "Herbert", "", "", 0, "", "", "", 1, "")
	assert.True(t, b.IsAvailable())

	b.AvailableCopies = 0
	assert.False(t, b.IsAvailable())
}
