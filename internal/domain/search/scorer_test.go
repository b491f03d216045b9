package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/library/internal/domain/book"
)

func TestNormalizeTerms(t *testing.T) {
	t.Run("小写化并按空白切分", func(t *testing.T) {
		terms := NormalizeTerms("Space  Robot")
		assert.Equal(t, []string{"space", "robot"}, terms)
	})

	t.Run("丢弃长度小于3的词", func(t *testing.T) {
		terms := NormalizeTerms("go to the moon")
		assert.Equal(t, []string{"the", "moon"}, terms)
	})

	t.Run("全部是短词时返回空集", func(t *testing.T) {
		assert.Empty(t, NormalizeTerms("a of it"))
	})

	t.Run("空查询返回空集", func(t *testing.T) {
		assert.Empty(t, NormalizeTerms("   "))
	})
}

func TestScoreBook(t *testing.T) {
	// 两个词都命中书名(10+10),一个词命中作者(8),
	// 两个词命中简介(3+3),没有标签命中,有可借副本(+2)
	// 合计: 20 + 8 + 6 + 2 = 36
	t.Run("多字段累加", func(t *testing.T) {
		b := &book.Book{
			Title:           "Space Robot Adventures",
			Author:          "A. Robot",
			Description:     "space robot story",
			Tags:            "",
			AvailableCopies: 1,
			TotalCopies:     1,
		}
		score := ScoreBook(b, []string{"space", "robot"})
		assert.Equal(t, 36, score, "得分应该逐词逐字段累加")
	})

	// 书名命中两词(10+10),简介/标签命中两词(3+3),可借+2 → 28
	// 作者"Al Space"只有space命中(+8)时单独验证
	t.Run("固定权重算术", func(t *testing.T) {
		b := &book.Book{
			Title:           "Robot Wars",
			Author:          "Al Space",
			Description:     "battle machines",
			Tags:            "war",
			AvailableCopies: 2,
			TotalCopies:     3,
		}
		// robot命中书名(10), space命中作者(8), 可借+2 → 20
		score := ScoreBook(b, []string{"space", "robot"})
		assert.Equal(t, 20, score)
	})

	t.Run("可借加分每本书只加一次", func(t *testing.T) {
		b := &book.Book{
			Title:           "Dune Dune Dune",
			Author:          "Frank Herbert",
			AvailableCopies: 5,
			TotalCopies:     5,
		}
		// dune命中书名一次计10分(子串包含,不按出现次数),+2可借
		score := ScoreBook(b, []string{"dune"})
		assert.Equal(t, 12, score)
	})

	t.Run("无命中的可借书也有可借加分", func(t *testing.T) {
		// 可借加分与词命中无关,零命中的可借书得2分
		// (是否进入结果集由上层的得分过滤决定)
		b := &book.Book{
			Title:           "Cooking Basics",
			Author:          "Chef",
			AvailableCopies: 1,
			TotalCopies:     1,
		}
		assert.Equal(t, 2, ScoreBook(b, []string{"robot"}))
	})

	t.Run("无命中且不可借时得0分", func(t *testing.T) {
		b := &book.Book{
			Title:           "Cooking Basics",
			Author:          "Chef",
			AvailableCopies: 0,
			TotalCopies:     1,
		}
		assert.Equal(t, 0, ScoreBook(b, []string{"robot"}))
	})

	t.Run("不可借时没有可借加分", func(t *testing.T) {
		b := &book.Book{
			Title:           "Robot Dreams",
			Author:          "Asimov",
			AvailableCopies: 0,
			TotalCopies:     1,
		}
		assert.Equal(t, 10, ScoreBook(b, []string{"robot"}))
	})

	t.Run("大小写不敏感", func(t *testing.T) {
		b := &book.Book{
			Title:           "ROBOT WARS",
			Author:          "x",
			AvailableCopies: 0,
		}
		assert.Equal(t, 10, ScoreBook(b, []string{"robot"}))
	})
}
