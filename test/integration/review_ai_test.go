package integration

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 评价与智能服务集成测试

// reviewData 评价响应数据
type reviewData struct {
	ID      uint   `json:"id"`
	BookID  uint   `json:"book_id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// TestReviewFlow 评价提交/覆盖/删除
func TestReviewFlow(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	book := CatalogTestBook(t, staffToken, fmt.Sprintf("评价目标_%d", time.Now().UnixNano()), 1)
	_, readerToken := RegisterTestUser(t, "review_reader")

	reviewURL := fmt.Sprintf("%s/books/%d/reviews", BaseURL, book.ID)

	t.Run("提交评价", func(t *testing.T) {
		resp := PostJSON(t, reviewURL, map[string]interface{}{"rating": 5, "comment": "很好"}, readerToken)
		require.Equal(t, 0, resp.Code, "提交评价失败: %s", resp.Message)
	})

	t.Run("再次提交覆盖而非新增", func(t *testing.T) {
		resp := PostJSON(t, reviewURL, map[string]interface{}{"rating": 3, "comment": "重读后降星"}, readerToken)
		require.Equal(t, 0, resp.Code)

		listResp := GetJSON(t, reviewURL, "")
		require.Equal(t, 0, listResp.Code)

		var items []reviewData
		require.NoError(t, json.Unmarshal(listResp.Data, &items))
		require.Len(t, items, 1, "同一读者对同一本书只保留一条评价")
		assert.Equal(t, 3, items[0].Rating)
	})

	t.Run("评分超出范围被拒绝", func(t *testing.T) {
		resp := PostJSON(t, reviewURL, map[string]interface{}{"rating": 6}, readerToken)
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("他人不能删除我的评价", func(t *testing.T) {
		listResp := GetJSON(t, reviewURL, "")
		var items []reviewData
		require.NoError(t, json.Unmarshal(listResp.Data, &items))
		require.NotEmpty(t, items)

		_, otherToken := RegisterTestUser(t, "review_other")
		resp := DeleteJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, items[0].ID), otherToken)
		assert.Equal(t, 40300, resp.Code)

		// 本人可删
		resp = DeleteJSON(t, fmt.Sprintf("%s/reviews/%d", BaseURL, items[0].ID), readerToken)
		assert.Equal(t, 0, resp.Code, "作者删除自己的评价失败: %s", resp.Message)
	})
}

// TestSmartSearch 关键词加权检索
func TestSmartSearch(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	marker := fmt.Sprintf("qqxyzz%d", time.Now().UnixNano())
	CatalogTestBook(t, staffToken, "智能检索 "+marker, 1)

	t.Run("标题命中排前", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/ai/search?q="+url.QueryEscape(marker), "")
		require.Equal(t, 0, resp.Code, "检索失败: %s", resp.Message)

		var items []struct {
			Title string `json:"title"`
			Score int    `json:"score"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.NotEmpty(t, items)
		assert.Contains(t, items[0].Title, marker)
		assert.GreaterOrEqual(t, items[0].Score, 10, "标题命中至少10分")
	})

	t.Run("空检索词返回空集", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/ai/search?q=ab", "")
		require.Equal(t, 0, resp.Code)

		var items []json.RawMessage
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		assert.Empty(t, items, "过短的检索词被丢弃后应返回空集")
	})
}

// TestRecommendations 个性化推荐
func TestRecommendations(t *testing.T) {
	RequireIntegration(t)
	_, readerToken := RegisterTestUser(t, "rec_reader")

	resp := GetJSON(t, BaseURL+"/ai/recommendations", readerToken)
	require.Equal(t, 0, resp.Code, "推荐失败: %s", resp.Message)

	var items []struct {
		ID     uint   `json:"id"`
		Reason string `json:"reason"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &items))
	assert.LessOrEqual(t, len(items), 10, "推荐最多10条")
	for _, item := range items {
		assert.Contains(t, []string{"based_on_your_ratings", "popular"}, item.Reason)
	}
}

// TestSuggestCategory 分类建议
func TestSuggestCategory(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	t.Run("关键词命中给出建议", func(t *testing.T) {
		req := map[string]string{
			"title":       "Space Robot",
			"author":      "A. Cyberpunk",
			"description": "an alien adventure",
		}
		resp := PostJSON(t, BaseURL+"/ai/suggest-category", req, staffToken)
		require.Equal(t, 0, resp.Code, "分类建议失败: %s", resp.Message)

		var items []struct {
			Category   string `json:"category"`
			Confidence int    `json:"confidence"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.NotEmpty(t, items)
		assert.Equal(t, "Science Fiction", items[0].Category)
	})

	t.Run("member无权调用", func(t *testing.T) {
		_, memberToken := RegisterTestUser(t, "suggest_member")
		resp := PostJSON(t, BaseURL+"/ai/suggest-category", map[string]string{"title": "x"}, memberToken)
		assert.Equal(t, 40300, resp.Code)
	})
}
