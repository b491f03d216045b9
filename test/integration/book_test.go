package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 图书模块集成测试
// 编目/维护/删除需要馆方账号(见helper.go的StaffToken说明)

// TestBookCatalog 图书编目与查询
func TestBookCatalog(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	t.Run("编目后可公开查询", func(t *testing.T) {
		title := fmt.Sprintf("集成测试图书_%d", time.Now().UnixNano())
		created := CatalogTestBook(t, staffToken, title, 3)

		assert.Equal(t, 3, created.TotalCopies)
		assert.Equal(t, 3, created.AvailableCopies, "新书可借数等于总数")

		// 详情接口无需登录
		resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), "")
		require.Equal(t, 0, resp.Code, "查询图书详情失败: %s", resp.Message)

		var got BookData
		err := json.Unmarshal(resp.Data, &got)
		require.NoError(t, err)
		assert.Equal(t, title, got.Title)
	})

	t.Run("member无权编目", func(t *testing.T) {
		_, memberToken := RegisterTestUser(t, "catalog_member")

		bookReq := map[string]interface{}{
			"title":        "越权编目",
			"author":       "测试作者",
			"total_copies": 1,
		}
		resp := PostJSON(t, BaseURL+"/books", bookReq, memberToken)
		assert.Equal(t, 40300, resp.Code, "member编目应被拒绝")
	})

	t.Run("未登录不能编目", func(t *testing.T) {
		bookReq := map[string]interface{}{
			"title":        "匿名编目",
			"author":       "测试作者",
			"total_copies": 1,
		}
		resp := PostJSON(t, BaseURL+"/books", bookReq, "")
		assert.Equal(t, 40100, resp.Code)
	})

	t.Run("必填字段校验", func(t *testing.T) {
		bookReq := map[string]interface{}{"author": "只有作者"}
		resp := PostJSON(t, BaseURL+"/books", bookReq, staffToken)
		assert.Equal(t, 40901, resp.Code, "缺少书名应返回参数绑定失败")
	})

	t.Run("不存在的图书返回404错误码", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/99999999", "")
		assert.Equal(t, 40402, resp.Code)
	})
}

// TestBookUpdate 图书维护
func TestBookUpdate(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	created := CatalogTestBook(t, staffToken, fmt.Sprintf("待维护_%d", time.Now().UnixNano()), 2)

	t.Run("调整副本总数同步调整可借数", func(t *testing.T) {
		updateReq := map[string]interface{}{"total_copies": 5}
		resp := doJSON(t, "PUT", fmt.Sprintf("%s/books/%d", BaseURL, created.ID), updateReq, staffToken)
		require.Equal(t, 0, resp.Code, "维护失败: %s", resp.Message)

		var got BookData
		err := json.Unmarshal(resp.Data, &got)
		require.NoError(t, err)
		assert.Equal(t, 5, got.TotalCopies)
		assert.Equal(t, 5, got.AvailableCopies)
	})

	t.Run("零值字段不覆盖原值", func(t *testing.T) {
		updateReq := map[string]interface{}{"category": "Science Fiction"}
		resp := doJSON(t, "PUT", fmt.Sprintf("%s/books/%d", BaseURL, created.ID), updateReq, staffToken)
		require.Equal(t, 0, resp.Code)

		var got BookData
		err := json.Unmarshal(resp.Data, &got)
		require.NoError(t, err)
		assert.Equal(t, "Science Fiction", got.Category)
		assert.Equal(t, created.Title, got.Title, "未提交的字段保持原样")
	})
}

// TestBookDelete 图书删除
func TestBookDelete(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	t.Run("无在借记录可删除", func(t *testing.T) {
		created := CatalogTestBook(t, staffToken, fmt.Sprintf("待删除_%d", time.Now().UnixNano()), 1)

		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), staffToken)
		require.Equal(t, 0, resp.Code, "删除失败: %s", resp.Message)

		getResp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), "")
		assert.Equal(t, 40402, getResp.Code, "删除后查询应不存在")
	})

	t.Run("有在借记录不可删除", func(t *testing.T) {
		created := CatalogTestBook(t, staffToken, fmt.Sprintf("在借中_%d", time.Now().UnixNano()), 1)
		_, readerToken := RegisterTestUser(t, "delete_blocker")

		borrowResp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": created.ID}, readerToken)
		require.Equal(t, 0, borrowResp.Code, "借书失败: %s", borrowResp.Message)

		resp := DeleteJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, created.ID), staffToken)
		assert.Equal(t, 40004, resp.Code, "存在未归还借阅的图书不可删除")
	})
}

// TestBookSearchAndCategories 馆藏检索与分类
func TestBookSearchAndCategories(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	marker := fmt.Sprintf("zzyzx%d", time.Now().UnixNano())
	CatalogTestBook(t, staffToken, "检索目标 "+marker, 1)

	t.Run("按关键词检索", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books?search="+marker, "")
		require.Equal(t, 0, resp.Code)

		var items []BookData
		err := json.Unmarshal(resp.Data, &items)
		require.NoError(t, err)
		require.NotEmpty(t, items, "应检索到刚编目的图书")
	})

	t.Run("分类列表包含已知分类", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/books/categories", "")
		require.Equal(t, 0, resp.Code)

		var categories []string
		err := json.Unmarshal(resp.Data, &categories)
		require.NoError(t, err)
		assert.Contains(t, categories, "Fiction")
	})
}
