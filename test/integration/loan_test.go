package integration

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 借阅模块集成测试
// 覆盖借书/还书完整生命周期,验证可借副本数守恒

// loanDetail 借阅列表项(含图书与读者信息)
type loanDetail struct {
	LoanData
	BookTitle string `json:"book_title"`
	UserName  string `json:"user_name"`
}

func getBook(t *testing.T, bookID uint) *BookData {
	t.Helper()
	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), "")
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var data BookData
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	return &data
}

// TestLoanLifecycle 借书到还书的完整流程
func TestLoanLifecycle(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	book := CatalogTestBook(t, staffToken, fmt.Sprintf("借阅流程_%d", time.Now().UnixNano()), 2)
	_, readerToken := RegisterTestUser(t, "loan_reader")

	var loanID uint

	t.Run("借书成功并扣减可借数", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, readerToken)
		require.Equal(t, 0, resp.Code, "借书失败: %s", resp.Message)

		var data LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "active", data.Status)
		assert.NotEmpty(t, data.DueDate)
		loanID = data.ID

		assert.Equal(t, 1, getBook(t, book.ID).AvailableCopies)
	})

	t.Run("同一本书不能重复在借", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, readerToken)
		assert.Equal(t, 40002, resp.Code, "重复借阅应返回业务错误")
		assert.Equal(t, 1, getBook(t, book.ID).AvailableCopies, "失败的借阅不扣副本")
	})

	t.Run("借阅列表只看到自己的记录", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/loans", readerToken)
		require.Equal(t, 0, resp.Code)

		var items []loanDetail
		require.NoError(t, json.Unmarshal(resp.Data, &items))
		require.NotEmpty(t, items)
		for _, item := range items {
			assert.Equal(t, items[0].UserID, item.UserID)
		}
	})

	t.Run("还书成功并回加可借数", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, loanID), nil, readerToken)
		require.Equal(t, 0, resp.Code, "还书失败: %s", resp.Message)

		var data LoanData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, "returned", data.Status)
		assert.NotEmpty(t, data.ReturnedAt)

		assert.Equal(t, 2, getBook(t, book.ID).AvailableCopies)
	})

	t.Run("重复还书报业务错误", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, loanID), nil, readerToken)
		assert.Equal(t, 40003, resp.Code)
		assert.Equal(t, 2, getBook(t, book.ID).AvailableCopies, "副本数不被重复归还破坏")
	})

	t.Run("归还后可再次借阅", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, readerToken)
		assert.Equal(t, 0, resp.Code, "归还后再借应成功: %s", resp.Message)
	})
}

// TestLoanExhaustion 副本借尽
func TestLoanExhaustion(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	book := CatalogTestBook(t, staffToken, fmt.Sprintf("唯一副本_%d", time.Now().UnixNano()), 1)
	_, reader1 := RegisterTestUser(t, "exhaust_one")
	_, reader2 := RegisterTestUser(t, "exhaust_two")

	resp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, reader1)
	require.Equal(t, 0, resp.Code, "第一位读者借书失败: %s", resp.Message)

	resp = PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, reader2)
	assert.Equal(t, 40001, resp.Code, "副本借尽后应返回无可借副本")
	assert.Equal(t, 0, getBook(t, book.ID).AvailableCopies)
}

// TestLoanPermissions 借阅记录访问权限
func TestLoanPermissions(t *testing.T) {
	RequireIntegration(t)
	staffToken := StaffToken(t)

	book := CatalogTestBook(t, staffToken, fmt.Sprintf("权限测试_%d", time.Now().UnixNano()), 1)
	_, owner := RegisterTestUser(t, "perm_owner")
	_, other := RegisterTestUser(t, "perm_other")

	borrowResp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, owner)
	require.Equal(t, 0, borrowResp.Code)

	var data LoanData
	require.NoError(t, json.Unmarshal(borrowResp.Data, &data))

	t.Run("他人不能查看借阅详情", func(t *testing.T) {
		resp := GetJSON(t, fmt.Sprintf("%s/loans/%d", BaseURL, data.ID), other)
		assert.Equal(t, 40300, resp.Code)
	})

	t.Run("他人不能代还", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, data.ID), nil, other)
		assert.Equal(t, 40300, resp.Code)
	})

	t.Run("馆方人员可以代还", func(t *testing.T) {
		resp := PostJSON(t, fmt.Sprintf("%s/loans/%d/return", BaseURL, data.ID), nil, staffToken)
		assert.Equal(t, 0, resp.Code, "馆方代还失败: %s", resp.Message)
	})

	t.Run("未登录不能借书", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/loans", map[string]uint{"book_id": book.ID}, "")
		assert.Equal(t, 40100, resp.Code)
	})
}
