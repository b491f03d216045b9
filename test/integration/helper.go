package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 教学说明：集成测试辅助工具
// 集成测试需要先启动完整服务（API + MySQL + Redis）：
//   make docker-up && make run
//   go test -v ./test/integration/...
// 未设置LIBRARY_INTEGRATION环境变量时全部跳过，避免CI误触发

const (
	// BaseURL API基础URL
	BaseURL = "http://localhost:8080/api/v1"
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// RequireIntegration 集成测试开关
func RequireIntegration(t *testing.T) {
	t.Helper()
	if os.Getenv("LIBRARY_INTEGRATION") == "" {
		t.Skip("跳过集成测试: 未设置LIBRARY_INTEGRATION")
	}
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// RegisterData 注册响应数据
type RegisterData struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// BookData 图书响应数据
type BookData struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	Category        string `json:"category"`
	TotalCopies     int    `json:"total_copies"`
	AvailableCopies int    `json:"available_copies"`
}

// LoanData 借阅响应数据
type LoanData struct {
	ID         uint   `json:"id"`
	BookID     uint   `json:"book_id"`
	UserID     uint   `json:"user_id"`
	BorrowedAt string `json:"borrowed_at"`
	DueDate    string `json:"due_date"`
	ReturnedAt string `json:"returned_at"`
	Status     string `json:"status"`
}

// doJSON 发送HTTP请求并解析统一响应
func doJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求并解析JSON响应
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return doJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求并解析JSON响应
func GetJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodGet, url, nil, token)
}

// DeleteJSON 发送DELETE请求并解析JSON响应
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return doJSON(t, http.MethodDelete, url, nil, token)
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// RegisterTestUser 注册测试用户并返回Token
func RegisterTestUser(t *testing.T, name string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(name)
	registerReq := map[string]string{
		"email":    email,
		"password": "Test1234",
		"name":     name,
	}
	registerResp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	loginReq := map[string]string{
		"email":    email,
		"password": "Test1234",
	}
	loginResp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")

	return email, loginData.AccessToken
}

// StaffToken 获取馆方账号Token
// 编目、分类建议、看板等接口需要admin/librarian角色,
// 注册接口一律产生member,测试依赖预置的馆方账号:
//   LIBRARY_TEST_STAFF_EMAIL / LIBRARY_TEST_STAFF_PASSWORD
func StaffToken(t *testing.T) string {
	t.Helper()

	email := os.Getenv("LIBRARY_TEST_STAFF_EMAIL")
	password := os.Getenv("LIBRARY_TEST_STAFF_PASSWORD")
	if email == "" || password == "" {
		t.Skip("跳过: 未配置馆方测试账号LIBRARY_TEST_STAFF_EMAIL/PASSWORD")
	}

	loginReq := map[string]string{"email": email, "password": password}
	loginResp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
	require.Equal(t, 0, loginResp.Code, "馆方账号登录失败: %s", loginResp.Message)

	var loginData LoginData
	err := json.Unmarshal(loginResp.Data, &loginData)
	require.NoError(t, err, "解析登录响应失败")
	return loginData.AccessToken
}

// CatalogTestBook 编目测试图书并返回图书数据
func CatalogTestBook(t *testing.T, staffToken, title string, copies int) *BookData {
	t.Helper()

	bookReq := map[string]interface{}{
		"title":        title,
		"author":       "测试作者",
		"category":     "Fiction",
		"description":  "集成测试用图书",
		"total_copies": copies,
	}
	resp := PostJSON(t, BaseURL+"/books", bookReq, staffToken)
	require.Equal(t, 0, resp.Code, "图书编目失败: %s", resp.Message)

	var data BookData
	err := json.Unmarshal(resp.Data, &data)
	require.NoError(t, err, "解析图书响应失败")
	return &data
}
