package integration

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 用户模块集成测试
// 覆盖注册/登录/登出完整流程,走真实的MySQL与Redis

// TestUserRegister 用户注册
func TestUserRegister(t *testing.T) {
	RequireIntegration(t)

	t.Run("正常注册", func(t *testing.T) {
		email := GenerateTestEmail("reader")
		registerReq := map[string]string{
			"email":    email,
			"password": "Test1234",
			"name":     "测试读者",
		}

		resp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
		require.Equal(t, 0, resp.Code, "注册应该成功: %s", resp.Message)

		var data RegisterData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err, "解析响应数据失败")

		assert.NotZero(t, data.ID)
		assert.Equal(t, email, data.Email)
		assert.Equal(t, "测试读者", data.Name)
		assert.Equal(t, "member", data.Role, "注册用户一律是member角色")
	})

	t.Run("重复邮箱注册应失败", func(t *testing.T) {
		email := GenerateTestEmail("dup")
		registerReq := map[string]string{
			"email":    email,
			"password": "Test1234",
			"name":     "读者一号",
		}

		resp1 := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
		require.Equal(t, 0, resp1.Code, "第一次注册应该成功")

		registerReq["name"] = "读者二号"
		resp2 := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
		assert.Equal(t, 40005, resp2.Code, "重复邮箱应返回邮箱已存在")
	})

	t.Run("弱密码被拒绝", func(t *testing.T) {
		registerReq := map[string]string{
			"email":    GenerateTestEmail("weak"),
			"password": "12345678", // 纯数字
			"name":     "测试读者",
		}
		resp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
		assert.NotEqual(t, 0, resp.Code, "纯数字密码应被拒绝")
	})

	t.Run("邮箱格式校验", func(t *testing.T) {
		registerReq := map[string]string{
			"email":    "not-an-email",
			"password": "Test1234",
			"name":     "测试读者",
		}
		resp := PostJSON(t, BaseURL+"/auth/register", registerReq, "")
		assert.Equal(t, 40901, resp.Code, "非法邮箱应返回参数绑定失败")
	})
}

// TestUserLogin 用户登录与登出
func TestUserLogin(t *testing.T) {
	RequireIntegration(t)

	email, _ := RegisterTestUser(t, "login_user")

	t.Run("正确密码登录", func(t *testing.T) {
		loginReq := map[string]string{"email": email, "password": "Test1234"}
		resp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
		require.Equal(t, 0, resp.Code, "登录应该成功: %s", resp.Message)

		var data LoginData
		err := json.Unmarshal(resp.Data, &data)
		require.NoError(t, err)
		assert.NotEmpty(t, data.AccessToken)
	})

	t.Run("错误密码登录失败", func(t *testing.T) {
		loginReq := map[string]string{"email": email, "password": "Wrong9999"}
		resp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
		assert.Equal(t, 40103, resp.Code, "密码错误应返回对应错误码")
	})

	t.Run("不存在的邮箱登录失败", func(t *testing.T) {
		loginReq := map[string]string{"email": "nobody@test.com", "password": "Test1234"}
		resp := PostJSON(t, BaseURL+"/auth/login", loginReq, "")
		assert.NotEqual(t, 0, resp.Code)
	})

	t.Run("登录后可查询个人资料", func(t *testing.T) {
		email, token := RegisterTestUser(t, "profile_user")

		resp := GetJSON(t, BaseURL+"/profile", token)
		require.Equal(t, 0, resp.Code, "查询资料失败: %s", resp.Message)

		var data RegisterData
		require.NoError(t, json.Unmarshal(resp.Data, &data))
		assert.Equal(t, email, data.Email)
		assert.Equal(t, "member", data.Role)
	})

	t.Run("登出后Token失效", func(t *testing.T) {
		_, token := RegisterTestUser(t, "logout_user")

		logoutResp := PostJSON(t, BaseURL+"/auth/logout", nil, token)
		require.Equal(t, 0, logoutResp.Code, "登出应该成功")

		// 黑名单生效: 同一Token再访问受保护接口被拒
		resp := GetJSON(t, BaseURL+"/loans", token)
		assert.NotEqual(t, 0, resp.Code, "登出后的Token不应再可用")
	})
}
