package jwt

import (
	"testing"
	"time"
)

// TestGenerateAndParseToken 测试Token生成与解析的完整流程
func TestGenerateAndParseToken(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters!!", 2*time.Hour, 7*24*time.Hour)

	pair, err := m.GenerateToken(42, "reader@example.com", "张三", "member")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("Token对不应为空")
	}
	if pair.ExpiresIn != int64((2 * time.Hour).Seconds()) {
		t.Errorf("ExpiresIn错误: %d", pair.ExpiresIn)
	}

	claims, err := m.ParseToken(pair.AccessToken)
	if err != nil {
		t.Fatalf("解析Token失败: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID错误: %d", claims.UserID)
	}
	if claims.Role != "member" {
		t.Errorf("Role错误: %s", claims.Role)
	}
	if claims.Email != "reader@example.com" {
		t.Errorf("Email错误: %s", claims.Email)
	}
}

// TestParseToken_WrongSecret 测试密钥不匹配时解析失败
func TestParseToken_WrongSecret(t *testing.T) {
	m1 := NewManager("secret-one-padded-to-32-characters!!", time.Hour, time.Hour)
	m2 := NewManager("secret-two-padded-to-32-characters!!", time.Hour, time.Hour)

	pair, err := m1.GenerateToken(1, "a@b.com", "a", "admin")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m2.ParseToken(pair.AccessToken); err == nil {
		t.Fatal("不同密钥签发的Token应解析失败")
	}
}

// TestParseToken_Expired 测试过期Token被拒绝
func TestParseToken_Expired(t *testing.T) {
	m := NewManager("test-secret-at-least-32-characters!!", -time.Minute, time.Hour)

	pair, err := m.GenerateToken(1, "a@b.com", "a", "member")
	if err != nil {
		t.Fatalf("生成Token失败: %v", err)
	}

	if _, err := m.ParseToken(pair.AccessToken); err == nil {
		t.Fatal("过期Token应解析失败")
	}
}
