package user

import (
	"time"
)

// Role 用户角色
// 设计说明:
// 1. 三种角色:admin(管理员) > librarian(馆员) > member(读者)
// 2. admin/librarian可以管理馆藏和代还图书,admin还可以删除他人评价
// 3. 角色随JWT Claims下发,核心业务只信任已验证的Claims
type Role string

const (
	RoleAdmin     Role = "admin"     // 管理员
	RoleLibrarian Role = "librarian" // 图书馆员
	RoleMember    Role = "member"    // 普通读者
)

// IsValid 校验角色取值
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleLibrarian, RoleMember:
		return true
	}
	return false
}

// IsStaff 是否为馆方人员(admin或librarian)
// 馆方人员可以管理馆藏、查看全部借阅、代读者还书
func (r Role) IsStaff() bool {
	return r == RoleAdmin || r == RoleLibrarian
}

// User 用户实体（聚合根）
// DDD设计说明：
// 1. User是用户聚合的根实体，包含用户的核心属性
// 2. 密码已加密存储（bcrypt），不应该有GetPassword()等方法暴露明文
// 3. 领域实体不依赖GORM tag（infrastructure层的Repository实现时会处理映射）
type User struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	Role      Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(email, hashedPassword, name string, role Role) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateName 更新姓名（领域行为）
func (u *User) UpdateName(name string) {
	u.Name = name
	u.UpdatedAt = time.Now()
}
