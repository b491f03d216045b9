package user

import (
	"context"

	"github.com/xiebiao/library/internal/domain/user"
)

// GetProfileUseCase 查询当前登录用户资料
// 说明：不直接信任Token里的快照,从库中读最新资料
// (角色可能被管理员调整过,Token刷新前以库为准)
type GetProfileUseCase struct {
	userRepo user.Repository
}

// NewGetProfileUseCase 创建资料查询用例
func NewGetProfileUseCase(userRepo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{userRepo: userRepo}
}

// Execute 执行查询
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &UserInfo{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}, nil
}
